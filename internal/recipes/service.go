package recipes

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/jcastillo-dev/comanda-backend/pkg/db/models"
	pkgerrors "github.com/jcastillo-dev/comanda-backend/pkg/errors"
)

// Service defines menu management operations used by the controllers.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, req CreateRecipeRequest) (*RecipeDTO, error)
	Get(ctx context.Context, userID, recipeID uuid.UUID) (*RecipeDTO, error)
	List(ctx context.Context, userID uuid.UUID, filters ListFilters) (*ListResponse, error)
	Update(ctx context.Context, userID, recipeID uuid.UUID, req UpdateRecipeRequest) (*RecipeDTO, error)
	Delete(ctx context.Context, userID, recipeID uuid.UUID) error
}

type repository interface {
	Create(ctx context.Context, recipe *models.Recipe) error
	FindByID(ctx context.Context, userID, recipeID uuid.UUID) (*models.Recipe, error)
	List(ctx context.Context, userID uuid.UUID, filters ListFilters) ([]models.Recipe, error)
	Update(ctx context.Context, userID, recipeID uuid.UUID, columns map[string]any) (int64, error)
	SoftDelete(ctx context.Context, userID, recipeID uuid.UUID) (int64, error)
}

type service struct {
	repo repository
}

// ServiceParams bundles the dependencies for the recipes service.
type ServiceParams struct {
	Repo repository
}

// NewService constructs a recipes service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("recipes repository is required")
	}
	return &service{repo: params.Repo}, nil
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, req CreateRecipeRequest) (*RecipeDTO, error) {
	if len(req.Ingredients) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "recipe must have at least one ingredient")
	}
	if len(req.Instructions) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "recipe must have at least one instruction")
	}
	if req.Price.IsNegative() || req.Cost.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price and cost cannot be negative")
	}

	recipe := reqToModel(userID, req)
	if err := s.repo.Create(ctx, recipe); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create recipe")
	}

	dto := fromModel(recipe)
	return &dto, nil
}

func (s *service) Get(ctx context.Context, userID, recipeID uuid.UUID) (*RecipeDTO, error) {
	recipe, err := s.repo.FindByID(ctx, userID, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "recipe not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load recipe")
	}

	dto := fromModel(recipe)
	return &dto, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID, filters ListFilters) (*ListResponse, error) {
	rows, err := s.repo.List(ctx, userID, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list recipes")
	}

	recipes := make([]RecipeDTO, 0, len(rows))
	for i := range rows {
		recipes = append(recipes, fromModel(&rows[i]))
	}
	return &ListResponse{Recipes: recipes}, nil
}

func (s *service) Update(ctx context.Context, userID, recipeID uuid.UUID, req UpdateRecipeRequest) (*RecipeDTO, error) {
	columns := map[string]any{}
	if req.Name != nil {
		columns["name"] = *req.Name
	}
	if req.Description != nil {
		columns["description"] = *req.Description
	}
	if req.Category != nil {
		columns["category"] = *req.Category
	}
	if req.Ingredients != nil {
		if len(*req.Ingredients) == 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "recipe must have at least one ingredient")
		}
		columns["ingredients"] = *req.Ingredients
	}
	if req.Instructions != nil {
		if len(*req.Instructions) == 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "recipe must have at least one instruction")
		}
		columns["instructions"] = pq.StringArray(*req.Instructions)
	}
	if req.Tags != nil {
		columns["tags"] = pq.StringArray(*req.Tags)
	}
	if req.PrepMinutes != nil {
		columns["prep_minutes"] = *req.PrepMinutes
	}
	if req.CookMinutes != nil {
		columns["cook_minutes"] = *req.CookMinutes
	}
	if req.Servings != nil {
		columns["servings"] = *req.Servings
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
		}
		columns["price"] = *req.Price
	}
	if req.Cost != nil {
		if req.Cost.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "cost cannot be negative")
		}
		columns["cost"] = *req.Cost
	}
	if req.Nutrition != nil {
		columns["nutrition"] = *req.Nutrition
	}
	if len(columns) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	affected, err := s.repo.Update(ctx, userID, recipeID, columns)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update recipe")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "recipe not found")
	}

	return s.Get(ctx, userID, recipeID)
}

func (s *service) Delete(ctx context.Context, userID, recipeID uuid.UUID) error {
	affected, err := s.repo.SoftDelete(ctx, userID, recipeID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete recipe")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "recipe not found")
	}
	return nil
}
