package recipes

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/jcastillo-dev/comanda-backend/pkg/db/models"
	"github.com/jcastillo-dev/comanda-backend/pkg/types"
)

// CreateRecipeRequest adds a menu item with its ingredient list.
type CreateRecipeRequest struct {
	Name         string               `json:"name" validate:"required"`
	Description  *string              `json:"description,omitempty"`
	Category     string               `json:"category" validate:"required"`
	Ingredients  types.Ingredients    `json:"ingredients" validate:"required"`
	Instructions []string             `json:"instructions" validate:"required"`
	Tags         []string             `json:"tags,omitempty"`
	PrepMinutes  int                  `json:"prep_minutes" validate:"gte=0"`
	CookMinutes  int                  `json:"cook_minutes" validate:"gte=0"`
	Servings     int                  `json:"servings" validate:"gte=1"`
	Price        decimal.Decimal      `json:"price"`
	Cost         decimal.Decimal      `json:"cost"`
	Nutrition    *types.NutritionInfo `json:"nutrition,omitempty"`
}

// UpdateRecipeRequest carries partial updates. Nil fields are left untouched.
type UpdateRecipeRequest struct {
	Name         *string              `json:"name,omitempty"`
	Description  *string              `json:"description,omitempty"`
	Category     *string              `json:"category,omitempty"`
	Ingredients  *types.Ingredients   `json:"ingredients,omitempty"`
	Instructions *[]string            `json:"instructions,omitempty"`
	Tags         *[]string            `json:"tags,omitempty"`
	PrepMinutes  *int                 `json:"prep_minutes,omitempty" validate:"omitempty,gte=0"`
	CookMinutes  *int                 `json:"cook_minutes,omitempty" validate:"omitempty,gte=0"`
	Servings     *int                 `json:"servings,omitempty" validate:"omitempty,gte=1"`
	Price        *decimal.Decimal     `json:"price,omitempty"`
	Cost         *decimal.Decimal     `json:"cost,omitempty"`
	Nutrition    *types.NutritionInfo `json:"nutrition,omitempty"`
}

// RecipeDTO is the transport shape for a menu item.
type RecipeDTO struct {
	ID           uuid.UUID           `json:"id"`
	Name         string              `json:"name"`
	Description  *string             `json:"description,omitempty"`
	Category     string              `json:"category"`
	Ingredients  types.Ingredients   `json:"ingredients"`
	Instructions []string            `json:"instructions"`
	Tags         []string            `json:"tags,omitempty"`
	PrepMinutes  int                 `json:"prep_minutes"`
	CookMinutes  int                 `json:"cook_minutes"`
	Servings     int                 `json:"servings"`
	Price        decimal.Decimal     `json:"price"`
	Cost         decimal.Decimal     `json:"cost"`
	Margin       decimal.Decimal     `json:"margin"`
	Nutrition    types.NutritionInfo `json:"nutrition"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// ListFilters narrows the recipe list query.
type ListFilters struct {
	Category *string
	Tag      *string
}

// ListResponse wraps the tenant's active menu.
type ListResponse struct {
	Recipes []RecipeDTO `json:"recipes"`
}

func fromModel(r *models.Recipe) RecipeDTO {
	return RecipeDTO{
		ID:           r.ID,
		Name:         r.Name,
		Description:  r.Description,
		Category:     r.Category,
		Ingredients:  r.Ingredients,
		Instructions: []string(r.Instructions),
		Tags:         []string(r.Tags),
		PrepMinutes:  r.PrepMinutes,
		CookMinutes:  r.CookMinutes,
		Servings:     r.Servings,
		Price:        r.Price,
		Cost:         r.Cost,
		Margin:       r.Margin(),
		Nutrition:    r.Nutrition,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func reqToModel(userID uuid.UUID, req CreateRecipeRequest) *models.Recipe {
	recipe := &models.Recipe{
		UserID:       userID,
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		Ingredients:  req.Ingredients,
		Instructions: pq.StringArray(req.Instructions),
		Tags:         pq.StringArray(req.Tags),
		PrepMinutes:  req.PrepMinutes,
		CookMinutes:  req.CookMinutes,
		Servings:     req.Servings,
		Price:        req.Price,
		Cost:         req.Cost,
		IsActive:     true,
	}
	if req.Nutrition != nil {
		recipe.Nutrition = *req.Nutrition
	}
	if recipe.Servings == 0 {
		recipe.Servings = 1
	}
	return recipe
}
