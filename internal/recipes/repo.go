package recipes

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jcastillo-dev/comanda-backend/pkg/db/models"
)

// Repository exposes recipe persistence operations. Reads only ever see
// active rows; deletion flips is_active.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a recipes repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new recipe.
func (r *Repository) Create(ctx context.Context, recipe *models.Recipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

// FindByID loads an active recipe scoped to its owner.
func (r *Repository) FindByID(ctx context.Context, userID, recipeID uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ? AND is_active = ?", userID, recipeID, true).
		First(&recipe).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// List returns the tenant's active recipes, alphabetical by name.
func (r *Repository) List(ctx context.Context, userID uuid.UUID, filters ListFilters) ([]models.Recipe, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true)

	if filters.Category != nil {
		query = query.Where("category = ?", *filters.Category)
	}
	if filters.Tag != nil {
		query = query.Where("? = ANY(tags)", *filters.Tag)
	}

	var recipes []models.Recipe
	err := query.Order("name ASC").Find(&recipes).Error
	return recipes, err
}

// Update applies the column set to the owner's active recipe and reports how
// many rows matched.
func (r *Repository) Update(ctx context.Context, userID, recipeID uuid.UUID, columns map[string]any) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Where("user_id = ? AND id = ? AND is_active = ?", userID, recipeID, true).
		Updates(columns)
	return result.RowsAffected, result.Error
}

// SoftDelete deactivates the recipe so order history keeps its references.
func (r *Repository) SoftDelete(ctx context.Context, userID, recipeID uuid.UUID) (int64, error) {
	return r.Update(ctx, userID, recipeID, map[string]any{"is_active": false})
}
