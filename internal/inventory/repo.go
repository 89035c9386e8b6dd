package inventory

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jcastillo-dev/comanda-backend/pkg/db/models"
)

// Repository exposes inventory persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an inventory repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new inventory item.
func (r *Repository) Create(ctx context.Context, item *models.InventoryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// FindByID loads an item scoped to its owner.
func (r *Repository) FindByID(ctx context.Context, userID, itemID uuid.UUID) (*models.InventoryItem, error) {
	var item models.InventoryItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, itemID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// List returns the tenant's items with optional category and low-stock
// filters, alphabetical by name.
func (r *Repository) List(ctx context.Context, userID uuid.UUID, filters ListFilters) ([]models.InventoryItem, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID)

	if filters.Category != nil {
		query = query.Where("category = ?", *filters.Category)
	}
	if filters.LowStock {
		query = query.Where("current_stock <= min_stock")
	}

	var items []models.InventoryItem
	err := query.Order("name ASC").Find(&items).Error
	return items, err
}

// Update applies the column set to the owner's item and reports how many
// rows matched.
func (r *Repository) Update(ctx context.Context, userID, itemID uuid.UUID, columns map[string]any) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Where("user_id = ? AND id = ?", userID, itemID).
		Updates(columns)
	return result.RowsAffected, result.Error
}

// ListLowStock returns the tenant's understocked items ordered by deficit
// ascending, so the closest-to-threshold items come first.
func (r *Repository) ListLowStock(ctx context.Context, userID uuid.UUID) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND current_stock <= min_stock", userID).
		Order("(min_stock - current_stock) ASC").
		Find(&items).Error
	return items, err
}

// ListAllLowStock returns understocked items across every tenant. The
// low-stock report job walks this set.
func (r *Repository) ListAllLowStock(ctx context.Context) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	err := r.db.WithContext(ctx).
		Where("current_stock <= min_stock").
		Order("user_id, (min_stock - current_stock) ASC").
		Find(&items).Error
	return items, err
}

// CountLowStock counts the tenant's understocked items.
func (r *Repository) CountLowStock(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Where("user_id = ? AND current_stock <= min_stock", userID).
		Count(&count).Error
	return count, err
}
