package tables

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jcastillo-dev/comanda-backend/pkg/db/models"
	"github.com/jcastillo-dev/comanda-backend/pkg/enums"
)

// Repository exposes dining table persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a tables repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new dining table.
func (r *Repository) Create(ctx context.Context, table *models.DiningTable) error {
	return r.db.WithContext(ctx).Create(table).Error
}

// FindByID loads a table scoped to its owner.
func (r *Repository) FindByID(ctx context.Context, userID, tableID uuid.UUID) (*models.DiningTable, error) {
	var table models.DiningTable
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, tableID).
		First(&table).Error
	if err != nil {
		return nil, err
	}
	return &table, nil
}

// ListByUser returns all tables for a tenant ordered by table number.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.DiningTable, error) {
	var tables []models.DiningTable
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("number ASC").
		Find(&tables).Error
	return tables, err
}

// Update applies the column set to the owner's table and reports how many
// rows matched.
func (r *Repository) Update(ctx context.Context, userID, tableID uuid.UUID, columns map[string]any) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.DiningTable{}).
		Where("user_id = ? AND id = ?", userID, tableID).
		Updates(columns)
	return result.RowsAffected, result.Error
}

// UpdateStatus flips a table's floor status.
func (r *Repository) UpdateStatus(ctx context.Context, userID, tableID uuid.UUID, status enums.TableStatus) (int64, error) {
	return r.Update(ctx, userID, tableID, map[string]any{"status": status})
}
