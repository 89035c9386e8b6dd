package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InventoryItem is a stocked ingredient or supply. Low-stock state is always
// derived from current vs minimum stock, never stored.
type InventoryItem struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	UserID       uuid.UUID       `gorm:"column:user_id;type:uuid;not null;index:ix_inventory_items_user"`
	Name         string          `gorm:"column:name;not null"`
	Category     string          `gorm:"column:category;not null"`
	Unit         string          `gorm:"column:unit;not null"`
	CurrentStock decimal.Decimal `gorm:"column:current_stock;type:numeric(12,3);not null"`
	MinStock     decimal.Decimal `gorm:"column:min_stock;type:numeric(12,3);not null"`
	CostPerUnit  decimal.Decimal `gorm:"column:cost_per_unit;type:numeric(12,2);not null"`
	Supplier     *string         `gorm:"column:supplier"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// IsLowStock reports whether the item is at or below its minimum stock.
func (i InventoryItem) IsLowStock() bool {
	return i.CurrentStock.LessThanOrEqual(i.MinStock)
}

// Deficit returns min stock minus current stock. Positive means understocked.
func (i InventoryItem) Deficit() decimal.Decimal {
	return i.MinStock.Sub(i.CurrentStock)
}

// BeforeCreate assigns the primary key so inserts work on every dialect.
func (i *InventoryItem) BeforeCreate(_ *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
