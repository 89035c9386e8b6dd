package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jcastillo-dev/comanda-backend/pkg/types"
)

// Recipe is a menu item with its ingredient list and costing. Rows are
// soft-deleted by flipping IsActive so order history keeps its references.
type Recipe struct {
	ID           uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	UserID       uuid.UUID           `gorm:"column:user_id;type:uuid;not null;index:ix_recipes_user"`
	Name         string              `gorm:"column:name;not null"`
	Description  *string             `gorm:"column:description"`
	Category     string              `gorm:"column:category;not null"`
	Ingredients  types.Ingredients   `gorm:"column:ingredients;type:jsonb;not null"`
	Instructions pq.StringArray      `gorm:"column:instructions;type:text[];not null"`
	Tags         pq.StringArray      `gorm:"column:tags;type:text[]"`
	PrepMinutes  int                 `gorm:"column:prep_minutes;not null;default:0"`
	CookMinutes  int                 `gorm:"column:cook_minutes;not null;default:0"`
	Servings     int                 `gorm:"column:servings;not null;default:1"`
	Price        decimal.Decimal     `gorm:"column:price;type:numeric(12,2);not null"`
	Cost         decimal.Decimal     `gorm:"column:cost;type:numeric(12,2);not null"`
	Nutrition    types.NutritionInfo `gorm:"column:nutrition;type:jsonb"`
	IsActive     bool                `gorm:"column:is_active;not null;default:true"`
	CreatedAt    time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// Margin returns price minus cost.
func (r Recipe) Margin() decimal.Decimal {
	return r.Price.Sub(r.Cost)
}

// BeforeCreate assigns the primary key so inserts work on every dialect.
func (r *Recipe) BeforeCreate(_ *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
