package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jcastillo-dev/comanda-backend/pkg/enums"
	"github.com/jcastillo-dev/comanda-backend/pkg/types"
)

// Order is a customer ticket. TableID is null for takeout and delivery.
type Order struct {
	ID           uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	UserID       uuid.UUID         `gorm:"column:user_id;type:uuid;not null;index:ix_orders_user_created"`
	TableID      *uuid.UUID        `gorm:"column:table_id;type:uuid"`
	CustomerName *string           `gorm:"column:customer_name"`
	Type         enums.OrderType   `gorm:"column:type;type:text;not null"`
	Status       enums.OrderStatus `gorm:"column:status;type:text;not null;default:pending"`
	Items        types.LineItems   `gorm:"column:items;type:jsonb;not null"`
	Subtotal     decimal.Decimal   `gorm:"column:subtotal;type:numeric(12,2);not null"`
	Tax          decimal.Decimal   `gorm:"column:tax;type:numeric(12,2);not null"`
	Tip          decimal.Decimal   `gorm:"column:tip;type:numeric(12,2);not null"`
	Total        decimal.Decimal   `gorm:"column:total;type:numeric(12,2);not null"`
	Notes        *string           `gorm:"column:notes"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime;index:ix_orders_user_created"`
	UpdatedAt    time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate assigns the primary key so inserts work on every dialect.
func (o *Order) BeforeCreate(_ *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
