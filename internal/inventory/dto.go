package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcastillo-dev/comanda-backend/pkg/db/models"
)

// CreateItemRequest adds a stocked item to the tenant's inventory.
type CreateItemRequest struct {
	Name         string          `json:"name" validate:"required"`
	Category     string          `json:"category" validate:"required"`
	Unit         string          `json:"unit" validate:"required"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	CostPerUnit  decimal.Decimal `json:"cost_per_unit"`
	Supplier     *string         `json:"supplier,omitempty"`
}

// UpdateItemRequest carries partial updates. Nil fields are left untouched.
type UpdateItemRequest struct {
	Name         *string          `json:"name,omitempty"`
	Category     *string          `json:"category,omitempty"`
	Unit         *string          `json:"unit,omitempty"`
	CurrentStock *decimal.Decimal `json:"current_stock,omitempty"`
	MinStock     *decimal.Decimal `json:"min_stock,omitempty"`
	CostPerUnit  *decimal.Decimal `json:"cost_per_unit,omitempty"`
	Supplier     *string          `json:"supplier,omitempty"`
}

// ItemDTO is the transport shape; IsLowStock is derived on every read.
type ItemDTO struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Unit         string          `json:"unit"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	CostPerUnit  decimal.Decimal `json:"cost_per_unit"`
	Supplier     *string         `json:"supplier,omitempty"`
	IsLowStock   bool            `json:"is_low_stock"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ListFilters narrows the inventory list query.
type ListFilters struct {
	Category *string
	LowStock bool
}

// ListResponse wraps the tenant's inventory.
type ListResponse struct {
	Items []ItemDTO `json:"items"`
}

// AlertDTO describes an understocked item ordered by how far below the
// threshold it sits.
type AlertDTO struct {
	ItemDTO
	Deficit decimal.Decimal `json:"deficit"`
}

// AlertsResponse wraps the low-stock report.
type AlertsResponse struct {
	Alerts []AlertDTO `json:"alerts"`
}

func fromModel(i *models.InventoryItem) ItemDTO {
	return ItemDTO{
		ID:           i.ID,
		Name:         i.Name,
		Category:     i.Category,
		Unit:         i.Unit,
		CurrentStock: i.CurrentStock,
		MinStock:     i.MinStock,
		CostPerUnit:  i.CostPerUnit,
		Supplier:     i.Supplier,
		IsLowStock:   i.IsLowStock(),
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}
