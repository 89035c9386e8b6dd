package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcastillo-dev/comanda-backend/pkg/db/models"
	"github.com/jcastillo-dev/comanda-backend/pkg/enums"
	"github.com/jcastillo-dev/comanda-backend/pkg/types"
)

// CreateOrderRequest is the ticket payload sent by the floor client.
type CreateOrderRequest struct {
	TableID      *uuid.UUID      `json:"table_id,omitempty"`
	CustomerName *string         `json:"customer_name,omitempty"`
	Type         string          `json:"type" validate:"required"`
	Items        types.LineItems `json:"items" validate:"required"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Tax          decimal.Decimal `json:"tax"`
	Tip          decimal.Decimal `json:"tip"`
	Total        decimal.Decimal `json:"total"`
	Notes        *string         `json:"notes,omitempty"`
}

// UpdateStatusRequest moves a ticket through its lifecycle.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// OrderDTO is the transport shape for an order, with the joined table
// number when the ticket is seated.
type OrderDTO struct {
	ID           uuid.UUID         `json:"id"`
	TableID      *uuid.UUID        `json:"table_id,omitempty"`
	TableNumber  *int              `json:"table_number,omitempty"`
	CustomerName *string           `json:"customer_name,omitempty"`
	Type         enums.OrderType   `json:"type"`
	Status       enums.OrderStatus `json:"status"`
	Items        types.LineItems   `json:"items"`
	Subtotal     decimal.Decimal   `json:"subtotal"`
	Tax          decimal.Decimal   `json:"tax"`
	Tip          decimal.Decimal   `json:"tip"`
	Total        decimal.Decimal   `json:"total"`
	Notes        *string           `json:"notes,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// ListFilters narrows the order list query.
type ListFilters struct {
	Status  *enums.OrderStatus
	TableID *uuid.UUID
	From    *time.Time
	To      *time.Time
}

// ListResponse wraps a page of orders, newest first.
type ListResponse struct {
	Orders []OrderDTO `json:"orders"`
}

// AnalyticsFilters bounds the aggregate window. Nil ends are open.
type AnalyticsFilters struct {
	From *time.Time
	To   *time.Time
}

// AnalyticsResponse merges the four aggregate queries into one object.
type AnalyticsResponse struct {
	TotalOrders       int64            `json:"total_orders"`
	TotalRevenue      decimal.Decimal  `json:"total_revenue"`
	AverageOrderValue decimal.Decimal  `json:"average_order_value"`
	StatusCounts      map[string]int64 `json:"status_counts"`
}

func reqToModel(userID uuid.UUID, orderType enums.OrderType, req CreateOrderRequest) *models.Order {
	return &models.Order{
		UserID:       userID,
		TableID:      req.TableID,
		CustomerName: req.CustomerName,
		Type:         orderType,
		Status:       enums.OrderStatusPending,
		Items:        req.Items,
		Subtotal:     req.Subtotal,
		Tax:          req.Tax,
		Tip:          req.Tip,
		Total:        req.Total,
		Notes:        req.Notes,
	}
}

func fromModel(o *models.Order, tableNumber *int) OrderDTO {
	return OrderDTO{
		ID:           o.ID,
		TableID:      o.TableID,
		TableNumber:  tableNumber,
		CustomerName: o.CustomerName,
		Type:         o.Type,
		Status:       o.Status,
		Items:        o.Items,
		Subtotal:     o.Subtotal,
		Tax:          o.Tax,
		Tip:          o.Tip,
		Total:        o.Total,
		Notes:        o.Notes,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}
