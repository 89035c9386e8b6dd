package outbox

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcastillo-dev/comanda-backend/pkg/enums"
)

// OrderCreatedData is the data section of an order.created event.
type OrderCreatedData struct {
	OrderID uuid.UUID       `json:"orderId"`
	TableID *uuid.UUID      `json:"tableId,omitempty"`
	Type    enums.OrderType `json:"type"`
	Total   decimal.Decimal `json:"total"`
}

// OrderStatusChangedData is the data section of an order.status_changed event.
type OrderStatusChangedData struct {
	OrderID    uuid.UUID         `json:"orderId"`
	FromStatus enums.OrderStatus `json:"fromStatus"`
	ToStatus   enums.OrderStatus `json:"toStatus"`
}

// ReservationCreatedData is the data section of a reservation.created event.
type ReservationCreatedData struct {
	ReservationID uuid.UUID `json:"reservationId"`
	TableID       uuid.UUID `json:"tableId"`
	PartySize     int       `json:"partySize"`
	ReservedAt    string    `json:"reservedAt"`
}

// LowStockData is the data section of an inventory.low_stock event.
type LowStockData struct {
	ItemID       uuid.UUID       `json:"itemId"`
	Name         string          `json:"name"`
	CurrentStock decimal.Decimal `json:"currentStock"`
	MinStock     decimal.Decimal `json:"minStock"`
}
