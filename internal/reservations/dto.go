package reservations

import (
	"time"

	"github.com/google/uuid"

	"github.com/jcastillo-dev/comanda-backend/pkg/db/models"
)

// CreateReservationRequest books a table for a future party.
type CreateReservationRequest struct {
	TableID       uuid.UUID `json:"table_id" validate:"required"`
	CustomerName  string    `json:"customer_name" validate:"required"`
	CustomerPhone *string   `json:"customer_phone,omitempty"`
	PartySize     int       `json:"party_size" validate:"required,gte=1"`
	ReservedAt    string    `json:"reserved_at" validate:"required"`
	Notes         *string   `json:"notes,omitempty"`
}

// ReservationDTO is the transport shape with the joined table number.
type ReservationDTO struct {
	ID            uuid.UUID  `json:"id"`
	TableID       uuid.UUID  `json:"table_id"`
	TableNumber   *int       `json:"table_number,omitempty"`
	CustomerName  string     `json:"customer_name"`
	CustomerPhone *string    `json:"customer_phone,omitempty"`
	PartySize     int        `json:"party_size"`
	ReservedAt    time.Time  `json:"reserved_at"`
	Notes         *string    `json:"notes,omitempty"`
	SeatedAt      *time.Time `json:"seated_at,omitempty"`
	ReleasedAt    *time.Time `json:"released_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ListFilters narrows the reservation list query to one calendar day.
type ListFilters struct {
	Date *time.Time
}

// ListResponse wraps the reservations for the requested window.
type ListResponse struct {
	Reservations []ReservationDTO `json:"reservations"`
}

func fromModel(r *models.Reservation, tableNumber *int) ReservationDTO {
	return ReservationDTO{
		ID:            r.ID,
		TableID:       r.TableID,
		TableNumber:   tableNumber,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		PartySize:     r.PartySize,
		ReservedAt:    r.ReservedAt,
		Notes:         r.Notes,
		SeatedAt:      r.SeatedAt,
		ReleasedAt:    r.ReleasedAt,
		CreatedAt:     r.CreatedAt,
	}
}
