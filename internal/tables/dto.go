package tables

import (
	"time"

	"github.com/google/uuid"

	"github.com/jcastillo-dev/comanda-backend/pkg/db/models"
	"github.com/jcastillo-dev/comanda-backend/pkg/enums"
)

// TableDTO is the transport shape for a dining table.
type TableDTO struct {
	ID        uuid.UUID         `json:"id"`
	Number    int               `json:"number"`
	Capacity  int               `json:"capacity"`
	Status    enums.TableStatus `json:"status"`
	Location  *string           `json:"location,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// CreateTableRequest is the payload for adding a table to the floor.
type CreateTableRequest struct {
	Number   int     `json:"number" validate:"required,gt=0"`
	Capacity int     `json:"capacity" validate:"required,gt=0"`
	Location *string `json:"location,omitempty"`
}

// UpdateTableRequest carries partial updates for a table. Nil fields are
// left untouched.
type UpdateTableRequest struct {
	Capacity *int    `json:"capacity,omitempty" validate:"omitempty,gt=0"`
	Status   *string `json:"status,omitempty"`
	Location *string `json:"location,omitempty"`
}

// ListResponse wraps the tenant's full floor plan.
type ListResponse struct {
	Tables []TableDTO `json:"tables"`
}

func FromModel(t *models.DiningTable) TableDTO {
	return TableDTO{
		ID:        t.ID,
		Number:    t.Number,
		Capacity:  t.Capacity,
		Status:    t.Status,
		Location:  t.Location,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
