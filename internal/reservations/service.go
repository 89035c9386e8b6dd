package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jcastillo-dev/comanda-backend/pkg/db/models"
	"github.com/jcastillo-dev/comanda-backend/pkg/enums"
	pkgerrors "github.com/jcastillo-dev/comanda-backend/pkg/errors"
	"github.com/jcastillo-dev/comanda-backend/pkg/outbox"
)

// overlapWindow is the slot a booking holds a table for; a second booking on
// the same table inside it is rejected.
const overlapWindow = 2 * time.Hour

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// TableFinder checks that the booked table belongs to the booking tenant.
type TableFinder interface {
	FindByID(ctx context.Context, userID, tableID uuid.UUID) (*models.DiningTable, error)
}

// Service defines reservation operations used by the controllers.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, req CreateReservationRequest) (*ReservationDTO, error)
	List(ctx context.Context, userID uuid.UUID, filters ListFilters) (*ListResponse, error)
}

type service struct {
	repo   Repository
	tx     txRunner
	outbox outboxPublisher
	tables TableFinder
}

// NewService builds a reservations service with the required dependencies.
func NewService(repo Repository, tx txRunner, outbox outboxPublisher, tables TableFinder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("reservations repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if outbox == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	if tables == nil {
		return nil, fmt.Errorf("table finder required")
	}
	return &service{
		repo:   repo,
		tx:     tx,
		outbox: outbox,
		tables: tables,
	}, nil
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, req CreateReservationRequest) (*ReservationDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if req.PartySize < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "party size must be at least 1")
	}

	reservedAt, err := time.Parse(time.RFC3339, req.ReservedAt)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "reserved_at must be RFC 3339")
	}

	table, err := s.tables.FindByID(ctx, userID, req.TableID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "table not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load table")
	}
	if req.PartySize > table.Capacity {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "party size exceeds table capacity")
	}

	start := reservedAt.UTC().Add(-overlapWindow)
	end := reservedAt.UTC().Add(overlapWindow)
	conflict, err := s.repo.ExistsOverlap(ctx, userID, req.TableID, start, end)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check reservation overlap")
	}
	if conflict {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "table already reserved in that time slot")
	}

	reservation := &models.Reservation{
		UserID:        userID,
		TableID:       req.TableID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		PartySize:     req.PartySize,
		ReservedAt:    reservedAt.UTC(),
		Notes:         req.Notes,
	}

	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if err := repo.Create(ctx, reservation); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create reservation")
		}

		event := outbox.DomainEvent{
			EventType:     enums.OutboxEventReservationCreated,
			AggregateType: enums.OutboxAggregateReservation,
			AggregateID:   reservation.ID,
			TenantID:      userID,
			Data: outbox.ReservationCreatedData{
				ReservationID: reservation.ID,
				TableID:       reservation.TableID,
				PartySize:     reservation.PartySize,
				ReservedAt:    reservation.ReservedAt.Format(time.RFC3339),
			},
		}
		return s.outbox.Emit(ctx, tx, event)
	})
	if txErr != nil {
		return nil, txErr
	}

	number := table.Number
	dto := fromModel(reservation, &number)
	return &dto, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID, filters ListFilters) (*ListResponse, error) {
	rows, err := s.repo.List(ctx, userID, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reservations")
	}
	return &ListResponse{Reservations: rows}, nil
}
