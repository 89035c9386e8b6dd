package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/jcastillo-dev/comanda-backend/internal/reservations"
	"github.com/jcastillo-dev/comanda-backend/pkg/db/models"
	"github.com/jcastillo-dev/comanda-backend/pkg/enums"
	"github.com/jcastillo-dev/comanda-backend/pkg/logger"
	"github.com/jcastillo-dev/comanda-backend/pkg/outbox"
)

const (
	defaultSeatingWindow = 30 * time.Minute
	defaultHoldOver      = 15 * time.Minute
)

// txRunner runs a function within a database transaction.
type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// outboxEmitter writes domain events inside the caller's transaction.
type outboxEmitter interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// tableStatusSetter flips a table's status inside an open transaction,
// guarded by the status the table is expected to hold.
type tableStatusSetter interface {
	SetStatusIf(ctx context.Context, tx *gorm.DB, userID, tableID uuid.UUID, from, to enums.TableStatus) error
}

type defaultTableStatusSetter struct{}

func (defaultTableStatusSetter) SetStatusIf(ctx context.Context, tx *gorm.DB, userID, tableID uuid.UUID, from, to enums.TableStatus) error {
	if tx == nil {
		return fmt.Errorf("transaction required")
	}
	res := tx.WithContext(ctx).Exec(
		"UPDATE dining_tables SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE user_id = ? AND id = ? AND status = ?",
		to, userID, tableID, from,
	)
	return res.Error
}

// ReservationSeatingJobParams configure the reservation lifecycle job.
type ReservationSeatingJobParams struct {
	Logger       *logger.Logger
	DB           txRunner
	Reservations reservations.Repository
	Tables       tableStatusSetter

	// SeatingWindow is how far ahead of the booked time a table gets held.
	SeatingWindow time.Duration

	// HoldOver is how long past the booked time a no-show keeps the table.
	HoldOver time.Duration
}

// NewReservationSeatingJob builds the job that holds tables for upcoming
// reservations and frees them again after no-shows.
func NewReservationSeatingJob(params ReservationSeatingJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("db runner required")
	}
	if params.Reservations == nil {
		return nil, fmt.Errorf("reservations repository required")
	}
	tables := params.Tables
	if tables == nil {
		tables = defaultTableStatusSetter{}
	}
	window := params.SeatingWindow
	if window <= 0 {
		window = defaultSeatingWindow
	}
	holdOver := params.HoldOver
	if holdOver <= 0 {
		holdOver = defaultHoldOver
	}
	return &reservationSeatingJob{
		logg:     params.Logger,
		db:       params.DB,
		repo:     params.Reservations,
		tables:   tables,
		window:   window,
		holdOver: holdOver,
		now:      time.Now,
	}, nil
}

type reservationSeatingJob struct {
	logg     *logger.Logger
	db       txRunner
	repo     reservations.Repository
	tables   tableStatusSetter
	window   time.Duration
	holdOver time.Duration
	now      func() time.Time
}

func (j *reservationSeatingJob) Name() string { return "reservation-seating" }

func (j *reservationSeatingJob) Run(ctx context.Context) error {
	return multierr.Combine(
		j.seatDueReservations(ctx),
		j.releaseExpiredHolds(ctx),
	)
}

func (j *reservationSeatingJob) seatDueReservations(ctx context.Context) error {
	now := j.now().UTC()
	due, err := j.repo.FindDueForSeating(ctx, now, j.window)
	if err != nil {
		return fmt.Errorf("query reservations due for seating: %w", err)
	}
	count := 0
	for i := range due {
		if err := j.seatReservation(ctx, &due[i], now); err != nil {
			return err
		}
		count++
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{"count": count})
	j.logg.Info(logCtx, "reservation seating loop complete")
	return nil
}

func (j *reservationSeatingJob) seatReservation(ctx context.Context, reservation *models.Reservation, now time.Time) error {
	return j.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := j.repo.WithTx(tx)
		if err := repo.MarkSeated(ctx, reservation.ID, now); err != nil {
			return fmt.Errorf("mark reservation seated: %w", err)
		}
		// A table already occupied or being cleaned keeps its status; the
		// hold only claims tables that are free.
		if err := j.tables.SetStatusIf(ctx, tx, reservation.UserID, reservation.TableID, enums.TableStatusAvailable, enums.TableStatusReserved); err != nil {
			return fmt.Errorf("hold table for reservation: %w", err)
		}
		return nil
	})
}

func (j *reservationSeatingJob) releaseExpiredHolds(ctx context.Context) error {
	now := j.now().UTC()
	expired, err := j.repo.FindExpiredHolds(ctx, now, j.holdOver)
	if err != nil {
		return fmt.Errorf("query expired reservation holds: %w", err)
	}
	count := 0
	for i := range expired {
		if err := j.releaseReservation(ctx, &expired[i], now); err != nil {
			return err
		}
		count++
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{"count": count})
	j.logg.Info(logCtx, "reservation release loop complete")
	return nil
}

func (j *reservationSeatingJob) releaseReservation(ctx context.Context, reservation *models.Reservation, now time.Time) error {
	return j.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := j.repo.WithTx(tx)
		if err := repo.MarkReleased(ctx, reservation.ID, now); err != nil {
			return fmt.Errorf("mark reservation released: %w", err)
		}
		// Only frees a table still on hold; a table occupied by a live
		// order keeps its status.
		if err := j.tables.SetStatusIf(ctx, tx, reservation.UserID, reservation.TableID, enums.TableStatusReserved, enums.TableStatusAvailable); err != nil {
			return fmt.Errorf("free table after reservation: %w", err)
		}
		return nil
	})
}
