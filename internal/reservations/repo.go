package reservations

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jcastillo-dev/comanda-backend/pkg/db/models"
)

// Repository defines persistence operations for reservations.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, reservation *models.Reservation) error
	ExistsOverlap(ctx context.Context, userID, tableID uuid.UUID, start, end time.Time) (bool, error)
	List(ctx context.Context, userID uuid.UUID, filters ListFilters) ([]ReservationDTO, error)
	FindDueForSeating(ctx context.Context, now time.Time, window time.Duration) ([]models.Reservation, error)
	FindExpiredHolds(ctx context.Context, now time.Time, holdOver time.Duration) ([]models.Reservation, error)
	MarkSeated(ctx context.Context, reservationID uuid.UUID, at time.Time) error
	MarkReleased(ctx context.Context, reservationID uuid.UUID, at time.Time) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository constructs a reservations repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, reservation *models.Reservation) error {
	return r.db.WithContext(ctx).Create(reservation).Error
}

// ExistsOverlap reports whether the table already holds an unreleased
// reservation inside the [start, end) window.
func (r *repository) ExistsOverlap(ctx context.Context, userID, tableID uuid.UUID, start, end time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("user_id = ? AND table_id = ?", userID, tableID).
		Where("released_at IS NULL").
		Where("reserved_at >= ? AND reserved_at < ?", start, end).
		Count(&count).Error
	return count > 0, err
}

type reservationRow struct {
	models.Reservation
	TableNumber *int `gorm:"column:table_number"`
}

func (r *repository) List(ctx context.Context, userID uuid.UUID, filters ListFilters) ([]ReservationDTO, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Select("reservations.*, dining_tables.number AS table_number").
		Joins("LEFT JOIN dining_tables ON dining_tables.id = reservations.table_id").
		Where("reservations.user_id = ?", userID)

	if filters.Date != nil {
		dayStart := filters.Date.Truncate(24 * time.Hour)
		query = query.Where("reservations.reserved_at >= ? AND reservations.reserved_at < ?",
			dayStart, dayStart.Add(24*time.Hour))
	}

	var rows []reservationRow
	if err := query.Order("reservations.reserved_at ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]ReservationDTO, 0, len(rows))
	for i := range rows {
		out = append(out, fromModel(&rows[i].Reservation, rows[i].TableNumber))
	}
	return out, nil
}

// FindDueForSeating returns unseated reservations whose start falls inside
// the upcoming window, across all tenants.
func (r *repository) FindDueForSeating(ctx context.Context, now time.Time, window time.Duration) ([]models.Reservation, error) {
	var rows []models.Reservation
	err := r.db.WithContext(ctx).
		Where("seated_at IS NULL AND released_at IS NULL").
		Where("reserved_at <= ? AND reserved_at > ?", now.Add(window), now.Add(-window)).
		Order("reserved_at ASC").
		Find(&rows).Error
	return rows, err
}

// FindExpiredHolds returns seated-or-due reservations whose start passed more
// than the hold-over ago without being released.
func (r *repository) FindExpiredHolds(ctx context.Context, now time.Time, holdOver time.Duration) ([]models.Reservation, error) {
	var rows []models.Reservation
	err := r.db.WithContext(ctx).
		Where("released_at IS NULL").
		Where("reserved_at <= ?", now.Add(-holdOver)).
		Order("reserved_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) MarkSeated(ctx context.Context, reservationID uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ? AND seated_at IS NULL", reservationID).
		UpdateColumn("seated_at", at).Error
}

func (r *repository) MarkReleased(ctx context.Context, reservationID uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ? AND released_at IS NULL", reservationID).
		UpdateColumn("released_at", at).Error
}
