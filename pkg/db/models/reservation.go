package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reservation books a dining table for a future party. Creating one never
// touches the table's live status; the seating cron flips tables when the
// reservation window opens.
type Reservation struct {
	ID            uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	UserID        uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index:ix_reservations_user_time"`
	TableID       uuid.UUID  `gorm:"column:table_id;type:uuid;not null"`
	CustomerName  string     `gorm:"column:customer_name;not null"`
	CustomerPhone *string    `gorm:"column:customer_phone"`
	PartySize     int        `gorm:"column:party_size;not null"`
	ReservedAt    time.Time  `gorm:"column:reserved_at;not null;index:ix_reservations_user_time"`
	Notes         *string    `gorm:"column:notes"`
	SeatedAt      *time.Time `gorm:"column:seated_at"`
	ReleasedAt    *time.Time `gorm:"column:released_at"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate assigns the primary key so inserts work on every dialect.
func (r *Reservation) BeforeCreate(_ *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
