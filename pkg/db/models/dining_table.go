package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jcastillo-dev/comanda-backend/pkg/enums"
)

// DiningTable is a physical table on the restaurant floor. The (user_id,
// number) pair is unique so the database settles races on table creation.
type DiningTable struct {
	ID        uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	UserID    uuid.UUID         `gorm:"column:user_id;type:uuid;not null;uniqueIndex:ux_dining_tables_user_number"`
	Number    int               `gorm:"column:number;not null;uniqueIndex:ux_dining_tables_user_number"`
	Capacity  int               `gorm:"column:capacity;not null"`
	Status    enums.TableStatus `gorm:"column:status;type:text;not null;default:available"`
	Location  *string           `gorm:"column:location"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate assigns the primary key so inserts work on every dialect.
func (t *DiningTable) BeforeCreate(_ *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
