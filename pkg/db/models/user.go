package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jcastillo-dev/comanda-backend/pkg/enums"
)

// User is the tenant identity. One user account owns one restaurant's data;
// the subscription fields live here because billing is per tenant.
type User struct {
	ID                    uuid.UUID                `gorm:"column:id;type:uuid;primaryKey"`
	Email                 string                   `gorm:"type:text;not null;uniqueIndex:ux_users_email"`
	PasswordHash          string                   `gorm:"column:password_hash;not null"`
	RestaurantName        string                   `gorm:"column:restaurant_name;not null"`
	Phone                 *string                  `gorm:"column:phone"`
	IsActive              bool                     `gorm:"column:is_active;not null;default:true"`
	LastLoginAt           *time.Time               `gorm:"column:last_login_at"`
	SubscriptionPlan      enums.SubscriptionPlan   `gorm:"column:subscription_plan;type:text;not null;default:starter"`
	SubscriptionStatus    enums.SubscriptionStatus `gorm:"column:subscription_status;type:text;not null;default:trialing"`
	SubscriptionExpiresAt *time.Time               `gorm:"column:subscription_expires_at"`
	CreatedAt             time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt             time.Time                `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate assigns the primary key so inserts work on every dialect.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
