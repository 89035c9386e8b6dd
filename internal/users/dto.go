package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/jcastillo-dev/comanda-backend/pkg/db/models"
	"github.com/jcastillo-dev/comanda-backend/pkg/enums"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID                    uuid.UUID                `json:"id"`
	Email                 string                   `json:"email"`
	RestaurantName        string                   `json:"restaurant_name"`
	Phone                 *string                  `json:"phone,omitempty"`
	IsActive              bool                     `json:"is_active"`
	LastLoginAt           *time.Time               `json:"last_login_at,omitempty"`
	SubscriptionPlan      enums.SubscriptionPlan   `json:"subscription_plan"`
	SubscriptionStatus    enums.SubscriptionStatus `json:"subscription_status"`
	SubscriptionExpiresAt *time.Time               `json:"subscription_expires_at,omitempty"`
	CreatedAt             time.Time                `json:"created_at"`
	UpdatedAt             time.Time                `json:"updated_at"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Email                 string
	PasswordHash          string
	RestaurantName        string
	Phone                 *string
	SubscriptionPlan      enums.SubscriptionPlan
	SubscriptionStatus    enums.SubscriptionStatus
	SubscriptionExpiresAt *time.Time
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:                    u.ID,
		Email:                 u.Email,
		RestaurantName:        u.RestaurantName,
		Phone:                 u.Phone,
		IsActive:              u.IsActive,
		LastLoginAt:           u.LastLoginAt,
		SubscriptionPlan:      u.SubscriptionPlan,
		SubscriptionStatus:    u.SubscriptionStatus,
		SubscriptionExpiresAt: u.SubscriptionExpiresAt,
		CreatedAt:             u.CreatedAt,
		UpdatedAt:             u.UpdatedAt,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	plan := c.SubscriptionPlan
	if !plan.IsValid() {
		plan = enums.SubscriptionPlanStarter
	}
	status := c.SubscriptionStatus
	if !status.IsValid() {
		status = enums.SubscriptionStatusTrialing
	}

	return &models.User{
		Email:                 c.Email,
		PasswordHash:          c.PasswordHash,
		RestaurantName:        c.RestaurantName,
		Phone:                 c.Phone,
		IsActive:              true,
		SubscriptionPlan:      plan,
		SubscriptionStatus:    status,
		SubscriptionExpiresAt: c.SubscriptionExpiresAt,
	}
}
