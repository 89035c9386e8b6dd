package subscriptions

import (
	"time"

	"github.com/jcastillo-dev/comanda-backend/pkg/db/models"
)

// ChangePlanRequest selects the plan a tenant wants to move to.
type ChangePlanRequest struct {
	Plan string `json:"plan" validate:"required"`
}

// SubscriptionDTO is the billing snapshot returned to the owner.
type SubscriptionDTO struct {
	Plan      string     `json:"plan"`
	Status    string     `json:"status"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

func fromUser(user *models.User) *SubscriptionDTO {
	return &SubscriptionDTO{
		Plan:      string(user.SubscriptionPlan),
		Status:    string(user.SubscriptionStatus),
		ExpiresAt: user.SubscriptionExpiresAt,
	}
}
