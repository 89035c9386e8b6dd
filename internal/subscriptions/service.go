package subscriptions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jcastillo-dev/comanda-backend/api/middleware"
	"github.com/jcastillo-dev/comanda-backend/pkg/db/models"
	"github.com/jcastillo-dev/comanda-backend/pkg/enums"
	pkgerrors "github.com/jcastillo-dev/comanda-backend/pkg/errors"
)

// Plan changes grant a fresh billing cycle from the moment of the switch.
const billingCycle = 30 * 24 * time.Hour

type userRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateSubscription(ctx context.Context, id uuid.UUID, plan enums.SubscriptionPlan, status enums.SubscriptionStatus, expiresAt *time.Time) error
}

// Service manages the tenant's subscription record. It also backs the
// plan guard middleware through SubscriptionState.
type Service interface {
	ChangePlan(ctx context.Context, userID uuid.UUID, req ChangePlanRequest) (*SubscriptionDTO, error)
	Current(ctx context.Context, userID uuid.UUID) (*SubscriptionDTO, error)
	SubscriptionState(ctx context.Context, userID uuid.UUID) (middleware.SubscriptionState, error)
}

type service struct {
	users userRepository
	now   func() time.Time
}

// ServiceParams bundles the dependencies for the subscriptions service.
type ServiceParams struct {
	Users userRepository

	// Now is overridable in tests; defaults to time.Now.
	Now func() time.Time
}

// NewService constructs a subscriptions service.
func NewService(params ServiceParams) (Service, error) {
	if params.Users == nil {
		return nil, fmt.Errorf("users repository is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{users: params.Users, now: now}, nil
}

func (s *service) ChangePlan(ctx context.Context, userID uuid.UUID, req ChangePlanRequest) (*SubscriptionDTO, error) {
	plan, err := enums.ParseSubscriptionPlan(req.Plan)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown subscription plan")
	}

	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	expiry := s.now().UTC().Add(billingCycle)
	if err := s.users.UpdateSubscription(ctx, user.ID, plan, enums.SubscriptionStatusActive, &expiry); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update subscription")
	}

	return &SubscriptionDTO{
		Plan:      string(plan),
		Status:    string(enums.SubscriptionStatusActive),
		ExpiresAt: &expiry,
	}, nil
}

func (s *service) Current(ctx context.Context, userID uuid.UUID) (*SubscriptionDTO, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return fromUser(user), nil
}

// SubscriptionState satisfies the plan guard's source contract.
func (s *service) SubscriptionState(ctx context.Context, userID uuid.UUID) (middleware.SubscriptionState, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return middleware.SubscriptionState{}, err
	}
	return middleware.SubscriptionState{
		Status:    user.SubscriptionStatus,
		ExpiresAt: user.SubscriptionExpiresAt,
	}, nil
}

func (s *service) loadUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return user, nil
}
