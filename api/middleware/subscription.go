package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/jcastillo-dev/comanda-backend/api/responses"
	"github.com/jcastillo-dev/comanda-backend/pkg/enums"
	pkgerrors "github.com/jcastillo-dev/comanda-backend/pkg/errors"
	"github.com/jcastillo-dev/comanda-backend/pkg/logger"
)

// SubscriptionState is the billing snapshot the guard evaluates.
type SubscriptionState struct {
	Status    enums.SubscriptionStatus
	ExpiresAt *time.Time
}

// SubscriptionSource loads the current billing state for a tenant. The guard
// reads it fresh on every request so a lapsed plan locks out immediately,
// not at next login.
type SubscriptionSource interface {
	SubscriptionState(ctx context.Context, userID uuid.UUID) (SubscriptionState, error)
}

// RequireActivePlan gates premium endpoints behind an entitled subscription.
func RequireActivePlan(source SubscriptionSource, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rawID := UserIDFromContext(r.Context())
			userID, err := uuid.Parse(rawID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			if source == nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "subscription source not configured"))
				return
			}

			state, err := source.SubscriptionState(r.Context(), userID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			if !state.Status.Entitled() {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "active subscription required"))
				return
			}
			if state.ExpiresAt != nil && state.ExpiresAt.Before(time.Now()) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "subscription expired"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
