package controllers

import (
	"net/http"
	"time"

	"github.com/jcastillo-dev/comanda-backend/api/responses"
	"github.com/jcastillo-dev/comanda-backend/api/validators"
	"github.com/jcastillo-dev/comanda-backend/internal/analytics"
	pkgerrors "github.com/jcastillo-dev/comanda-backend/pkg/errors"
	"github.com/jcastillo-dev/comanda-backend/pkg/logger"
)

// Sales defaults to the trailing month when no range is given.
const defaultSalesRangeDays = 30

// AnalyticsDashboard returns the tenant's operational overview.
func AnalyticsDashboard(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "analytics service unavailable"))
			return
		}

		userID, err := tenantID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Dashboard(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// AnalyticsSales returns the per-day revenue series for a date range.
func AnalyticsSales(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "analytics service unavailable"))
			return
		}

		userID, err := tenantID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		fromParam, err := validators.ParseQueryDate(r, "from")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		toParam, err := validators.ParseQueryDate(r, "to")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		to := time.Now().UTC().Truncate(24 * time.Hour).Add(24 * time.Hour)
		if toParam != nil {
			to = toParam.Add(24 * time.Hour)
		}
		from := to.AddDate(0, 0, -defaultSalesRangeDays)
		if fromParam != nil {
			from = *fromParam
		}

		result, err := svc.Sales(r.Context(), userID, from, to)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
