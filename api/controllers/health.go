package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/multierr"

	"github.com/jcastillo-dev/comanda-backend/api/responses"
	"github.com/jcastillo-dev/comanda-backend/pkg/config"
	"github.com/jcastillo-dev/comanda-backend/pkg/db"
	pkgerrors "github.com/jcastillo-dev/comanda-backend/pkg/errors"
	"github.com/jcastillo-dev/comanda-backend/pkg/logger"
	"github.com/jcastillo-dev/comanda-backend/pkg/redis"
)

const readyCheckTimeout = 3 * time.Second

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Comanda-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when both backing stores answer a ping.
// Every store is probed even after a failure so one response names all
// unreachable dependencies.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Comanda-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readyCheckTimeout)
		defer cancel()

		var unready error
		if dbP != nil {
			if err := dbP.Ping(ctx); err != nil {
				unready = multierr.Append(unready, fmt.Errorf("database unreachable: %w", err))
			}
		}
		if redisP != nil {
			if err := redisP.Ping(ctx); err != nil {
				unready = multierr.Append(unready, fmt.Errorf("redis unreachable: %w", err))
			}
		}
		if unready != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, unready, "dependencies unreachable"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
