package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/relistlabs/relist-backend/api/responses"
	"github.com/relistlabs/relist-backend/pkg/config"
	"github.com/relistlabs/relist-backend/pkg/db"
	pkgerrors "github.com/relistlabs/relist-backend/pkg/errors"
	"github.com/relistlabs/relist-backend/pkg/logger"
	"github.com/relistlabs/relist-backend/pkg/redis"
)

// HealthLive reports process liveness.
func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Relist-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness by pinging the hard dependencies. Redis is
// optional, pass nil when it is not configured.
func HealthReady(cfg *config.Config, database *db.Client, cache *redis.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Relist-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		checks := map[string]string{"database": "ok"}
		if err := database.Ping(ctx); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unreachable"))
			return
		}
		if cache != nil {
			checks["redis"] = "ok"
			if err := cache.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unreachable"))
				return
			}
		}

		checks["status"] = "ready"
		responses.WriteSuccess(w, checks)
	}
}
