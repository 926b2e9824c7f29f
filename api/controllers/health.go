package controllers

import (
	"net/http"

	"github.com/Zuby128/restorder-admin/api/responses"
	"github.com/Zuby128/restorder-admin/pkg/config"
	"github.com/Zuby128/restorder-admin/pkg/db"
	"github.com/Zuby128/restorder-admin/pkg/errors"
	"github.com/Zuby128/restorder-admin/pkg/logger"
	"github.com/Zuby128/restorder-admin/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RestOrder-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady answers ready only when the database and Redis respond.
// A nil pinger is skipped so partial wiring in tests stays green.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RestOrder-Env", cfg.App.Env)

		checks := map[string]string{}
		if dbP != nil {
			if err := dbP.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, errors.Wrap(errors.CodeDependency, err, "database unreachable"))
				return
			}
			checks["database"] = "ok"
		}
		if redisP != nil {
			if err := redisP.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, errors.Wrap(errors.CodeDependency, err, "redis unreachable"))
				return
			}
			checks["redis"] = "ok"
		}
		checks["status"] = "ready"
		responses.WriteSuccess(w, checks)
	}
}
