package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/delanoso/safetyhub/api/responses"
	"github.com/delanoso/safetyhub/pkg/logger"
)

// Pinger is anything readiness can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependency names one readiness probe. Optional probes are reported but do
// not fail readiness.
type Dependency struct {
	Name     string
	Pinger   Pinger
	Optional bool
}

const readyTimeout = 3 * time.Second

func HealthLive(env string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-SafetyHub-Env", env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every dependency and answers 503 when a required one fails.
func HealthReady(env string, deps []Dependency, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-SafetyHub-Env", env)
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		checks := map[string]string{}
		ready := true
		for _, dep := range deps {
			if dep.Pinger == nil {
				checks[dep.Name] = "not configured"
				continue
			}
			if err := dep.Pinger.Ping(ctx); err != nil {
				checks[dep.Name] = "error"
				if logg != nil {
					logg.Warn(logg.WithFields(ctx, map[string]any{"dependency": dep.Name, "error": err.Error()}), "health.ready.failed")
				}
				if !dep.Optional {
					ready = false
				}
				continue
			}
			checks[dep.Name] = "ok"
		}

		if !ready {
			responses.WriteSuccessStatus(w, http.StatusServiceUnavailable, map[string]any{"status": "unavailable", "checks": checks})
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
