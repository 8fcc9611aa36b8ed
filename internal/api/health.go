// Copyright (c) 2026 Agrio India. All rights reserved.

// Health probes. /health answers as long as the process is up;
// /ready additionally pings Postgres and Redis so the load balancer
// stops routing to an instance that lost a backend.

package api

import (
	"log/slog"
	"net/http"

	"github.com/agrioindia/platform/internal/platform/respond"
)

// HealthDependencies holds the pingers the readiness probe exercises.
// A nil pinger skips that check, which tests use to probe selectively.
type HealthDependencies struct {
	// CheckDatabase pings the PostgreSQL pool.
	CheckDatabase func() error

	// CheckCache pings the Redis client.
	CheckCache func() error
}

type healthHandler struct {
	dependencies HealthDependencies
	logger       *slog.Logger
}

// NewHealthHandlers creates the /health and /ready http.HandlerFuncs.
func NewHealthHandlers(deps HealthDependencies, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	handler := &healthHandler{dependencies: deps, logger: logger}
	return handler.liveness, handler.readiness
}

// liveness handles GET /health.
func (handler *healthHandler) liveness(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]string{"status": "ok"})
}

// readiness handles GET /ready. Any failing dependency turns the
// response into a 503 with per-dependency detail in the body.
func (handler *healthHandler) readiness(writer http.ResponseWriter, request *http.Request) {
	type probeResult struct {
		Name  string `json:"name"`
		IsOK  bool   `json:"ok"`
		Error string `json:"error,omitempty"`
	}

	probes := []struct {
		name string
		ping func() error
	}{
		{"postgres", handler.dependencies.CheckDatabase},
		{"redis", handler.dependencies.CheckCache},
	}

	results := make([]probeResult, 0, len(probes))
	healthy := true

	for _, probe := range probes {
		if probe.ping == nil {
			continue
		}
		result := probeResult{Name: probe.name, IsOK: true}
		if err := probe.ping(); err != nil {
			result.IsOK = false
			result.Error = err.Error()
			healthy = false
			handler.logger.Error("readiness_check_failed",
				slog.String("dependency", probe.name),
				slog.Any("error", err),
			)
		}
		results = append(results, result)
	}

	status := "ready"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	respond.JSON(writer, httpStatus, map[string]any{
		"success": healthy,
		"data": map[string]any{
			"status": status,
			"checks": results,
		},
	})
}
