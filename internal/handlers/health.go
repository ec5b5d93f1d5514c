package handlers

import (
	"net/http"

	"github.com/benvon/bookmark-manager/internal/config"
)

// HealthChecker handles health check requests
type HealthChecker struct {
	service     string
	version     string
	environment func() string
}

// NewHealthChecker creates a new health checker.
// environment is consulted on every request; nil means config.Environment.
func NewHealthChecker(service, version string, environment func() string) *HealthChecker {
	if environment == nil {
		environment = config.Environment
	}
	return &HealthChecker{
		service:     service,
		version:     version,
		environment: environment,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status      string `json:"status"`
	Service     string `json:"service"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

// HealthCheck handles the /health endpoint. It is a liveness probe only.
func (h *HealthChecker) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{
		Status:      "healthy",
		Service:     h.service,
		Version:     h.version,
		Environment: h.environment(),
	})
}
