package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/benvon/bookmark-manager/internal/config"
)

func decodeHealth(t *testing.T, w *httptest.ResponseRecorder) HealthResponse {
	t.Helper()

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected Content-Type 'application/json', got '%s'", ct)
	}

	var body HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return body
}

func TestHealthChecker_HealthCheck(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		environment string
	}{
		{name: "development", environment: "development"},
		{name: "production", environment: "production"},
		{name: "custom", environment: "staging-eu"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := NewHealthChecker(config.ServiceName, "1.0.0", func() string { return tt.environment })

			w := httptest.NewRecorder()
			h.HealthCheck(w, httptest.NewRequest("GET", "/health", nil))

			body := decodeHealth(t, w)
			if body.Status != "healthy" {
				t.Errorf("Expected status 'healthy', got '%s'", body.Status)
			}
			if body.Service != "bookmark-manager-api" {
				t.Errorf("Expected service 'bookmark-manager-api', got '%s'", body.Service)
			}
			if body.Version != "1.0.0" {
				t.Errorf("Expected version '1.0.0', got '%s'", body.Version)
			}
			if body.Environment != tt.environment {
				t.Errorf("Expected environment '%s', got '%s'", tt.environment, body.Environment)
			}
		})
	}
}

func TestHealthChecker_ResolvesEnvironmentPerRequest(t *testing.T) {
	t.Parallel()

	current := "development"
	h := NewHealthChecker(config.ServiceName, "1.0.0", func() string { return current })

	for _, want := range []string{"development", "production", "qa"} {
		current = want

		w := httptest.NewRecorder()
		h.HealthCheck(w, httptest.NewRequest("GET", "/health", nil))

		if got := decodeHealth(t, w).Environment; got != want {
			t.Errorf("Expected environment '%s', got '%s'", want, got)
		}
	}
}

func TestHealthChecker_DefaultsToProcessEnvironment(t *testing.T) {
	h := NewHealthChecker(config.ServiceName, "1.0.0", nil)

	t.Setenv(config.EnvironmentVar, "")
	w := httptest.NewRecorder()
	h.HealthCheck(w, httptest.NewRequest("GET", "/health", nil))
	if got := decodeHealth(t, w).Environment; got != "development" {
		t.Errorf("Expected fallback environment 'development', got '%s'", got)
	}

	t.Setenv(config.EnvironmentVar, "production")
	w = httptest.NewRecorder()
	h.HealthCheck(w, httptest.NewRequest("GET", "/health", nil))
	if got := decodeHealth(t, w).Environment; got != "production" {
		t.Errorf("Expected environment 'production', got '%s'", got)
	}
}
