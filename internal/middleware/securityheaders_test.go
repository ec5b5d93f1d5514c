package middleware

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSecurityHeaders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		path       string
		enableHSTS bool
		tls        bool
		wantCSP    bool
		wantHSTS   bool
	}{
		{name: "api path", path: "/health", wantCSP: true},
		{name: "docs page", path: "/docs", wantCSP: false},
		{name: "docs asset", path: "/docs/swagger-ui.css", wantCSP: false},
		{name: "hsts over tls", path: "/", enableHSTS: true, tls: true, wantCSP: true, wantHSTS: true},
		{name: "hsts without tls", path: "/", enableHSTS: true, wantCSP: true},
		{name: "hsts disabled", path: "/", tls: true, wantCSP: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.tls {
				req.TLS = &tls.ConnectionState{}
			}
			w := httptest.NewRecorder()

			SecurityHeaders(tt.enableHSTS, "/docs")(next).ServeHTTP(w, req)

			if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
				t.Errorf("Expected X-Content-Type-Options 'nosniff', got '%s'", got)
			}
			if got := w.Header().Get("X-Frame-Options"); got != "DENY" {
				t.Errorf("Expected X-Frame-Options 'DENY', got '%s'", got)
			}
			if got := w.Header().Get("Content-Security-Policy") != ""; got != tt.wantCSP {
				t.Errorf("Content-Security-Policy present = %v, want %v", got, tt.wantCSP)
			}
			if got := w.Header().Get("Strict-Transport-Security") != ""; got != tt.wantHSTS {
				t.Errorf("Strict-Transport-Security present = %v, want %v", got, tt.wantHSTS)
			}
		})
	}
}
