package middleware

import (
	"net/http"
	"strings"
)

// SecurityHeaders sets security headers on all responses.
// Paths under docsPrefix skip the restrictive Content-Security-Policy so the
// documentation UI can load its scripts and styles.
func SecurityHeaders(enableHSTS bool, docsPrefix string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
			w.Header().Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")

			if docsPrefix == "" || !strings.HasPrefix(r.URL.Path, docsPrefix) {
				w.Header().Set("Content-Security-Policy", "default-src 'none'")
			}

			// Only over TLS, so plain-HTTP local development is unaffected
			if enableHSTS && r.TLS != nil {
				w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
			}

			next.ServeHTTP(w, r)
		})
	}
}
