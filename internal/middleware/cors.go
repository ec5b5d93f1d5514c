package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/benvon/bookmark-manager/internal/config"
	"github.com/benvon/bookmark-manager/internal/request"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// DisallowedOriginDetail is the body detail of a rejected preflight
const DisallowedOriginDetail = "Disallowed CORS origin"

// CORS creates CORS middleware for the given policy.
// Wrap the whole router with it so preflights reach it before route matching.
//
// A preflight from an origin outside the allow-list is answered 400. An OPTIONS
// request without an Origin header is not a preflight and goes to the router.
func CORS(policy config.CORS, logger *zap.Logger, debug bool) func(http.Handler) http.Handler {
	opts := cors.Options{
		AllowedOrigins:   policy.AllowedOrigins,
		AllowCredentials: policy.AllowCredentials,
		AllowedMethods:   config.ExpandMethods(policy.AllowedMethods),
		AllowedHeaders:   policy.AllowedHeaders,
		ExposedHeaders:   []string{request.RequestIDHeader},
		MaxAge:           policy.MaxAge,
		// Preflights answer 200 rather than the library default of 204
		OptionsSuccessStatus: http.StatusOK,
	}
	if debug && logger != nil {
		opts.Debug = true
		opts.Logger = zap.NewStdLog(logger.Named("cors"))
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	logger.Info("cors_configured",
		zap.Strings("allowed_origins", policy.AllowedOrigins),
		zap.Bool("allow_credentials", policy.AllowCredentials),
		zap.Strings("allowed_methods", policy.AllowedMethods),
		zap.Strings("allowed_headers", policy.AllowedHeaders),
		zap.Int("max_age", policy.MaxAge),
	)

	c := cors.New(opts)

	return func(next http.Handler) http.Handler {
		withCORS := c.Handler(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPreflight(r) {
				if r.Header.Get("Origin") == "" {
					next.ServeHTTP(w, r)
					return
				}
				if !c.OriginAllowed(r) {
					logger.Debug("cors_preflight_rejected",
						zap.String("origin", r.Header.Get("Origin")),
						zap.String("path", r.URL.Path),
					)
					rejectPreflight(w)
					return
				}
			}
			withCORS.ServeHTTP(w, r)
		})
	}
}

func isPreflight(r *http.Request) bool {
	return r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != ""
}

func rejectPreflight(w http.ResponseWriter) {
	w.Header().Add("Vary", "Origin")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(map[string]string{"detail": DisallowedOriginDetail})
}
