package router

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/lumeboard/feedback-service/internal/admin"
	adminrepo "github.com/lumeboard/feedback-service/internal/admin/repo"
	"github.com/lumeboard/feedback-service/internal/auth"
	"github.com/lumeboard/feedback-service/internal/feedback"
	feedbackrepo "github.com/lumeboard/feedback-service/internal/feedback/repo"
	"github.com/lumeboard/feedback-service/internal/moderation"
	moderationrepo "github.com/lumeboard/feedback-service/internal/moderation/repo"
	"github.com/lumeboard/feedback-service/pkg/utilities"
)

type Config struct {
	// AllowedOrigins is the CORS allowlist; requests from other origins get
	// no CORS headers.
	AllowedOrigins []string
}

// ConfigFromEnv reads router config from environment variables.
// CORS_ALLOWED_ORIGINS is a comma-separated origin list.
func ConfigFromEnv() Config {
	raw := os.Getenv("CORS_ALLOWED_ORIGINS")
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return Config{AllowedOrigins: origins}
}

// loggingResponseWriter wraps http.ResponseWriter to capture status and size.
type loggingResponseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.status = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Write(b []byte) (int, error) {
	if lrw.status == 0 {
		lrw.status = http.StatusOK
	}
	n, err := lrw.ResponseWriter.Write(b)
	lrw.size += n
	return n, err
}

// RequestIDMiddleware tags every request with a KSUID echoed in X-Request-Id.
func RequestIDMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get("X-Request-Id")
			if id == "" {
				id = utilities.NewRequestID()
			}
			w.Header().Set("X-Request-Id", id)
			next.ServeHTTP(w, r)
		})
	}
}

// LoggingMiddleware returns a middleware that logs requests at debug level using the provided sugared logger.
func LoggingMiddleware(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			lrw := &loggingResponseWriter{ResponseWriter: w}
			next.ServeHTTP(lrw, r)
			dur := time.Since(start)
			// ensure status is set
			status := lrw.status
			if status == 0 {
				status = http.StatusOK
			}
			logger.Debugw("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"remote", r.RemoteAddr,
				"status", status,
				"duration_ms", float64(dur.Microseconds())/1000.0,
				"size", lrw.size,
				"request_id", lrw.Header().Get("X-Request-Id"),
			)
		})
	}
}

// CORSMiddleware answers preflight requests and sets CORS headers for
// allowlisted origins. Credentialed requests are permitted, so the origin is
// echoed back rather than wildcarded.
func CORSMiddleware(allowed []string) func(http.Handler) http.Handler {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		allowedSet[o] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if _, ok := allowedSet[origin]; ok {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Vary", "Origin")
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
				w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SecurityHeadersMiddleware returns a middleware that sets common HTTP security headers.
// It is intentionally simple and conservative so it works with most setups.
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Prevent MIME sniffing
			w.Header().Set("X-Content-Type-Options", "nosniff")

			// Clickjacking protection
			w.Header().Set("X-Frame-Options", "DENY")

			// Referrer policy
			w.Header().Set("Referrer-Policy", "no-referrer-when-downgrade")

			next.ServeHTTP(w, r)
		})
	}
}

// RegisterRoutes mounts HTTP handlers using the standard library's http.ServeMux.
func RegisterRoutes(logger *zap.SugaredLogger, db *sqlx.DB, cfg Config) http.Handler {
	mux := http.NewServeMux()

	tokenSvc := auth.NewTokenService(auth.ConfigFromEnv())
	adminSvc := admin.NewService(adminrepo.NewAdminRepo(db), nil, admin.ConfigFromEnv())
	moderationSvc := moderation.NewService(moderationrepo.NewSettingsRepo(db))
	feedbackSvc := feedback.NewService(feedbackrepo.NewFeedbackRepo(db), moderationSvc)

	adminHandler := admin.NewHandler(adminSvc, tokenSvc, logger)
	feedbackHandler := feedback.NewHandler(feedbackSvc, logger)
	moderationHandler := moderation.NewHandler(moderationSvc, logger)

	gate := auth.RequireAdmin(tokenSvc, adminSvc.Exists, logger)

	// health
	mux.HandleFunc("GET /api/v1/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// admin account routes
	mux.HandleFunc("POST /api/v1/admin/login", adminHandler.Login)
	mux.HandleFunc("POST /api/v1/admin/bootstrap", adminHandler.Bootstrap)
	mux.Handle("POST /api/v1/admin/create", gate(http.HandlerFunc(adminHandler.Create)))
	mux.Handle("DELETE /api/v1/admin/delete/{user_id}", gate(http.HandlerFunc(adminHandler.Delete)))

	// feedback routes
	mux.HandleFunc("POST /api/v1/feedback/create", feedbackHandler.Create)
	mux.HandleFunc("GET /api/v1/feedback/{$}", feedbackHandler.ListPublic)
	mux.Handle("GET /api/v1/feedback/admin", gate(http.HandlerFunc(feedbackHandler.ListAdmin)))
	mux.Handle("DELETE /api/v1/feedback/delete/{f_id}", gate(http.HandlerFunc(feedbackHandler.Delete)))
	mux.Handle("PATCH /api/v1/feedback/admin/{f_id}/approve", gate(http.HandlerFunc(feedbackHandler.Approve)))

	// moderation policy routes
	mux.Handle("GET /api/v1/feedback/admin/settings/moderation", gate(http.HandlerFunc(moderationHandler.GetSettings)))
	mux.Handle("PATCH /api/v1/feedback/admin/settings/moderation", gate(http.HandlerFunc(moderationHandler.UpdateSettings)))

	// middleware chain: request id -> cors -> security headers -> mux, logging outermost
	handler := SecurityHeadersMiddleware()(mux)
	handler = CORSMiddleware(cfg.AllowedOrigins)(handler)
	handler = RequestIDMiddleware()(handler)
	return LoggingMiddleware(logger)(handler)
}
