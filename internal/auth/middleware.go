package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

type contextKey string

const adminIDKey contextKey = "admin_id"

// AdminID returns the authenticated admin id stored by RequireAdmin.
func AdminID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(adminIDKey).(int64)
	return id, ok
}

// SubjectLookup reports whether the token subject still maps to a live admin
// account.
type SubjectLookup func(ctx context.Context, id int64) (bool, error)

// RequireAdmin gates a handler behind bearer-token authentication: extract
// the token, verify signature and expiry, resolve the subject to an existing
// admin. Any failure yields 401.
func RequireAdmin(tokens *TokenService, lookup SubjectLookup, logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearer(r.Header.Get("Authorization"))
			if token == "" {
				unauthorized(w)
				return
			}
			id, err := tokens.Parse(token)
			if err != nil {
				logger.Debugw("token rejected", "err", err)
				unauthorized(w)
				return
			}
			ok, err := lookup(r.Context(), id)
			if err != nil {
				logger.Errorw("admin lookup failed", "id", id, "err", err)
				unauthorized(w)
				return
			}
			if !ok {
				unauthorized(w)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), adminIDKey, id)))
		})
	}
}

func extractBearer(header string) string {
	if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[len("bearer "):])
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid token"})
}
