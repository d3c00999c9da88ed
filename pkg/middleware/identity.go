package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
)

type contextKey string

const (
	actorIDKey contextKey = "actor_id"
	roleKey    contextKey = "role"
)

// Identity reads the X-User-ID and X-User-Role headers injected by the API
// gateway after token validation and stores them in the request context.
// Requests without an identity pass through unauthenticated; handlers that
// require one reject them individually.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if raw := r.Header.Get("X-User-ID"); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusBadRequest)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"code":    "INVALID_INPUT",
					"message": "X-User-ID must be a numeric id",
				})
				return
			}
			ctx = context.WithValue(ctx, actorIDKey, id)
			ctx = context.WithValue(ctx, roleKey, r.Header.Get("X-User-Role"))
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ActorIDFromContext returns the authenticated actor id, or 0 if absent.
func ActorIDFromContext(ctx context.Context) int64 {
	if id, ok := ctx.Value(actorIDKey).(int64); ok {
		return id
	}
	return 0
}

// RoleFromContext returns the actor's role string, or "".
func RoleFromContext(ctx context.Context) string {
	if role, ok := ctx.Value(roleKey).(string); ok {
		return role
	}
	return ""
}
