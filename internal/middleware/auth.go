package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/prosn/api/internal/model"
)

// Auth requires the X-User-ID header set by the upstream gateway.
// Requests without it are rejected; the user ID is placed in the
// request context for handlers.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get("X-User-ID"))
		if userID == "" {
			model.NewUnauthorizedError("missing X-User-ID header").WriteJSON(w)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID extracts the user ID from context
func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(UserIDKey).(string); ok {
		return id
	}
	return ""
}
