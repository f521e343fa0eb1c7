package handler

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"
)

type adminKey struct{}

// IsAdmin reports whether the request context passed admin authentication.
// The flag travels in the context explicitly rather than in ambient storage.
func IsAdmin(ctx context.Context) bool {
	ok, _ := ctx.Value(adminKey{}).(bool)
	return ok
}

// AdminAuth guards admin routes with a bearer token compared in constant
// time. An empty configured token disables the admin surface: every request
// is rejected rather than let through.
func AdminAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				respondError(w, r, http.StatusForbidden, "admin access is not configured")
				return
			}

			presented := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
				respondError(w, r, http.StatusUnauthorized, "invalid admin token")
				return
			}

			ctx := context.WithValue(r.Context(), adminKey{}, true)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
