package identity

import (
	"log/slog"
	"net/http"
	"strings"
)

// Middleware resolves the Authorization bearer token through the given
// Authenticator and stores the resulting identity in the request context.
// Requests without a resolvable identity are rejected with 401.
func Middleware(auth Authenticator) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")
			if token == authHeader {
				http.Error(w, "Invalid Authorization header format", http.StatusUnauthorized)
				return
			}

			id, err := auth.Resolve(r.Context(), token)
			if err != nil {
				slog.Warn("failed to resolve identity", "error", err)
				http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), id)))
		})
	}
}
