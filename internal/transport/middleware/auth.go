package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/boxswap/boxswap-backend/pkg/ctxutil"
)

type tokenValidator interface {
	ValidateAccessToken(tokenString string) (uuid.UUID, error)
}

// Auth resolves the Bearer token into a user ID in the request context.
// Requests without a token pass through anonymous; handlers decide whether
// anonymous access is allowed.
func Auth(validator tokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r) // Anonymous
				return
			}
			userID, err := validator.ValidateAccessToken(token)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			ctx := ctxutil.WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) < len(prefix) || !strings.EqualFold(auth[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(auth[len(prefix):])
}
