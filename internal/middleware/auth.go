package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jharden/parley/internal/models"
	"github.com/jharden/parley/internal/store"
	"github.com/jharden/parley/internal/token"
)

type contextKey string

const principalKey contextKey = "principal"

// Identity resolves the request's bearer token to an authenticated user and
// attaches it to the request context. Absent, malformed, expired, or
// forged tokens — and tokens whose subject no longer exists — all produce
// the same 401.
func Identity(tokens *token.Service, s store.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				unauthorized(w)
				return
			}

			userID, err := tokens.Verify(raw)
			if err != nil {
				unauthorized(w)
				return
			}

			user, err := s.GetUserByID(userID)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFrom returns the authenticated user the Identity middleware
// attached to the context.
func PrincipalFrom(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(principalKey).(*models.User)
	return user, ok
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"message": "unauthorized access"})
}
