package http

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const userContextKey contextKey = "authenticated-user"

// TokenVerifier resolves a bearer token to a user id. Token issuing and
// validation live outside this service; static tokens cover local setups.
type TokenVerifier interface {
	Verify(token string) (userID string, ok bool)
}

// StaticTokenVerifier checks tokens against a fixed token -> user map.
type StaticTokenVerifier struct {
	tokens map[string]string
}

func NewStaticTokenVerifier(tokens map[string]string) *StaticTokenVerifier {
	return &StaticTokenVerifier{tokens: tokens}
}

func (v *StaticTokenVerifier) Verify(token string) (string, bool) {
	userID, ok := v.tokens[token]
	return userID, ok
}

// AuthMiddleware rejects requests without a valid bearer token and stores
// the resolved user id on the request context. A nil verifier disables
// authentication entirely.
func AuthMiddleware(verifier TokenVerifier, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if verifier == nil {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			return
		}

		userID, ok := verifier.Verify(token)
		if !ok {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserFromContext returns the authenticated user id, or "" when the request
// was not authenticated.
func UserFromContext(ctx context.Context) string {
	userID, _ := ctx.Value(userContextKey).(string)
	return userID
}
