package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

const UserKey key = 1

type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}

// Authenticate resolves the bearer token to a user id. Requests without a
// valid token are rejected before reaching next.
func Authenticate(v TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				unauthorized(w, r, "missing bearer token")
				return
			}
			uid, err := v.VerifyToken(token)
			if err != nil {
				slog.WarnContext(r.Context(), "token rejected", "error", err)
				unauthorized(w, r, "invalid or expired token")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), uid)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(w http.ResponseWriter, r *http.Request, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    "UNAUTHORIZED",
			"message": message,
		},
		"correlationId": GetCorrelationID(r.Context()),
	})
}

// UserID returns the authenticated user id, or "" when the request was not authenticated.
func UserID(ctx context.Context) string {
	if id, ok := ctx.Value(UserKey).(string); ok {
		return id
	}
	return ""
}

func WithUserID(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, UserKey, uid)
}
