package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"bfcms/pkg/requestcontext"
)

// JWTValidator validates a bearer token and returns the subject user ID.
type JWTValidator interface {
	ValidateToken(tokenString string) (userID string, err error)
}

// IdentityResolver loads the caller's current identity from the user store.
// Resolving per request (rather than trusting role claims baked into the
// token) means role changes and deletions take effect immediately.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, userID string) (requestcontext.ActorInfo, error)
}

// RequireAuth validates the Authorization header, resolves the caller and
// stores the actor in the request context.
func RequireAuth(validator JWTValidator, resolver IdentityResolver, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				unauthorized(w, "Missing or invalid Authorization header")
				return
			}

			userID, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
				)
				unauthorized(w, "Invalid or expired token")
				return
			}

			actor, err := resolver.ResolveIdentity(ctx, userID)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - unknown user",
					"user_id", userID,
					"request_id", requestcontext.RequestID(ctx),
				)
				unauthorized(w, "User not found")
				return
			}

			next.ServeHTTP(w, r.WithContext(requestcontext.WithActor(ctx, actor)))
		})
	}
}

// RequireRoles rejects callers whose resolved role is not in the allow list.
// Must be mounted after RequireAuth.
func RequireRoles(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := requestcontext.Actor(r.Context())
			if _, ok := allowed[actor.Role]; !ok {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"error":"forbidden","error_description":"Insufficient permissions"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"` + description + `"}`))
}
