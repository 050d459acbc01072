package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/forkful/forkful/internal/domain/user"
	"github.com/forkful/forkful/internal/infrastructure/config"
)

type contextKey string

const identityKey contextKey = "identity"

// IdentityResolver mirrors verified token claims into the local user
// store and returns the stored account, role included.
type IdentityResolver interface {
	UpsertOnLogin(ctx context.Context, profile user.Profile) (*user.User, error)
}

// sessionClaims are the identity-provider token claims we consume.
type sessionClaims struct {
	Email        string `json:"email"`
	FirstName    string `json:"given_name"`
	LastName     string `json:"family_name"`
	ProfileImage string `json:"picture"`
	jwt.RegisteredClaims
}

// Authenticate verifies the Bearer token, resolves the caller against
// the local user store and attaches the identity to the request context.
// Requests without a resolvable identity get 401; banned accounts get
// 403 and never reach a handler.
func Authenticate(cfg *config.Config, resolver IdentityResolver, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := bearerToken(r)
			if tokenStr == "" {
				writeAuthError(w, http.StatusUnauthorized, "Authentication required")
				return
			}

			claims := &sessionClaims{}
			token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(cfg.Auth.JWTSecret), nil
			}, jwt.WithIssuer(cfg.Auth.Issuer), jwt.WithExpirationRequired())
			if err != nil || !token.Valid {
				logger.Debug("token rejected", zap.Error(err))
				writeAuthError(w, http.StatusUnauthorized, "Invalid or expired session")
				return
			}

			u, err := resolver.UpsertOnLogin(r.Context(), user.Profile{
				ExternalID:   claims.Subject,
				Email:        claims.Email,
				FirstName:    claims.FirstName,
				LastName:     claims.LastName,
				ProfileImage: claims.ProfileImage,
			})
			if err != nil {
				logger.Error("failed to resolve identity", zap.Error(err))
				writeAuthError(w, http.StatusUnauthorized, "Could not resolve session")
				return
			}
			if u.Role == user.RoleBanned {
				writeAuthError(w, http.StatusForbidden, "Account is suspended")
				return
			}

			identity := user.Identity{
				UserID:     u.ID,
				ExternalID: u.ExternalID,
				Email:      u.Email,
				Role:       u.Role,
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

// RequireAdmin rejects authenticated callers without the admin role.
// It must compose after Authenticate.
func RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFrom(r.Context())
			if !ok {
				writeAuthError(w, http.StatusUnauthorized, "Authentication required")
				return
			}
			if !identity.IsAdmin() {
				writeAuthError(w, http.StatusForbidden, "Admin access required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithIdentity attaches the resolved caller to the context.
func WithIdentity(ctx context.Context, identity user.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFrom extracts the resolved caller from the context.
func IdentityFrom(ctx context.Context) (user.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(user.Identity)
	return identity, ok
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
