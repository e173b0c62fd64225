// file: internal/middleware/auth.go
package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gofrs/uuid"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/ktie09rich-crypto/greenloop/internal/contextutils"
	"github.com/ktie09rich-crypto/greenloop/internal/models"
	"github.com/ktie09rich-crypto/greenloop/internal/response"
	"github.com/ktie09rich-crypto/greenloop/internal/services"
)

// AuthConfig holds JWT verification settings
type AuthConfig struct {
	JWTSecret string
}

// AuthMiddleware verifies bearer tokens issued by the identity provider
// and loads the subject into the request context.
type AuthMiddleware struct {
	config  AuthConfig
	builder *response.Builder
	logger  *zap.Logger
}

// NewAuthMiddleware creates the auth middleware
func NewAuthMiddleware(config AuthConfig, builder *response.Builder, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		config:  config,
		builder: builder,
		logger:  logger,
	}
}

// RequireAuth rejects requests without a valid bearer token
func (am *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := extractBearerToken(r)
		if tokenString == "" {
			am.builder.WriteError(w, r, services.NewUnauthorizedError("missing bearer token"))
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(am.config.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			am.logger.Debug("Token verification failed", zap.Error(err))
			am.builder.WriteError(w, r, services.NewUnauthorizedError("invalid or expired token"))
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			am.builder.WriteError(w, r, services.NewUnauthorizedError("invalid token claims"))
			return
		}

		sub, _ := claims["sub"].(string)
		userID, err := uuid.FromString(sub)
		if err != nil {
			am.builder.WriteError(w, r, services.NewUnauthorizedError("invalid token subject"))
			return
		}
		role, _ := claims["role"].(string)
		if role == "" {
			role = models.RoleEmployee
		}

		ctx := contextutils.WithUserID(r.Context(), userID)
		ctx = contextutils.WithUserRole(ctx, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin rejects authenticated requests whose subject cannot
// verify actions or manage challenges.
func (am *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role := contextutils.GetUserRole(r.Context())
		if role != models.RoleAdmin && role != models.RoleSustainabilityManager {
			am.builder.WriteError(w, r, services.NewForbiddenError("admin access required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// extractBearerToken pulls the token from the Authorization header
func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
