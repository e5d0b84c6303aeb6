package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	apperrors "github.com/medimart/medimart/internal/errors"
	"github.com/medimart/medimart/internal/models"
	"github.com/medimart/medimart/internal/utils/response"
)

type claimsContextKey string

// UserContextKey holds the authenticated *models.Claims for the request.
const UserContextKey = claimsContextKey("user")

// RoleResolver resolves the stored role for an email. Roles are never read
// from the token itself.
type RoleResolver interface {
	ResolveRole(ctx context.Context, email string) (models.Role, error)
}

type AuthMiddleware struct {
	jwtKey     []byte
	cookieName string
	roles      RoleResolver
}

func NewAuthMiddleware(jwtKey []byte, cookieName string, roles RoleResolver) *AuthMiddleware {
	return &AuthMiddleware{jwtKey: jwtKey, cookieName: cookieName, roles: roles}
}

// Authenticate reads the session cookie and verifies the token. A missing
// cookie is 401; a token that fails verification is 403, matching the
// original split between "no credential" and "bad credential".
func (m *AuthMiddleware) Authenticate(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := LoggerFromContext(r.Context())

		cookie, err := r.Cookie(m.cookieName)
		if err != nil || cookie.Value == "" {
			logger.Warn("Missing session cookie")
			response.Error(w, apperrors.UnauthorizedError("Unauthorized Access"))
			return
		}

		claims := &models.Claims{}

		token, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				logger.Error("Unexpected signing method used in JWT", slog.Any("alg", t.Header["alg"]))
				return nil, apperrors.BadRequestError("unexpected signing method")
			}
			return m.jwtKey, nil
		})

		if err != nil || !token.Valid {
			logger.Warn("JWT verification failed", slog.Any("error", err))
			response.Error(w, apperrors.ForbiddenError("Forbidden Access"))
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, claims)

		requestScopedLogger := logger.With(slog.String("email", claims.Email))
		ctx = context.WithValue(ctx, LoggerKey, requestScopedLogger)

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// RequireRole loads the caller's stored role and rejects with Forbidden
// unless it matches. Must be wrapped by Authenticate.
func (m *AuthMiddleware) RequireRole(role models.Role, next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(UserContextKey).(*models.Claims)
		if !ok {
			logger.Warn("Role check without authenticated identity")
			response.Error(w, apperrors.UnauthorizedError("Unauthorized Access"))
			return
		}

		resolved, err := m.roles.ResolveRole(r.Context(), claims.Email)
		if err != nil {
			logger.Warn("Failed to resolve caller role", slog.Any("error", err))
			response.Error(w, apperrors.ForbiddenError("Forbidden Access"))
			return
		}

		if resolved != role {
			logger.Warn("Role mismatch",
				slog.String("required", string(role)),
				slog.String("actual", string(resolved)))
			response.Error(w, apperrors.ForbiddenError("Forbidden Access"))
			return
		}

		next.ServeHTTP(w, r)
	}
}

// ClaimsFromContext returns the authenticated claims, if any.
func ClaimsFromContext(ctx context.Context) (*models.Claims, bool) {
	claims, ok := ctx.Value(UserContextKey).(*models.Claims)

	return claims, ok
}
