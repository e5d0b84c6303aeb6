package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/medimart/medimart/internal/api/middleware"
	"github.com/medimart/medimart/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("auth-test-key")

type mockRoleResolver struct{ mock.Mock }

func (m *mockRoleResolver) ResolveRole(ctx context.Context, email string) (models.Role, error) {
	args := m.Called(ctx, email)

	return args.Get(0).(models.Role), args.Error(1)
}

func signedToken(t *testing.T, email string, ttl time.Duration) string {
	t.Helper()

	claims := &models.Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testKey)
	require.NoError(t, err)

	return token
}

func TestAuthenticate(t *testing.T) {
	resolver := &mockRoleResolver{}
	authMiddleware := middleware.NewAuthMiddleware(testKey, "token", resolver)

	t.Run("Failure - Missing Cookie Is Unauthorized", func(t *testing.T) {
		// Arrange
		req := httptest.NewRequest(http.MethodGet, "/carts?email=a@b.c", nil)
		rec := httptest.NewRecorder()

		handler := authMiddleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("next handler must not run")
		}))

		// Act
		handler.ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, false, body["success"])
	})

	t.Run("Failure - Garbage Token Is Forbidden", func(t *testing.T) {
		// Arrange
		req := httptest.NewRequest(http.MethodGet, "/carts", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: "not-a-jwt"})
		rec := httptest.NewRecorder()

		handler := authMiddleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("next handler must not run")
		}))

		// Act
		handler.ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("Failure - Expired Token Is Forbidden", func(t *testing.T) {
		// Arrange
		req := httptest.NewRequest(http.MethodGet, "/carts", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: signedToken(t, "a@b.c", -time.Minute)})
		rec := httptest.NewRecorder()

		handler := authMiddleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("next handler must not run")
		}))

		// Act
		handler.ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("Success - Claims Reach The Next Handler", func(t *testing.T) {
		// Arrange
		req := httptest.NewRequest(http.MethodGet, "/carts", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: signedToken(t, "alice@example.com", time.Hour)})
		rec := httptest.NewRecorder()

		var seen *models.Claims

		handler := authMiddleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen, _ = middleware.ClaimsFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		}))

		// Act
		handler.ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, seen)
		assert.Equal(t, "alice@example.com", seen.Email)
	})
}

func TestRequireRole(t *testing.T) {
	email := "alice@example.com"

	newAuthedRequest := func(t *testing.T) *http.Request {
		t.Helper()

		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		claims := &models.Claims{Email: email}
		ctx := context.WithValue(req.Context(), middleware.UserContextKey, claims)

		return req.WithContext(ctx)
	}

	t.Run("Failure - No Authenticated Identity", func(t *testing.T) {
		// Arrange
		resolver := &mockRoleResolver{}
		authMiddleware := middleware.NewAuthMiddleware(testKey, "token", resolver)
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		rec := httptest.NewRecorder()

		handler := authMiddleware.RequireRole(models.RoleAdmin, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("next handler must not run")
		}))

		// Act
		handler.ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Failure - Stored Role Mismatch", func(t *testing.T) {
		// Arrange
		resolver := &mockRoleResolver{}
		resolver.On("ResolveRole", mock.Anything, email).Return(models.RoleCustomer, nil).Once()
		authMiddleware := middleware.NewAuthMiddleware(testKey, "token", resolver)
		rec := httptest.NewRecorder()

		handler := authMiddleware.RequireRole(models.RoleAdmin, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("next handler must not run")
		}))

		// Act
		handler.ServeHTTP(rec, newAuthedRequest(t))

		// Assert
		assert.Equal(t, http.StatusForbidden, rec.Code)
		resolver.AssertExpectations(t)
	})

	t.Run("Success - Stored Role Matches", func(t *testing.T) {
		// Arrange
		resolver := &mockRoleResolver{}
		resolver.On("ResolveRole", mock.Anything, email).Return(models.RoleAdmin, nil).Once()
		authMiddleware := middleware.NewAuthMiddleware(testKey, "token", resolver)
		rec := httptest.NewRecorder()

		handler := authMiddleware.RequireRole(models.RoleAdmin, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		// Act
		handler.ServeHTTP(rec, newAuthedRequest(t))

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		resolver.AssertExpectations(t)
	})
}
