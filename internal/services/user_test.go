package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	appErrors "github.com/medimart/medimart/internal/errors"
	"github.com/medimart/medimart/internal/models"
	repository "github.com/medimart/medimart/internal/repositories"
	service "github.com/medimart/medimart/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

var testJWTKey = []byte("test-signing-key")

func newUserService() (service.UserService, *repository.MockUserRepository, *repository.MockRateLimitRepository) {
	userRepo := repository.NewMockUserRepository()
	rateRepo := repository.NewMockRateLimitRepository()

	return service.NewUserService(userRepo, rateRepo, testJWTKey, time.Hour), userRepo, rateRepo
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - New User Gets Inserted ID And Default Role", func(t *testing.T) {
		// Arrange
		userService, userRepo, _ := newUserService()
		insertedID := primitive.NewObjectID()

		userRepo.On("Upsert", ctx, mock.MatchedBy(func(u *models.User) bool {
			return u.Email == "alice@example.com" && u.Role == models.RoleCustomer
		})).Return(&insertedID, nil).Once()

		// Act
		result, err := userService.Register(ctx, &models.RegisterRequest{
			Email: "alice@example.com",
			Name:  "Alice",
		})

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, &insertedID, result.InsertedID)
		assert.Empty(t, result.Message)
		userRepo.AssertExpectations(t)
	})

	t.Run("Success - Existing User Reported Without Overwrite", func(t *testing.T) {
		// Arrange
		userService, userRepo, _ := newUserService()
		userRepo.On("Upsert", ctx, mock.AnythingOfType("*models.User")).Return(nil, nil).Once()

		// Act
		result, err := userService.Register(ctx, &models.RegisterRequest{
			Email: "alice@example.com",
			Name:  "Alice",
		})

		// Assert
		assert.NoError(t, err)
		assert.Nil(t, result.InsertedID)
		assert.Equal(t, "user already exists", result.Message)
		userRepo.AssertExpectations(t)
	})

	t.Run("Failure - Unknown Role", func(t *testing.T) {
		// Arrange
		userService, _, _ := newUserService()

		// Act
		result, err := userService.Register(ctx, &models.RegisterRequest{
			Email: "alice@example.com",
			Name:  "Alice",
			Role:  "Superuser",
		})

		// Assert
		assert.Error(t, err)
		assert.Nil(t, result)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
	})
}

func TestIssueToken(t *testing.T) {
	ctx := context.Background()
	email := "alice@example.com"

	t.Run("Success - Token Carries The Email Claim", func(t *testing.T) {
		// Arrange
		userService, userRepo, rateRepo := newUserService()
		rateRepo.On("CheckTokenRateLimit", ctx, email).Return(true, 4, 0, nil).Once()
		userRepo.On("GetByEmail", ctx, email).Return(nil, mongo.ErrNoDocuments).Once()

		// Act
		issue, err := userService.IssueToken(ctx, &models.TokenRequest{Email: email})

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, int(time.Hour.Seconds()), issue.ExpiresIn)

		claims := &models.Claims{}
		token, err := jwt.ParseWithClaims(issue.Token, claims, func(_ *jwt.Token) (any, error) {
			return testJWTKey, nil
		})
		assert.NoError(t, err)
		assert.True(t, token.Valid)
		assert.Equal(t, email, claims.Email)
		rateRepo.AssertExpectations(t)
	})

	t.Run("Failure - Rate Limited", func(t *testing.T) {
		// Arrange
		userService, _, rateRepo := newUserService()
		rateRepo.On("CheckTokenRateLimit", ctx, email).Return(false, 0, 12, nil).Once()

		// Act
		issue, err := userService.IssueToken(ctx, &models.TokenRequest{Email: email})

		// Assert
		assert.Error(t, err)
		assert.Nil(t, issue)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeTooManyRequests, appErr.Code)
		rateRepo.AssertExpectations(t)
	})

	t.Run("Failure - Wrong Password For Password Protected Account", func(t *testing.T) {
		// Arrange
		userService, userRepo, rateRepo := newUserService()

		hashed, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
		assert.NoError(t, err)

		rateRepo.On("CheckTokenRateLimit", ctx, email).Return(true, 4, 0, nil).Once()
		userRepo.On("GetByEmail", ctx, email).
			Return(&models.User{Email: email, Password: string(hashed)}, nil).Once()

		// Act
		issue, err := userService.IssueToken(ctx, &models.TokenRequest{Email: email, Password: "wrong"})

		// Assert
		assert.Error(t, err)
		assert.Nil(t, issue)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeUnauthorized, appErr.Code)
	})

	t.Run("Failure - Rate Limit Backend Down", func(t *testing.T) {
		// Arrange
		userService, _, rateRepo := newUserService()
		rateRepo.On("CheckTokenRateLimit", ctx, email).
			Return(false, 0, 0, errors.New("redis unreachable")).Once()

		// Act
		issue, err := userService.IssueToken(ctx, &models.TokenRequest{Email: email})

		// Assert
		assert.Error(t, err)
		assert.Nil(t, issue)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeThirdPartyError, appErr.Code)
	})
}

func TestChangeRole(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		userService, userRepo, _ := newUserService()
		userRepo.On("UpdateRole", ctx, "alice@example.com", models.RoleSeller).Return(nil).Once()

		// Act
		err := userService.ChangeRole(ctx, &models.ChangeRoleRequest{
			Email: "alice@example.com",
			Role:  models.RoleSeller,
		})

		// Assert
		assert.NoError(t, err)
		userRepo.AssertExpectations(t)
	})

	t.Run("Failure - Unknown Role", func(t *testing.T) {
		// Arrange
		userService, _, _ := newUserService()

		// Act
		err := userService.ChangeRole(ctx, &models.ChangeRoleRequest{
			Email: "alice@example.com",
			Role:  "Root",
		})

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
	})

	t.Run("Failure - User Not Found", func(t *testing.T) {
		// Arrange
		userService, userRepo, _ := newUserService()
		userRepo.On("UpdateRole", ctx, "ghost@example.com", models.RoleAdmin).
			Return(mongo.ErrNoDocuments).Once()

		// Act
		err := userService.ChangeRole(ctx, &models.ChangeRoleRequest{
			Email: "ghost@example.com",
			Role:  models.RoleAdmin,
		})

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}

func TestResolveRole(t *testing.T) {
	ctx := context.Background()
	email := "alice@example.com"

	t.Run("Success - Stored Role Wins", func(t *testing.T) {
		// Arrange
		userService, userRepo, _ := newUserService()
		userRepo.On("GetByEmail", ctx, email).
			Return(&models.User{Email: email, Role: models.RoleAdmin}, nil).Once()

		// Act
		role, err := userService.ResolveRole(ctx, email)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, role)
	})

	t.Run("Success - Missing Role Defaults To Customer", func(t *testing.T) {
		// Arrange
		userService, userRepo, _ := newUserService()
		userRepo.On("GetByEmail", ctx, email).Return(&models.User{Email: email}, nil).Once()

		// Act
		role, err := userService.ResolveRole(ctx, email)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, models.RoleCustomer, role)
	})

	t.Run("Failure - Unknown User", func(t *testing.T) {
		// Arrange
		userService, userRepo, _ := newUserService()
		userRepo.On("GetByEmail", ctx, email).Return(nil, mongo.ErrNoDocuments).Once()

		// Act
		role, err := userService.ResolveRole(ctx, email)

		// Assert
		assert.Error(t, err)
		assert.Empty(t, role)
	})
}

func TestHasRole(t *testing.T) {
	ctx := context.Background()
	email := "seller@example.com"

	t.Run("Success - Match And Mismatch", func(t *testing.T) {
		// Arrange
		userService, userRepo, _ := newUserService()
		userRepo.On("GetByEmail", ctx, email).
			Return(&models.User{Email: email, Role: models.RoleSeller}, nil).Twice()

		// Act
		isSeller, err1 := userService.HasRole(ctx, email, models.RoleSeller)
		isAdmin, err2 := userService.HasRole(ctx, email, models.RoleAdmin)

		// Assert
		assert.NoError(t, err1)
		assert.NoError(t, err2)
		assert.True(t, isSeller)
		assert.False(t, isAdmin)
	})
}
