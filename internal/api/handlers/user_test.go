package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/medimart/medimart/internal/api/handlers"
	appErrors "github.com/medimart/medimart/internal/errors"
	"github.com/medimart/medimart/internal/models"
	service "github.com/medimart/medimart/internal/services"
	"github.com/medimart/medimart/internal/services/mocks"
	"github.com/medimart/medimart/internal/testutils"
	"github.com/medimart/medimart/internal/utils/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func setupUserTest() (*mocks.UserService, *handlers.UserHandler) {
	mockUserService := new(mocks.UserService)
	userHandler := handlers.NewUserHandler(mockUserService, "token", false)

	return mockUserService, userHandler
}

func TestRegisterHandler(t *testing.T) {
	t.Run("Success - New User Is Created", func(t *testing.T) {
		// Arrange
		mockUserService, userHandler := setupUserTest()

		body, _ := json.Marshal(models.RegisterRequest{Email: "alice@example.com", Name: "Alice"})
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/users", bytes.NewReader(body), nil)
		recorder := httptest.NewRecorder()

		insertedID := primitive.NewObjectID()
		mockUserService.On("Register", mock.Anything, mock.AnythingOfType("*models.RegisterRequest")).
			Return(&models.RegisterResponse{InsertedID: &insertedID}, nil).Once()

		// Act
		userHandler.Register()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusCreated, recorder.Code)
		mockUserService.AssertExpectations(t)
	})

	t.Run("Success - Existing User Reports Null Inserted ID", func(t *testing.T) {
		// Arrange
		mockUserService, userHandler := setupUserTest()

		body, _ := json.Marshal(models.RegisterRequest{Email: "alice@example.com", Name: "Alice"})
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/users", bytes.NewReader(body), nil)
		recorder := httptest.NewRecorder()

		mockUserService.On("Register", mock.Anything, mock.AnythingOfType("*models.RegisterRequest")).
			Return(&models.RegisterResponse{Message: "user already exists"}, nil).Once()

		// Act
		userHandler.Register()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)

		var resp response.APIResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		data, ok := resp.Data.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "user already exists", data["message"])
		assert.Nil(t, data["insertedId"])
	})

	t.Run("Failure - Invalid Body", func(t *testing.T) {
		// Arrange
		_, userHandler := setupUserTest()

		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/users", bytes.NewReader([]byte(`{"name":"no email"}`)), nil)
		recorder := httptest.NewRecorder()

		// Act
		userHandler.Register()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestIssueTokenHandler(t *testing.T) {
	t.Run("Success - Sets HTTP Only Session Cookie", func(t *testing.T) {
		// Arrange
		mockUserService, userHandler := setupUserTest()

		body, _ := json.Marshal(models.TokenRequest{Email: "alice@example.com"})
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/jwt", bytes.NewReader(body), nil)
		recorder := httptest.NewRecorder()

		mockUserService.On("IssueToken", mock.Anything, mock.AnythingOfType("*models.TokenRequest")).
			Return(&service.TokenIssue{Token: "signed.jwt.value", ExpiresIn: 3600}, nil).Once()

		// Act
		userHandler.IssueToken()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)

		cookies := recorder.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "token", cookies[0].Name)
		assert.Equal(t, "signed.jwt.value", cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
		assert.Equal(t, 3600, cookies[0].MaxAge)

		var respBody map[string]bool
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &respBody))
		assert.True(t, respBody["success"])
		mockUserService.AssertExpectations(t)
	})

	t.Run("Failure - Rate Limited", func(t *testing.T) {
		// Arrange
		mockUserService, userHandler := setupUserTest()

		body, _ := json.Marshal(models.TokenRequest{Email: "alice@example.com"})
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/jwt", bytes.NewReader(body), nil)
		recorder := httptest.NewRecorder()

		mockUserService.On("IssueToken", mock.Anything, mock.AnythingOfType("*models.TokenRequest")).
			Return(nil, appErrors.TooManyRequestsError("Too many token requests. Please try again later.")).Once()

		// Act
		userHandler.IssueToken()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
		assert.Empty(t, recorder.Result().Cookies())
	})
}

func TestLogoutHandler(t *testing.T) {
	t.Run("Success - Expires The Session Cookie", func(t *testing.T) {
		// Arrange
		_, userHandler := setupUserTest()
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/logout", nil, nil)
		recorder := httptest.NewRecorder()

		// Act
		userHandler.Logout()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)

		cookies := recorder.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "token", cookies[0].Name)
		assert.Empty(t, cookies[0].Value)
		assert.Negative(t, cookies[0].MaxAge)
	})
}

func TestCheckRoleHandler(t *testing.T) {
	email := "alice@example.com"

	t.Run("Success - Caller Asks About Themselves", func(t *testing.T) {
		// Arrange
		mockUserService, userHandler := setupUserTest()
		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/users/admin/"+email, nil, email,
			map[string]string{"role": "admin", "email": email})
		recorder := httptest.NewRecorder()

		mockUserService.On("HasRole", mock.Anything, email, models.RoleAdmin).Return(true, nil).Once()

		// Act
		userHandler.CheckRole()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)

		var respBody map[string]bool
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &respBody))
		assert.True(t, respBody["admin"])
		mockUserService.AssertExpectations(t)
	})

	t.Run("Failure - Caller Asks About Someone Else", func(t *testing.T) {
		// Arrange
		mockUserService, userHandler := setupUserTest()
		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/users/admin/"+email, nil, "bob@example.com",
			map[string]string{"role": "admin", "email": email})
		recorder := httptest.NewRecorder()

		// Act
		userHandler.CheckRole()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusForbidden, recorder.Code)
		mockUserService.AssertNotCalled(t, "HasRole", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Unknown Role Segment", func(t *testing.T) {
		// Arrange
		_, userHandler := setupUserTest()
		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/users/owner/"+email, nil, email,
			map[string]string{"role": "owner", "email": email})
		recorder := httptest.NewRecorder()

		// Act
		userHandler.CheckRole()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestChangeRoleHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockUserService, userHandler := setupUserTest()

		body, _ := json.Marshal(models.ChangeRoleRequest{Email: "alice@example.com", Role: models.RoleSeller})
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/users/change-role", bytes.NewReader(body), "admin@example.com", nil)
		recorder := httptest.NewRecorder()

		mockUserService.On("ChangeRole", mock.Anything, mock.AnythingOfType("*models.ChangeRoleRequest")).
			Return(nil).Once()

		// Act
		userHandler.ChangeRole()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
		mockUserService.AssertExpectations(t)
	})

	t.Run("Failure - Target User Missing", func(t *testing.T) {
		// Arrange
		mockUserService, userHandler := setupUserTest()

		body, _ := json.Marshal(models.ChangeRoleRequest{Email: "ghost@example.com", Role: models.RoleSeller})
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/users/change-role", bytes.NewReader(body), "admin@example.com", nil)
		recorder := httptest.NewRecorder()

		mockUserService.On("ChangeRole", mock.Anything, mock.AnythingOfType("*models.ChangeRoleRequest")).
			Return(appErrors.NotFoundError("User not found")).Once()

		// Act
		userHandler.ChangeRole()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}
