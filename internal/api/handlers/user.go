package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/medimart/medimart/internal/api/middleware"
	apperrors "github.com/medimart/medimart/internal/errors"
	"github.com/medimart/medimart/internal/models"
	service "github.com/medimart/medimart/internal/services"
	"github.com/medimart/medimart/internal/utils"
	"github.com/medimart/medimart/internal/utils/response"
)

type UserHandler struct {
	userService   service.UserService
	validator     *validator.Validate
	cookieName    string
	secureCookies bool
}

func NewUserHandler(userService service.UserService, cookieName string, secureCookies bool) *UserHandler {
	return &UserHandler{
		userService:   userService,
		validator:     validator.New(),
		cookieName:    cookieName,
		secureCookies: secureCookies,
	}
}

// Register godoc
//	@Summary		Register a user
//	@Description	Creates a user keyed by email. Repeating the call for an existing email reports it without overwriting.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			user	body		models.RegisterRequest	true	"User Registration Details"
//	@Success		201		{object}	models.RegisterResponse	"Successfully created user"
//	@Success		200		{object}	models.RegisterResponse	"User already exists"
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Failure		500		{object}	response.ErrorResponse	"Internal server error"
//	@Router			/users [post]
func (h *UserHandler) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.RegisterRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		result, err := h.userService.Register(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to register user", slog.String("email", req.Email), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		status := http.StatusCreated
		if result.InsertedID == nil {
			status = http.StatusOK
		}

		logger.Info("User registration processed", slog.String("email", req.Email))
		response.Success(w, status, result)
	}
}

// IssueToken godoc
//	@Summary		Issue a session token
//	@Description	Exchanges an email (and password, when the account has one) for an HTTP-only session cookie. The token travels only in the cookie; the body confirms success.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			credentials	body		models.TokenRequest		true	"Email and optional password"
//	@Success		200			{object}	map[string]bool			"Cookie set"
//	@Failure		401			{object}	response.ErrorResponse	"Invalid credentials"
//	@Failure		429			{object}	response.ErrorResponse	"Too many token requests"
//	@Router			/jwt [post]
func (h *UserHandler) IssueToken() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.TokenRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		issue, err := h.userService.IssueToken(r.Context(), &req)
		if err != nil {
			logger.Warn("Token request rejected", slog.String("email", req.Email), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     h.cookieName,
			Value:    issue.Token,
			Path:     "/",
			MaxAge:   issue.ExpiresIn,
			HttpOnly: true,
			Secure:   h.secureCookies,
			SameSite: http.SameSiteNoneMode,
		})

		logger.Info("Session token issued", slog.String("email", req.Email))
		response.WriteJson(w, http.StatusOK, map[string]bool{"success": true})
	}
}

// Logout godoc
//	@Summary	Clear the session cookie
//	@Tags		Users
//	@Produce	json
//	@Success	200	{object}	map[string]bool	"Cookie cleared"
//	@Router		/logout [post]
func (h *UserHandler) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		http.SetCookie(w, &http.Cookie{
			Name:     h.cookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   h.secureCookies,
			SameSite: http.SameSiteNoneMode,
		})

		response.WriteJson(w, http.StatusOK, map[string]bool{"success": true})
	}
}

// ListUsers godoc
//	@Summary		List all users (Admin)
//	@Tags			Users
//	@Produce		json
//	@Success		200	{array}		models.User
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		403	{object}	response.ErrorResponse	"Admin role required"
//	@Security		CookieAuth
//	@Router			/users [get]
func (h *UserHandler) ListUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		users, err := h.userService.ListUsers(r.Context())
		if err != nil {
			logger.Error("Failed to list users", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, users)
	}
}

// CheckRole godoc
//	@Summary		Check whether the caller holds a role
//	@Description	Callers may only ask about themselves. The answer shape is {"<role>": bool} keyed by the lowercased role segment, e.g. {"admin": true}.
//	@Tags			Users
//	@Produce		json
//	@Param			role	path		string					true	"Role segment (customer, seller, admin)"
//	@Param			email	path		string					true	"Caller's own email"
//	@Success		200		{object}	map[string]bool
//	@Failure		403		{object}	response.ErrorResponse	"Asking about another user"
//	@Security		CookieAuth
//	@Router			/users/{role}/{email} [get]
func (h *UserHandler) CheckRole() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, apperrors.UnauthorizedError("Unauthorized Access"))
			return
		}

		roleSegment := r.PathValue("role")
		email := r.PathValue("email")

		if claims.Email != email {
			logger.Warn("Role check for another user's email", slog.String("target", email))
			response.Error(w, apperrors.ForbiddenError("Forbidden Access"))
			return
		}

		role, ok := roleFromSegment(roleSegment)
		if !ok {
			response.Error(w, apperrors.BadRequestError("Unknown role"))
			return
		}

		hasRole, err := h.userService.HasRole(r.Context(), email, role)
		if err != nil {
			logger.Error("Failed to check role", slog.String("email", email), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.WriteJson(w, http.StatusOK, map[string]bool{roleSegment: hasRole})
	}
}

// ChangeRole godoc
//	@Summary		Change a user's role (Admin)
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			change	body		models.ChangeRoleRequest	true	"Target email and new role"
//	@Success		200		{object}	map[string]bool
//	@Failure		404		{object}	response.ErrorResponse	"User not found"
//	@Security		CookieAuth
//	@Router			/users/change-role [post]
func (h *UserHandler) ChangeRole() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.ChangeRoleRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if err := h.userService.ChangeRole(r.Context(), &req); err != nil {
			logger.Error("Failed to change role",
				slog.String("email", req.Email), slog.String("role", string(req.Role)), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("User role changed", slog.String("email", req.Email), slog.String("role", string(req.Role)))
		response.Success(w, http.StatusOK, map[string]bool{"modified": true})
	}
}

// roleFromSegment maps the lowercase route segment to a stored role.
func roleFromSegment(segment string) (models.Role, bool) {
	switch segment {
	case "customer":
		return models.RoleCustomer, true
	case "seller":
		return models.RoleSeller, true
	case "admin":
		return models.RoleAdmin, true
	}

	return "", false
}
