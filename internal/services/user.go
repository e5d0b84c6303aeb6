package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	apperrors "github.com/medimart/medimart/internal/errors"
	"github.com/medimart/medimart/internal/models"
	repository "github.com/medimart/medimart/internal/repositories"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// TokenIssue is the outcome of a successful token request; the handler
// turns it into the session cookie.
type TokenIssue struct {
	Token     string
	ExpiresIn int
}

type UserService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.RegisterResponse, error)
	IssueToken(ctx context.Context, req *models.TokenRequest) (*TokenIssue, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	ChangeRole(ctx context.Context, req *models.ChangeRoleRequest) error
	HasRole(ctx context.Context, email string, role models.Role) (bool, error)
	ResolveRole(ctx context.Context, email string) (models.Role, error)
}

type userService struct {
	repo      repository.UserRepository
	rateLimit repository.RateLimitRepository
	jwtKey    []byte
	tokenTTL  time.Duration
}

func NewUserService(repo repository.UserRepository, rateLimit repository.RateLimitRepository, jwtKey []byte, tokenTTL time.Duration) UserService {
	return &userService{repo: repo, rateLimit: rateLimit, jwtKey: jwtKey, tokenTTL: tokenTTL}
}

// Register is idempotent on email: a repeat signup reports the existing
// account instead of failing or overwriting it.
func (s *userService) Register(ctx context.Context, req *models.RegisterRequest) (*models.RegisterResponse, error) {

	role := req.Role
	if role == "" {
		role = models.RoleCustomer
	}

	if !role.Valid() {
		return nil, apperrors.ValidationError(fmt.Sprintf("Unknown role %q", req.Role))
	}

	user := &models.User{
		Email: req.Email,
		Name:  req.Name,
		Role:  role,
	}

	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperrors.InternalError("Failed to secure password").WithError(err)
		}
		user.Password = string(hashed)
	}

	insertedID, err := s.repo.Upsert(ctx, user)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to create user").WithError(err)
	}

	if insertedID == nil {
		return &models.RegisterResponse{Message: "user already exists", InsertedID: nil}, nil
	}

	return &models.RegisterResponse{InsertedID: insertedID}, nil
}

func (s *userService) IssueToken(ctx context.Context, req *models.TokenRequest) (*TokenIssue, error) {

	allowed, _, retryAfter, err := s.rateLimit.CheckTokenRateLimit(ctx, req.Email)
	if err != nil {
		return nil, apperrors.ThirdPartyError("Rate limit check failed").WithError(err)
	}

	if !allowed {
		return nil, apperrors.TooManyRequestsError("Too many token requests. Please try again later.").
			WithDetail(fmt.Sprintf("retry after %d seconds", retryAfter))
	}

	// Accounts that carry a password hash must present it; accounts
	// created through the external identity provider have none and keep
	// the email-only contract.
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.DatabaseError("Failed to look up user").WithError(err)
	}

	if user != nil && user.Password != "" {
		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
			return nil, apperrors.UnauthorizedError("Invalid email or password")
		}
	}

	now := time.Now()
	claims := &models.Claims{
		Email: req.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtKey)
	if err != nil {
		return nil, apperrors.InternalError("Failed to generate authentication token").WithError(err)
	}

	return &TokenIssue{
		Token:     tokenString,
		ExpiresIn: int(s.tokenTTL.Seconds()),
	}, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to list users").WithError(err)
	}

	return users, nil
}

func (s *userService) ChangeRole(ctx context.Context, req *models.ChangeRoleRequest) error {
	if !req.Role.Valid() {
		return apperrors.ValidationError(fmt.Sprintf("Unknown role %q", req.Role))
	}

	if err := s.repo.UpdateRole(ctx, req.Email, req.Role); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.NotFoundError("User not found").WithError(err)
		}

		return apperrors.DatabaseError("Failed to change role").WithError(err)
	}

	return nil
}

func (s *userService) HasRole(ctx context.Context, email string, role models.Role) (bool, error) {
	resolved, err := s.ResolveRole(ctx, email)
	if err != nil {
		return false, err
	}

	return resolved == role, nil
}

func (s *userService) ResolveRole(ctx context.Context, email string) (models.Role, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", apperrors.NotFoundError("User not found").WithError(err)
		}

		return "", apperrors.DatabaseError("Failed to look up user").WithError(err)
	}

	if !user.Role.Valid() {
		return models.RoleCustomer, nil
	}

	return user.Role, nil
}
