package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/dukahub/dukapos-api/internal/domain/entity"
	"github.com/dukahub/dukapos-api/internal/domain/repository"
	"github.com/dukahub/dukapos-api/pkg/apperror"
	"github.com/dukahub/dukapos-api/pkg/utils"
)

// AuthService issues tokens. It exists only to supply handlers with the
// acting user and their tenant scope; all business behavior lives elsewhere.
type AuthService struct {
	userRepo   repository.UserRepository
	jwtManager *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, jwtManager *utils.JWTManager) *AuthService {
	return &AuthService{userRepo: userRepo, jwtManager: jwtManager}
}

// TokenPair carries the issued tokens
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Login verifies credentials and issues a token pair scoped to the user's
// business and branch
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, *TokenPair, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, apperror.ErrUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, apperror.ErrUnauthorized
	}
	if user.Status != "Active" {
		return nil, nil, apperror.ErrForbidden
	}

	access, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, user.BusinessID, user.BranchID)
	if err != nil {
		return nil, nil, err
	}
	refresh, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh exchanges a valid refresh token for a new token pair
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrUnauthorized
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Status != "Active" {
		return nil, apperror.ErrUnauthorized
	}

	access, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, user.BusinessID, user.BranchID)
	if err != nil {
		return nil, err
	}
	refresh, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Register creates a user under the given scope with a bcrypt password hash
func (s *AuthService) Register(ctx context.Context, scope entity.Scope, name, email, password, role string) (*entity.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, apperror.NewBadRequestError("Name, email and password are required")
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.ErrConflict
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	if role == "" {
		role = "cashier"
	}
	user := &entity.User{
		BusinessID: scope.BusinessID,
		BranchID:   scope.BranchID,
		Name:       name,
		Email:      email,
		Password:   string(hash),
		Role:       role,
		Status:     "Active",
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
