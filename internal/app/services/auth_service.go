package services

import (
	"context"
	"fmt"
	"time"
	"unicode"

	"github.com/schoolhub/schoolhub/internal/app/events"
	"github.com/schoolhub/schoolhub/internal/app/models"
	"github.com/schoolhub/schoolhub/internal/app/models/dto"
	"github.com/schoolhub/schoolhub/internal/app/repositories"
	"github.com/schoolhub/schoolhub/internal/pkg/apperrors"
	"github.com/schoolhub/schoolhub/internal/pkg/auth"
	"github.com/schoolhub/schoolhub/internal/pkg/logger"
)

// RegisteredPublisher publishes registration events
type RegisteredPublisher interface {
	PublishUserRegistered(event events.UserRegistered) error
}

// AuthService defines the interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, models.Role, *dto.TokenResponse, error)
	Login(ctx context.Context, email, password string) (*models.User, models.Role, *dto.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, userID int64) error
	GetUser(ctx context.Context, userID int64) (*models.User, models.Role, error)
}

type authService struct {
	userRepo   repositories.IUserRepository
	roleRepo   repositories.IRoleRepository
	tokenRepo  repositories.ITokenRepository
	jwtService *auth.JWTService
	publisher  RegisteredPublisher
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.IUserRepository,
	roleRepo repositories.IRoleRepository,
	tokenRepo repositories.ITokenRepository,
	jwtService *auth.JWTService,
	publisher RegisteredPublisher,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		roleRepo:   roleRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
		publisher:  publisher,
	}
}

// Register creates a user plus the role profile and opens a session.
// Validation failures come back as sentinel errors so the transport layer
// can attach them to the offending field.
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, models.Role, *dto.TokenResponse, error) {
	if err := ValidatePassword(req.Password); err != nil {
		return nil, "", nil, err
	}

	role, err := models.RoleFromID(req.Role)
	if err != nil {
		return nil, "", nil, apperrors.ErrUnsupportedRole
	}

	// The role must also reference a seeded row, matching the FK on users.
	exists, err := s.roleRepo.Exists(ctx, req.Role)
	if err != nil {
		return nil, "", nil, fmt.Errorf("role lookup failed: %w", err)
	}
	if !exists {
		return nil, "", nil, apperrors.ErrRoleNotFound
	}

	taken, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, "", nil, fmt.Errorf("email lookup failed: %w", err)
	}
	if taken {
		return nil, "", nil, apperrors.ErrEmailAlreadyExists
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", nil, fmt.Errorf("password hashing failed: %w", err)
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashedPassword,
		RoleID:   req.Role,
	}

	// The pre-check above races with concurrent registrations; the unique
	// constraint inside CreateUserWithProfile is the real guard and maps
	// back to the same error.
	userID, err := s.userRepo.CreateUserWithProfile(ctx, user, role)
	if err != nil {
		return nil, "", nil, err
	}
	user.ID = userID

	if s.publisher != nil {
		event := events.UserRegistered{
			UserID:     userID,
			Name:       user.Name,
			Email:      user.Email,
			Role:       role,
			OccurredAt: time.Now(),
		}
		if err := s.publisher.PublishUserRegistered(event); err != nil {
			// Registration already committed; the event is best effort.
			logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to publish registration event")
		}
	}

	tokens, err := s.issueTokens(ctx, user, role)
	if err != nil {
		return nil, "", nil, err
	}

	logger.Info().Int64("userID", userID).Str("role", string(role)).Msg("User registered")
	return user, role, tokens, nil
}

// Login verifies credentials and opens a session
func (s *authService) Login(ctx context.Context, email, password string) (*models.User, models.Role, *dto.TokenResponse, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrUserNotFound) {
			// Same error as a bad password, so callers cannot probe emails
			return nil, "", nil, apperrors.ErrInvalidCredentials
		}
		return nil, "", nil, fmt.Errorf("user lookup failed: %w", err)
	}

	if !auth.CheckPassword(user.Password, password) {
		return nil, "", nil, apperrors.ErrInvalidCredentials
	}

	role, err := models.RoleFromID(user.RoleID)
	if err != nil {
		return nil, "", nil, fmt.Errorf("stored role invalid for user %d: %w", user.ID, err)
	}

	tokens, err := s.issueTokens(ctx, user, role)
	if err != nil {
		return nil, "", nil, err
	}

	logger.Info().Int64("userID", user.ID).Msg("User logged in")
	return user, role, tokens, nil
}

// RefreshToken exchanges a valid refresh token for a new token pair.
// The used token is revoked so each refresh token works once.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	stored, err := s.tokenRepo.GetTokenByValue(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}

	role, err := models.RoleFromID(user.RoleID)
	if err != nil {
		return nil, fmt.Errorf("stored role invalid for user %d: %w", user.ID, err)
	}

	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user, role)
}

// Logout revokes all of the user's refresh tokens
func (s *authService) Logout(ctx context.Context, userID int64) error {
	if err := s.tokenRepo.RevokeAllUserTokens(ctx, userID); err != nil {
		return err
	}

	logger.Info().Int64("userID", userID).Msg("User logged out")
	return nil
}

// GetUser loads a user and resolves the role variant
func (s *authService) GetUser(ctx context.Context, userID int64) (*models.User, models.Role, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	role, err := models.RoleFromID(user.RoleID)
	if err != nil {
		return nil, "", fmt.Errorf("stored role invalid for user %d: %w", user.ID, err)
	}

	return user, role, nil
}

// issueTokens generates a token pair and persists the refresh half
func (s *authService) issueTokens(ctx context.Context, user *models.User, role models.Role) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user, role)
	if err != nil {
		return nil, fmt.Errorf("token generation failed: %w", err)
	}

	err = s.tokenRepo.CreateToken(ctx, &models.RefreshToken{
		Token:      refreshToken,
		UserID:     user.ID,
		ExpiryDate: s.jwtService.GetRefreshTokenExpiry(),
	})
	if err != nil {
		return nil, fmt.Errorf("refresh token persistence failed: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		TokenType:        "Bearer",
		ExpiresIn:        int64(expiresIn),
		RefreshToken:     refreshToken,
		RefreshExpiresIn: int64(refreshExpiresIn),
	}, nil
}

// ValidatePassword applies the password policy: at least eight characters
// with at least one letter and one digit.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return apperrors.ErrInvalidPassword
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasLetter || !hasDigit {
		return apperrors.ErrInvalidPassword
	}

	return nil
}
