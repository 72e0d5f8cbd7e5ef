package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/adeyemi/siwes-portal/internal/app/models"
	"github.com/adeyemi/siwes-portal/internal/app/models/dto"
	"github.com/adeyemi/siwes-portal/internal/pkg/apperrors"
	"github.com/adeyemi/siwes-portal/internal/pkg/auth"
	"github.com/adeyemi/siwes-portal/internal/pkg/logger"
)

// AuthService handles authentication operations
type AuthService struct {
	users  UserStore
	tokens TokenStore
	jwt    *auth.JWTService
}

// NewAuthService creates a new AuthService
func NewAuthService(users UserStore, tokens TokenStore, jwt *auth.JWTService) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		jwt:    jwt,
	}
}

// Signup bootstraps the very first account as an admin. Once any user
// exists, signup is closed and accounts are created by admins only.
func (s *AuthService) Signup(ctx context.Context, req dto.SignupRequest) (*models.User, *auth.TokenPair, error) {
	count, err := s.users.CountUsers(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check user count: %w", err)
	}
	if count > 0 {
		return nil, nil, apperrors.ErrSignupClosed
	}

	if !auth.ValidatePasswordStrength(req.Password) {
		return nil, nil, apperrors.NewBadRequestError("password must be at least 8 characters with a letter and a digit")
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:     req.Email,
		Password:  hashed,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		RoleType:  models.RoleAdmin,
		IsActive:  true,
	}
	if _, err := s.users.CreateUser(ctx, user); err != nil {
		return nil, nil, err
	}

	logger.Info().Int64("userID", user.ID).Str("email", user.Email).Msg("Bootstrap admin created")

	pair, err := s.jwt.GenerateTokenPair(user)
	if err != nil {
		return nil, nil, err
	}
	_ = s.users.UpdateLastLogin(ctx, user.ID)
	return user, pair, nil
}

// Login authenticates a user by email and password. Unknown emails and wrong
// passwords produce the same error so the endpoint does not leak which
// accounts exist.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*models.User, *auth.TokenPair, error) {
	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, nil, apperrors.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, nil, apperrors.ErrAccountDisabled
	}

	pair, err := s.jwt.GenerateTokenPair(user)
	if err != nil {
		return nil, nil, err
	}
	if err := s.users.UpdateLastLogin(ctx, user.ID); err != nil {
		logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to stamp last login")
	}
	return user, pair, nil
}

// Refresh exchanges a valid refresh token for a new pair. The used refresh
// token is blacklisted so it cannot be replayed.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*models.User, *auth.TokenPair, error) {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, nil, apperrors.ErrTokenExpired
		}
		return nil, nil, apperrors.ErrTokenInvalid
	}

	blacklisted, err := s.tokens.IsBlacklisted(ctx, refreshToken)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	if blacklisted {
		return nil, nil, apperrors.ErrTokenBlacklisted
	}

	user, err := s.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, nil, err
	}
	if !user.IsActive {
		return nil, nil, apperrors.ErrAccountDisabled
	}

	if err := s.tokens.Blacklist(ctx, refreshToken, user.ID, claims.ExpiresAt.Time); err != nil {
		return nil, nil, err
	}

	pair, err := s.jwt.GenerateTokenPair(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Logout blacklists the caller's access token, and the refresh token too
// when the client sends it along.
func (s *AuthService) Logout(ctx context.Context, userID int64, accessToken string, refreshToken string) error {
	claims, err := s.jwt.ValidateAccessToken(accessToken)
	if err == nil {
		if err := s.tokens.Blacklist(ctx, accessToken, userID, claims.ExpiresAt.Time); err != nil {
			return err
		}
	}

	if refreshToken != "" {
		refreshClaims, err := s.jwt.ValidateRefreshToken(refreshToken)
		if err == nil && refreshClaims.UserID == userID {
			if err := s.tokens.Blacklist(ctx, refreshToken, userID, refreshClaims.ExpiresAt.Time); err != nil {
				return err
			}
		}
	}
	return nil
}

// ChangePassword verifies the old password and stores the new hash, clearing
// the must-change flag set by bulk imports.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, req dto.ChangePasswordRequest) error {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(user.Password, req.OldPassword) {
		return apperrors.ErrInvalidCredentials
	}
	if !auth.ValidatePasswordStrength(req.NewPassword) {
		return apperrors.NewBadRequestError("password must be at least 8 characters with a letter and a digit")
	}

	hashed, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.users.UpdatePassword(ctx, userID, hashed, false)
}

// IsTokenBlacklisted reports whether a token has been revoked. Used by the
// auth middleware on every request.
func (s *AuthService) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	return s.tokens.IsBlacklisted(ctx, token)
}

// CleanupExpiredTokens drops blacklist rows whose tokens already expired.
func (s *AuthService) CleanupExpiredTokens(ctx context.Context) (int64, error) {
	return s.tokens.CleanupExpired(ctx)
}
