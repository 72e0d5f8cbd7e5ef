package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/adeyemi/siwes-portal/internal/app/models"
	"github.com/adeyemi/siwes-portal/internal/app/models/dto"
	"github.com/adeyemi/siwes-portal/internal/pkg/apperrors"
	"github.com/adeyemi/siwes-portal/internal/pkg/auth"
)

func newAuthFixture() (*AuthService, *fakeUserStore, *fakeTokenStore) {
	users := newFakeUserStore()
	tokens := newFakeTokenStore()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret-key",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "siwes-portal-test",
	})
	return NewAuthService(users, tokens, jwtService), users, tokens
}

func addLoginUser(t *testing.T, users *fakeUserStore, email, password string, role models.RoleType) *models.User {
	t.Helper()
	hashed, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	user := &models.User{
		Email:     email,
		Password:  hashed,
		FirstName: "Test",
		LastName:  "User",
		RoleType:  role,
		IsActive:  true,
	}
	if _, err := users.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	return user
}

func TestSignupBootstrapsFirstAdminOnly(t *testing.T) {
	service, _, _ := newAuthFixture()

	user, pair, err := service.Signup(context.Background(), dto.SignupRequest{
		Email:     "admin@school.edu",
		Password:  "correct1horse",
		FirstName: "Ada",
		LastName:  "Obi",
	})
	if err != nil {
		t.Fatalf("Signup() error = %v", err)
	}
	if user.RoleType != models.RoleAdmin {
		t.Errorf("Signup() role = %s, want ADMIN", user.RoleType)
	}
	if pair == nil || pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Errorf("Signup() returned no token pair")
	}

	// The window closes once any account exists.
	_, _, err = service.Signup(context.Background(), dto.SignupRequest{
		Email:     "second@school.edu",
		Password:  "correct1horse",
		FirstName: "Ben",
		LastName:  "Eze",
	})
	if !errors.Is(err, apperrors.ErrSignupClosed) {
		t.Errorf("Signup() second account error = %v, want ErrSignupClosed", err)
	}
}

func TestSignupWeakPassword(t *testing.T) {
	service, _, _ := newAuthFixture()

	_, _, err := service.Signup(context.Background(), dto.SignupRequest{
		Email:     "admin@school.edu",
		Password:  "lettersonly",
		FirstName: "Ada",
		LastName:  "Obi",
	})
	if !errors.Is(err, apperrors.ErrBadRequest) {
		t.Errorf("Signup() with weak password error = %v, want ErrBadRequest", err)
	}
}

func TestLogin(t *testing.T) {
	service, users, _ := newAuthFixture()
	user := addLoginUser(t, users, "student@school.edu", "secret1pass", models.RoleStudent)

	got, pair, err := service.Login(context.Background(), dto.LoginRequest{Email: "student@school.edu", Password: "secret1pass"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if got.ID != user.ID || pair.AccessToken == "" {
		t.Errorf("Login() = user %d, token %q", got.ID, pair.AccessToken)
	}
	if user.LastLoginAt == nil {
		t.Errorf("Login() did not stamp last login")
	}

	// Unknown email and wrong password fail identically.
	_, _, err = service.Login(context.Background(), dto.LoginRequest{Email: "ghost@school.edu", Password: "secret1pass"})
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("Login() unknown email error = %v, want ErrInvalidCredentials", err)
	}
	_, _, err = service.Login(context.Background(), dto.LoginRequest{Email: "student@school.edu", Password: "wrong1pass"})
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("Login() wrong password error = %v, want ErrInvalidCredentials", err)
	}

	users.SetActive(context.Background(), user.ID, false)
	_, _, err = service.Login(context.Background(), dto.LoginRequest{Email: "student@school.edu", Password: "secret1pass"})
	if !errors.Is(err, apperrors.ErrAccountDisabled) {
		t.Errorf("Login() disabled account error = %v, want ErrAccountDisabled", err)
	}
}

func TestRefreshRotatesTokens(t *testing.T) {
	service, users, _ := newAuthFixture()
	addLoginUser(t, users, "student@school.edu", "secret1pass", models.RoleStudent)

	_, pair, err := service.Login(context.Background(), dto.LoginRequest{Email: "student@school.edu", Password: "secret1pass"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	_, next, err := service.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if next.RefreshToken == pair.RefreshToken {
		t.Errorf("Refresh() returned the same refresh token")
	}

	// The used refresh token is blacklisted and cannot be replayed.
	_, _, err = service.Refresh(context.Background(), pair.RefreshToken)
	if !errors.Is(err, apperrors.ErrTokenBlacklisted) {
		t.Errorf("Refresh() replay error = %v, want ErrTokenBlacklisted", err)
	}

	// An access token is not accepted on the refresh path.
	_, _, err = service.Refresh(context.Background(), pair.AccessToken)
	if !errors.Is(err, apperrors.ErrTokenInvalid) {
		t.Errorf("Refresh() with access token error = %v, want ErrTokenInvalid", err)
	}
}

func TestRefreshDisabledAccount(t *testing.T) {
	service, users, _ := newAuthFixture()
	user := addLoginUser(t, users, "student@school.edu", "secret1pass", models.RoleStudent)

	_, pair, err := service.Login(context.Background(), dto.LoginRequest{Email: "student@school.edu", Password: "secret1pass"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	users.SetActive(context.Background(), user.ID, false)
	if _, _, err := service.Refresh(context.Background(), pair.RefreshToken); !errors.Is(err, apperrors.ErrAccountDisabled) {
		t.Errorf("Refresh() for disabled account error = %v, want ErrAccountDisabled", err)
	}
}

func TestLogoutBlacklistsTokens(t *testing.T) {
	service, users, _ := newAuthFixture()
	user := addLoginUser(t, users, "student@school.edu", "secret1pass", models.RoleStudent)

	_, pair, err := service.Login(context.Background(), dto.LoginRequest{Email: "student@school.edu", Password: "secret1pass"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if err := service.Logout(context.Background(), user.ID, pair.AccessToken, pair.RefreshToken); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}

	for _, token := range []string{pair.AccessToken, pair.RefreshToken} {
		blacklisted, err := service.IsTokenBlacklisted(context.Background(), token)
		if err != nil {
			t.Fatalf("IsTokenBlacklisted() error = %v", err)
		}
		if !blacklisted {
			t.Errorf("Logout() left a token usable")
		}
	}
}

func TestChangePassword(t *testing.T) {
	service, users, _ := newAuthFixture()
	user := addLoginUser(t, users, "student@school.edu", "secret1pass", models.RoleStudent)
	user.MustChangePassword = true

	err := service.ChangePassword(context.Background(), user.ID, dto.ChangePasswordRequest{
		OldPassword: "wrong1pass",
		NewPassword: "brandnew1pass",
	})
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("ChangePassword() wrong old password error = %v, want ErrInvalidCredentials", err)
	}

	err = service.ChangePassword(context.Background(), user.ID, dto.ChangePasswordRequest{
		OldPassword: "secret1pass",
		NewPassword: "short",
	})
	if !errors.Is(err, apperrors.ErrBadRequest) {
		t.Errorf("ChangePassword() weak new password error = %v, want ErrBadRequest", err)
	}

	err = service.ChangePassword(context.Background(), user.ID, dto.ChangePasswordRequest{
		OldPassword: "secret1pass",
		NewPassword: "brandnew1pass",
	})
	if err != nil {
		t.Fatalf("ChangePassword() error = %v", err)
	}
	if user.MustChangePassword {
		t.Errorf("ChangePassword() did not clear the must-change flag")
	}
	if _, _, err := service.Login(context.Background(), dto.LoginRequest{Email: "student@school.edu", Password: "brandnew1pass"}); err != nil {
		t.Errorf("Login() with new password error = %v", err)
	}
}

func TestCleanupExpiredTokens(t *testing.T) {
	service, _, tokens := newAuthFixture()

	tokens.Blacklist(context.Background(), "stale", 1, time.Now().Add(-time.Hour))
	tokens.Blacklist(context.Background(), "live", 1, time.Now().Add(time.Hour))

	removed, err := service.CleanupExpiredTokens(context.Background())
	if err != nil {
		t.Fatalf("CleanupExpiredTokens() error = %v", err)
	}
	if removed != 1 {
		t.Errorf("CleanupExpiredTokens() removed = %d, want 1", removed)
	}
	if blacklisted, _ := tokens.IsBlacklisted(context.Background(), "live"); !blacklisted {
		t.Errorf("CleanupExpiredTokens() dropped an unexpired token")
	}
}
