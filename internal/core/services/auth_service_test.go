package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"loanintake-backend/internal/adapters/persistence/models"
	"loanintake-backend/internal/config"
	"loanintake-backend/internal/core/domain"
	"loanintake-backend/internal/pkg/password"
)

func testConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}
}

func newTestAuthService() (*AuthService, *fakeUserRepo, *fakeRefreshTokenRepo) {
	userRepo := newFakeUserRepo()
	tokenRepo := newFakeRefreshTokenRepo()
	return NewAuthService(userRepo, tokenRepo, testConfig()), userRepo, tokenRepo
}

func registerInput() *RegisterInput {
	return &RegisterInput{
		Username:    "asha",
		Email:       "asha@example.com",
		PhoneNumber: "9876543210",
		DOB:         "1992-06-01",
		Role:        "employee",
		Password:    "secret-password",
	}
}

func TestRegisterRequiresEmail(t *testing.T) {
	svc, _, _ := newTestAuthService()

	input := registerInput()
	input.Email = "  "

	_, err := svc.Register(context.Background(), input)
	if !errors.Is(err, ErrEmailRequired) {
		t.Fatalf("expected ErrEmailRequired, got %v", err)
	}
}

func TestRegisterRequiresPhone(t *testing.T) {
	svc, _, _ := newTestAuthService()

	input := registerInput()
	input.PhoneNumber = ""

	_, err := svc.Register(context.Background(), input)
	if !errors.Is(err, ErrPhoneRequired) {
		t.Fatalf("expected ErrPhoneRequired, got %v", err)
	}
}

func TestRegisterDefaultsToEmployee(t *testing.T) {
	svc, userRepo, _ := newTestAuthService()

	input := registerInput()
	input.Role = ""

	result, err := svc.Register(context.Background(), input)
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if result.User.Role != domain.RoleEmployee {
		t.Fatalf("expected role employee, got %s", result.User.Role)
	}

	stored, err := userRepo.GetByID(context.Background(), result.User.ID)
	if err != nil {
		t.Fatalf("stored user not found: %v", err)
	}
	if stored.Role != domain.RoleEmployee {
		t.Fatalf("stored role = %s, want employee", stored.Role)
	}
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc, _, _ := newTestAuthService()

	input := registerInput()
	input.Role = "admin"

	_, err := svc.Register(context.Background(), input)
	if !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestRegisterNormalizesEmail(t *testing.T) {
	svc, userRepo, _ := newTestAuthService()

	input := registerInput()
	input.Email = "  Asha@Example.COM "

	result, err := svc.Register(context.Background(), input)
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	stored, err := userRepo.GetByEmail(context.Background(), "asha@example.com")
	if err != nil {
		t.Fatalf("normalized email not stored: %v", err)
	}
	if stored.ID != result.User.ID {
		t.Fatalf("lookup returned user %d, want %d", stored.ID, result.User.ID)
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerInput()); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	dup := registerInput()
	dup.Username = "other"
	dup.PhoneNumber = "1112223330"
	// Email collides
	if _, err := svc.Register(ctx, dup); !errors.Is(err, ErrUserAlreadyExists) {
		t.Fatalf("expected ErrUserAlreadyExists on email, got %v", err)
	}
}

func TestRegisterIssuesTokenPair(t *testing.T) {
	svc, _, tokenRepo := newTestAuthService()

	result, err := svc.Register(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Fatal("expected both tokens to be issued")
	}
	if tokenRepo.activeCount(result.User.ID) != 1 {
		t.Fatalf("expected 1 stored refresh token, got %d", tokenRepo.activeCount(result.User.ID))
	}
}

func seedUser(t *testing.T, userRepo *fakeUserRepo, role domain.Role, active bool) *models.User {
	t.Helper()

	hashed, err := password.Hash("secret-password")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	dob, _ := time.Parse("2006-01-02", "1992-06-01")
	return userRepo.add(&models.User{
		Username:    "asha",
		Email:       "asha@example.com",
		PhoneNumber: "9876543210",
		DOB:         dob,
		Role:        role,
		Password:    hashed,
		IsActive:    active,
	})
}

func loginInput() *LoginInput {
	return &LoginInput{
		Email:       "asha@example.com",
		PhoneNumber: "9876543210",
		DOB:         "1992-06-01",
		Role:        "employee",
		Password:    "secret-password",
	}
}

func TestLoginSucceedsWithAllFactors(t *testing.T) {
	svc, userRepo, _ := newTestAuthService()
	seedUser(t, userRepo, domain.RoleEmployee, true)

	result, err := svc.Login(context.Background(), loginInput())
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Fatal("expected both tokens to be issued")
	}
}

func TestLoginUppercaseEmailStillMatches(t *testing.T) {
	svc, userRepo, _ := newTestAuthService()
	seedUser(t, userRepo, domain.RoleEmployee, true)

	input := loginInput()
	input.Email = "ASHA@Example.com"

	if _, err := svc.Login(context.Background(), input); err != nil {
		t.Fatalf("login failed: %v", err)
	}
}

func TestLoginFailsOnFactorMismatch(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*LoginInput)
	}{
		{"wrong phone", func(in *LoginInput) { in.PhoneNumber = "0000000000" }},
		{"wrong dob", func(in *LoginInput) { in.DOB = "1990-01-01" }},
		{"wrong role", func(in *LoginInput) { in.Role = "manager" }},
		{"wrong password", func(in *LoginInput) { in.Password = "not-the-password" }},
		{"malformed dob", func(in *LoginInput) { in.DOB = "June 1st 1992" }},
		{"unknown role", func(in *LoginInput) { in.Role = "admin" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, userRepo, _ := newTestAuthService()
			seedUser(t, userRepo, domain.RoleEmployee, true)

			input := loginInput()
			tc.mutate(input)

			if _, err := svc.Login(context.Background(), input); !errors.Is(err, ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestLoginFailsForInactiveUser(t *testing.T) {
	svc, userRepo, _ := newTestAuthService()
	seedUser(t, userRepo, domain.RoleEmployee, false)

	if _, err := svc.Login(context.Background(), loginInput()); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRefreshTokenRotation(t *testing.T) {
	svc, _, tokenRepo := newTestAuthService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, registerInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	refreshed, err := svc.RefreshToken(ctx, registered.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if refreshed.RefreshToken == registered.RefreshToken {
		t.Fatal("expected a new refresh token after rotation")
	}

	// Old token is revoked and cannot be replayed
	if _, err := svc.RefreshToken(ctx, registered.RefreshToken); !errors.Is(err, ErrTokenRevoked) {
		t.Fatalf("expected ErrTokenRevoked on replay, got %v", err)
	}

	if got := tokenRepo.activeCount(registered.User.ID); got != 1 {
		t.Fatalf("expected 1 active token after rotation, got %d", got)
	}
}

func TestRefreshTokenRejectsGarbage(t *testing.T) {
	svc, _, _ := newTestAuthService()

	if _, err := svc.RefreshToken(context.Background(), "not-a-jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestRefreshTokenFailsForInactiveUser(t *testing.T) {
	svc, userRepo, _ := newTestAuthService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, registerInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, _ := userRepo.GetByID(ctx, registered.User.ID)
	user.IsActive = false

	if _, err := svc.RefreshToken(ctx, registered.RefreshToken); !errors.Is(err, ErrUserInactive) {
		t.Fatalf("expected ErrUserInactive, got %v", err)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, _, tokenRepo := newTestAuthService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, registerInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := svc.Logout(ctx, registered.RefreshToken); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if got := tokenRepo.activeCount(registered.User.ID); got != 0 {
		t.Fatalf("expected 0 active tokens after logout, got %d", got)
	}

	if _, err := svc.RefreshToken(ctx, registered.RefreshToken); !errors.Is(err, ErrTokenRevoked) {
		t.Fatalf("expected ErrTokenRevoked after logout, got %v", err)
	}
}

func TestLogoutAllRevokesEverySession(t *testing.T) {
	svc, userRepo, tokenRepo := newTestAuthService()
	ctx := context.Background()

	seedUser(t, userRepo, domain.RoleEmployee, true)

	first, err := svc.Login(ctx, loginInput())
	if err != nil {
		t.Fatalf("first login failed: %v", err)
	}
	if _, err := svc.Login(ctx, loginInput()); err != nil {
		t.Fatalf("second login failed: %v", err)
	}

	if err := svc.LogoutAll(ctx, first.User.ID); err != nil {
		t.Fatalf("logout-all failed: %v", err)
	}
	if got := tokenRepo.activeCount(first.User.ID); got != 0 {
		t.Fatalf("expected 0 active tokens, got %d", got)
	}
}
