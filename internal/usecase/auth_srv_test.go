package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"cinetheque/internal/dto/request"
	"cinetheque/pkg/utils"
)

func testAuthService() AuthService {
	config := &utils.Config{}
	config.Session.MaxAgeDays = 30
	return NewAuthService(newTestRepository(newFakeFilmRepo(), newFakeReviewRepo(), newFakeWatchlistRepo()), config, testLogger())
}

func registerReq(username, email string) *request.RegisterRequest {
	return &request.RegisterRequest{
		Username:        username,
		Email:           email,
		Password:        "secret123",
		ConfirmPassword: "secret123",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	service := testAuthService()
	ctx := context.Background()

	user, err := service.Register(ctx, registerReq("claire", "Claire@Example.com "))
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.Email != "claire@example.com" {
		t.Errorf("stored email = %q, want lowercased and trimmed", user.Email)
	}

	auth, err := service.Login(ctx, &request.LoginRequest{
		Email:    "claire@example.com",
		Password: "secret123",
	}, "test-agent", "127.0.0.1")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if auth.Token == "" {
		t.Error("Login() returned no session token")
	}
	if auth.User.Username != "claire" {
		t.Errorf("logged-in user = %q, want claire", auth.User.Username)
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	service := testAuthService()
	ctx := context.Background()

	if _, err := service.Register(ctx, registerReq("marc", "marc@example.com")); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, err := service.Register(ctx, registerReq("other", "marc@example.com"))
	if err == nil || !strings.Contains(err.Error(), "already registered") {
		t.Errorf("duplicate email error = %v, want already registered", err)
	}

	_, err = service.Register(ctx, registerReq("marc", "new@example.com"))
	if err == nil || !strings.Contains(err.Error(), "already taken") {
		t.Errorf("duplicate username error = %v, want already taken", err)
	}
}

func TestRegisterRejectsMismatchedPasswords(t *testing.T) {
	service := testAuthService()

	req := registerReq("nina", "nina@example.com")
	req.ConfirmPassword = "different1"

	if _, err := service.Register(context.Background(), req); err == nil {
		t.Error("mismatched passwords accepted")
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	service := testAuthService()
	ctx := context.Background()

	if _, err := service.Register(ctx, registerReq("paul", "paul@example.com")); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, wrongPassword := service.Login(ctx, &request.LoginRequest{
		Email:    "paul@example.com",
		Password: "wrongwrong",
	}, "", "")
	_, unknownEmail := service.Login(ctx, &request.LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever1",
	}, "", "")

	if !errors.Is(wrongPassword, ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v, want ErrInvalidCredentials", wrongPassword)
	}
	if !errors.Is(unknownEmail, ErrInvalidCredentials) {
		t.Errorf("unknown email error = %v, want ErrInvalidCredentials", unknownEmail)
	}
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Error("credential failures leak which field was wrong")
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	config := &utils.Config{}
	config.Session.MaxAgeDays = 30
	repo := newTestRepository(newFakeFilmRepo(), newFakeReviewRepo(), newFakeWatchlistRepo())
	service := NewAuthService(repo, config, testLogger())
	ctx := context.Background()

	if _, err := service.Register(ctx, registerReq("ada", "ada@example.com")); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	auth, err := service.Login(ctx, &request.LoginRequest{Email: "ada@example.com", Password: "secret123"}, "", "")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if err := service.Logout(ctx, auth.Token); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}

	session, _ := repo.Session.FindValidSession(ctx, auth.Token)
	if session != nil {
		t.Error("session still valid after logout")
	}

	// Logging out twice is fine
	if err := service.Logout(ctx, auth.Token); err != nil {
		t.Errorf("second Logout() error = %v", err)
	}
}
