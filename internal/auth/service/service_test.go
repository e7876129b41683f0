package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/smallbiznis/bizdesk/internal/auth/domain"
	"github.com/smallbiznis/bizdesk/internal/auth/repository"
	"github.com/smallbiznis/bizdesk/internal/clock"
	"github.com/smallbiznis/bizdesk/pkg/db"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) (authdomain.Service, *clock.FakeClock) {
	t.Helper()

	dbConn, err := db.NewTest()
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := dbConn.AutoMigrate(&authdomain.User{}, &authdomain.Session{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	repo, sessionRepo := repository.New(dbConn)
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("failed to create snowflake node: %v", err)
	}

	clk := clock.NewFakeClock(time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC))
	return New(zap.NewNop(), repo, sessionRepo, node, clk), clk
}

func createAlice(t *testing.T, svc authdomain.Service) *authdomain.User {
	t.Helper()
	user, err := svc.CreateUser(context.Background(), authdomain.CreateUserRequest{
		CompanyID: 77,
		Email:     "Alice@Example.com",
		Password:  "correct-password",
	})
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService(t)
	createAlice(t, svc)

	_, err := svc.Login(context.Background(), authdomain.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})
	if err != authdomain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownEmailLooksTheSame(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), authdomain.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever-password",
	})
	if err != authdomain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	_, err = svc.Login(context.Background(), authdomain.LoginRequest{Email: "not an email", Password: "x"})
	if err != authdomain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestCreateUserNormalizesEmail(t *testing.T) {
	svc, _ := newTestService(t)
	user := createAlice(t, svc)

	if user.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %s", user.Email)
	}
	if user.DisplayName != "alice" {
		t.Fatalf("expected display name from email, got %s", user.DisplayName)
	}
	if user.PasswordHash == "correct-password" {
		t.Fatal("password stored in plain text")
	}

	_, err := svc.CreateUser(context.Background(), authdomain.CreateUserRequest{
		CompanyID: 77,
		Email:     "alice@example.com",
		Password:  "another-password",
	})
	if err != authdomain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestCreateUserValidates(t *testing.T) {
	svc, _ := newTestService(t)

	cases := map[string]struct {
		req  authdomain.CreateUserRequest
		want error
	}{
		"no company": {authdomain.CreateUserRequest{Email: "a@b.co", Password: "long-enough"}, authdomain.ErrInvalidCompany},
		"bad email":  {authdomain.CreateUserRequest{CompanyID: 1, Email: "nope", Password: "long-enough"}, authdomain.ErrInvalidEmail},
		"short":      {authdomain.CreateUserRequest{CompanyID: 1, Email: "a@b.co", Password: "short"}, authdomain.ErrWeakPassword},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := svc.CreateUser(context.Background(), tc.req); err != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestSessionLifecycle(t *testing.T) {
	svc, clk := newTestService(t)
	user := createAlice(t, svc)

	result, err := svc.Login(context.Background(), authdomain.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.RawToken == "" {
		t.Fatal("expected raw token")
	}

	session, err := svc.Authenticate(context.Background(), result.RawToken)
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if session.CompanyID != user.CompanyID {
		t.Fatalf("expected company %d, got %d", user.CompanyID, session.CompanyID)
	}
	if session.SessionTokenHash == result.RawToken {
		t.Fatal("raw token persisted")
	}

	if err := svc.Logout(context.Background(), result.RawToken); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), result.RawToken); err != authdomain.ErrSessionRevoked {
		t.Fatalf("expected ErrSessionRevoked, got %v", err)
	}

	second, err := svc.Login(context.Background(), authdomain.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	clk.Advance(8 * 24 * time.Hour)
	if _, err := svc.Authenticate(context.Background(), second.RawToken); err != authdomain.ErrSessionExpired {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}

	if _, err := svc.Authenticate(context.Background(), "garbage"); err != authdomain.ErrInvalidSession {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	svc, _ := newTestService(t)
	user := createAlice(t, svc)

	if err := svc.ChangePassword(context.Background(), user.ID, "brand-new-password"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	if _, err := svc.Login(context.Background(), authdomain.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct-password",
	}); err != authdomain.ErrInvalidCredentials {
		t.Fatalf("old password still valid: %v", err)
	}
	if _, err := svc.Login(context.Background(), authdomain.LoginRequest{
		Email:    "alice@example.com",
		Password: "brand-new-password",
	}); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}
