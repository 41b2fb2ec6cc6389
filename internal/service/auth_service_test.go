package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/yuetlam/splitter/internal/auth"
	"github.com/yuetlam/splitter/internal/storage/sqlite"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "splitter-auth-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	return NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	session, err := svc.Register(ctx, "Hiker@Example.com", "Hiker", "trailmix99")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if session.Token == "" {
		t.Error("expected a session token")
	}
	if session.User.Email != "hiker@example.com" {
		t.Errorf("email not normalized: %s", session.User.Email)
	}

	session, err = svc.Login(ctx, "hiker@example.com", "trailmix99")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if session.User.DisplayName != "Hiker" {
		t.Errorf("DisplayName = %s, want Hiker", session.User.DisplayName)
	}

	if _, err := svc.Login(ctx, "hiker@example.com", "wrong-password"); !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v, want ErrInvalidCredentials", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name        string
		email       string
		displayName string
		password    string
	}{
		{"bad email", "not-an-email", "Name", "longenough"},
		{"blank display name", "a@b.com", "  ", "longenough"},
		{"short password", "a@b.com", "Name", "short"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Register(ctx, tt.email, tt.displayName, tt.password); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("error = %v, want ErrInvalidInput", err)
			}
		})
	}

	if _, err := svc.Register(ctx, "dup@example.com", "First", "longenough"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := svc.Register(ctx, "dup@example.com", "Second", "longenough"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("duplicate email error = %v, want ErrInvalidInput", err)
	}
}
