package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tasklane/tasklane/internal/auth"
	"github.com/tasklane/tasklane/internal/storage"
	"github.com/tasklane/tasklane/internal/validation"
)

func newUserService() *UserService {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	return NewUserService(storage.NewMemoryUserStore(), jwtManager, bcrypt.MinCost)
}

func TestRegister(t *testing.T) {
	svc := newUserService()

	user, token, err := svc.Register(context.Background(), "Alice", "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.ID == "" {
		t.Error("expected user id to be assigned")
	}
	if user.Name != "Alice" || user.Email != "a@x.com" {
		t.Errorf("unexpected user: %+v", user)
	}
	if token == "" {
		t.Error("expected a token")
	}

	claims, err := auth.NewJWTManager("test-secret", time.Hour).ValidateToken(token)
	if err != nil {
		t.Fatalf("token should validate: %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("token user id %q does not match registered user %q", claims.UserID, user.ID)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "Alice", "a@x.com", "secret1"); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	_, _, err := svc.Register(ctx, "Alice Again", "a@x.com", "secret2")
	if !errors.Is(err, storage.ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestRegister_PasswordNotStoredInPlaintext(t *testing.T) {
	store := storage.NewMemoryUserStore()
	svc := NewUserService(store, auth.NewJWTManager("test-secret", time.Hour), bcrypt.MinCost)
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "Alice", "a@x.com", "secret1"); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	stored, err := store.GetUserByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.PasswordHash == "secret1" {
		t.Error("password stored in plaintext")
	}
	if err := auth.CheckPassword(stored.PasswordHash, "secret1"); err != nil {
		t.Errorf("stored hash should verify against the password: %v", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()

	tests := []struct {
		name     string
		userName string
		email    string
		password string
	}{
		{"short name", "A", "a@x.com", "secret1"},
		{"bad email", "Alice", "not-an-email", "secret1"},
		{"short password", "Alice", "a@x.com", "12345"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Register(ctx, tt.userName, tt.email, tt.password)
			if !validation.IsValidationError(err) {
				t.Errorf("expected a validation error, got %v", err)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()

	registered, _, err := svc.Register(ctx, "Alice", "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	user, token, err := svc.Login(ctx, "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("expected user id %q, got %q", registered.ID, user.ID)
	}

	claims, err := auth.NewJWTManager("test-secret", time.Hour).ValidateToken(token)
	if err != nil {
		t.Fatalf("token should validate: %v", err)
	}
	if claims.UserID != registered.ID {
		t.Errorf("token decodes to user %q, want %q", claims.UserID, registered.ID)
	}
}

// Wrong password and unknown email must be the same error so a caller cannot
// probe which accounts exist.
func TestLogin_FailuresIndistinguishable(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "Alice", "a@x.com", "secret1"); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	_, _, wrongPassword := svc.Login(ctx, "a@x.com", "wrong")
	_, _, unknownEmail := svc.Login(ctx, "nobody@x.com", "secret1")

	if !errors.Is(wrongPassword, ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", wrongPassword)
	}
	if !errors.Is(unknownEmail, ErrInvalidCredentials) {
		t.Errorf("unknown email: expected ErrInvalidCredentials, got %v", unknownEmail)
	}
}
