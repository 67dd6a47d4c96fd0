package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/tasklane/tasklane/internal/auth"
	"github.com/tasklane/tasklane/internal/models"
	"github.com/tasklane/tasklane/internal/storage"
	"github.com/tasklane/tasklane/internal/validation"
)

// ErrInvalidCredentials covers both an unknown email and a wrong password so
// login failures don't reveal whether an account exists.
var ErrInvalidCredentials = errors.New("invalid email or password")

type UserService struct {
	users      storage.UserStore
	jwtManager *auth.JWTManager
	bcryptCost int
}

func NewUserService(users storage.UserStore, jwtManager *auth.JWTManager, bcryptCost int) *UserService {
	return &UserService{
		users:      users,
		jwtManager: jwtManager,
		bcryptCost: bcryptCost,
	}
}

func (s *UserService) Register(ctx context.Context, name, email, password string) (*models.User, string, error) {
	if err := validation.ValidateRegistration(name, email, password); err != nil {
		return nil, "", err
	}

	// Pre-check is an optimization; the unique constraint on users.email is
	// the guarantee under concurrent registration.
	existing, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, "", storage.ErrDuplicateEmail
	}

	passwordHash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.CreateUser(ctx, name, email, passwordHash)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateEmail) {
			return nil, "", storage.ErrDuplicateEmail
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, _, err := s.jwtManager.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, _, err := s.jwtManager.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}
