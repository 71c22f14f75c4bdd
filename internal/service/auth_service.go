package service

import (
	"context"
	"errors"
	"fmt"

	"go-cheatsheets-app/internal/data"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when a login attempt fails, for an
// unknown username and a wrong password alike.
var ErrInvalidCredentials = errors.New("invalid username or password")

const (
	defaultAdminUsername = "admin"
	defaultAdminEmail    = "admin@example.com"
	defaultAdminPassword = "admin123"
)

// UserRepository defines the database operations on users.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*data.User, error)
	GetByUsername(ctx context.Context, username string) (*data.User, error)
	GetAll(ctx context.Context) ([]*data.User, error)
	Create(ctx context.Context, username, email, passwordHash string, isAdmin bool) (int64, error)
}

// AuthService verifies credentials and manages accounts.
type AuthService struct {
	users UserRepository
}

// NewAuthService creates an AuthService over the user repository.
func NewAuthService(users UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Authenticate checks a username/password pair and returns the user on
// success. Unknown usernames and wrong passwords both return
// ErrInvalidCredentials so callers can't distinguish them.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*data.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to compare password hash: %w", err)
	}
	return user, nil
}

// Register creates a new account with a bcrypt-hashed password and
// returns its ID.
func (s *AuthService) Register(ctx context.Context, username, email, password string, isAdmin bool) (int64, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}
	return s.users.Create(ctx, username, email, string(hash), isAdmin)
}

// EnsureAdmin seeds the default admin account if no user with that
// username exists. It is idempotent and called once from the process
// entry point, after migrations.
func (s *AuthService) EnsureAdmin(ctx context.Context) error {
	existing, err := s.users.GetByUsername(ctx, defaultAdminUsername)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	_, err = s.Register(ctx, defaultAdminUsername, defaultAdminEmail, defaultAdminPassword, true)
	return err
}
