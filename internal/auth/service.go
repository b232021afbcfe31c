package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/plannyhq/planny/internal/domain"
)

// Sentinel errors for the auth package.
var (
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrUserAlreadyExists  = errors.New("auth: user already exists")
)

// Service provides credential checks and session token issuance.
type Service struct {
	users     domain.UserRepository
	verifier  Verifier
	jwtSecret string
	tokenTTL  time.Duration
}

func NewService(users domain.UserRepository, verifier Verifier, jwtSecret string, tokenTTL time.Duration) *Service {
	return &Service{
		users:     users,
		verifier:  verifier,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

// Authenticate checks username/password against the store. Returns
// ErrInvalidCredentials for an unknown user or a mismatch, never revealing
// which of the two failed.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, stored, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("auth.Authenticate: %w", ErrInvalidCredentials)
	}
	if err != nil {
		return nil, fmt.Errorf("auth.Authenticate: %w", err)
	}

	if !s.verifier.Verify(password, stored) {
		return nil, fmt.Errorf("auth.Authenticate: %w", ErrInvalidCredentials)
	}

	return user, nil
}

// Register creates a new user with the encoded credential.
func (s *Service) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, fmt.Errorf("auth.Register: empty username: %w", domain.ErrConstraint)
	}
	if password == "" {
		return nil, fmt.Errorf("auth.Register: empty password: %w", domain.ErrConstraint)
	}

	credential, err := s.verifier.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("auth.Register: %w", err)
	}

	user, err := s.users.Create(ctx, username, credential)
	if errors.Is(err, domain.ErrConstraint) {
		return nil, fmt.Errorf("auth.Register: %w", ErrUserAlreadyExists)
	}
	if err != nil {
		return nil, fmt.Errorf("auth.Register: %w", err)
	}

	return user, nil
}

// Login authenticates and issues a session token.
func (s *Service) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return "", nil, fmt.Errorf("auth.Login: %w", err)
	}

	token, err := IssueToken(s.jwtSecret, user.ID, user.Username, s.tokenTTL)
	if err != nil {
		return "", nil, fmt.Errorf("auth.Login: %w", err)
	}

	return token, user, nil
}
