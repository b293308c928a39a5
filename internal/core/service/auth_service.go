package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/res-landing/restaurant-system/internal/auth"
	"github.com/res-landing/restaurant-system/internal/core/domain"
	"github.com/res-landing/restaurant-system/internal/core/ports"
)

const (
	minUsernameLen = 3
	minPasswordLen = 6
	// bcrypt only hashes the first 72 bytes; longer inputs are an error,
	// not a silent truncation, so reject them up front.
	maxPasswordLen = 72
)

// AuthService implements registration and login on top of the credential
// store and the token issuer.
type AuthService struct {
	repo   ports.UserRepository
	issuer *auth.Issuer
}

func NewAuthService(repo ports.UserRepository, issuer *auth.Issuer) *AuthService {
	return &AuthService{repo: repo, issuer: issuer}
}

// Register creates a new account and returns it with a freshly issued token.
// The role is always customer; admin accounts are provisioned out-of-band,
// never through this endpoint.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (string, *domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if err := validateRegistration(username, email, password); err != nil {
		return "", nil, err
	}

	// Check email first, then username, so the caller learns which field
	// collided. The unique indexes still win any race between concurrent
	// registrations.
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return "", nil, domain.ErrEmailTaken
	} else if err != domain.ErrUserNotFound {
		return "", nil, err
	}
	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return "", nil, domain.ErrUsernameTaken
	} else if err != domain.ErrUserNotFound {
		return "", nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleCustomer,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return "", nil, err
	}

	token, err := s.issuer.Issue(created.ID, created.Role)
	if err != nil {
		return "", nil, err
	}
	return token, created, nil
}

// Login authenticates by email and password. Unknown email and wrong
// password both fail with ErrInvalidCredentials so callers cannot probe
// which accounts exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func validateRegistration(username, email, password string) error {
	if username == "" || email == "" || password == "" {
		return fmt.Errorf("%w: username, email and password are required", domain.ErrInvalidInput)
	}
	if len(username) < minUsernameLen {
		return fmt.Errorf("%w: username must be at least %d characters", domain.ErrInvalidInput, minUsernameLen)
	}
	if len(password) < minPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLen)
	}
	if len(password) > maxPasswordLen {
		return fmt.Errorf("%w: password must be at most %d bytes", domain.ErrInvalidInput, maxPasswordLen)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: email is not a valid address", domain.ErrInvalidInput)
	}
	return nil
}
