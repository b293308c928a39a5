package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/res-landing/restaurant-system/internal/auth"
	"github.com/res-landing/restaurant-system/internal/core/domain"
)

type stubUserRepo struct {
	users  map[string]*domain.User // keyed by email
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = string(rune('a' + r.nextID))
	r.users[copy.Email] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := r.users[email]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			identity := cloneUser(u)
			identity.PasswordHash = ""
			return identity, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func newTestAuthService() (*AuthService, *stubUserRepo, *auth.Issuer) {
	repo := newStubUserRepo()
	issuer := auth.NewIssuer("secret", time.Hour)
	return NewAuthService(repo, issuer), repo, issuer
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, _, issuer := newTestAuthService()

	token, user, err := svc.Register(context.Background(), "alice", "A@X.com", "secret1")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Email != "a@x.com" {
		t.Fatalf("expected lowercased email, got %s", user.Email)
	}
	if user.Role != domain.RoleCustomer {
		t.Fatalf("expected customer role, got %s", user.Role)
	}
	if user.PasswordHash == "secret1" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	claims, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("registration token invalid: %v", err)
	}
	if claims.Subject != user.ID || claims.Role != domain.RoleCustomer {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, _, _ := newTestAuthService()

	cases := []struct {
		name                      string
		username, email, password string
	}{
		{"missing fields", "", "", ""},
		{"short username", "al", "a@x.com", "secret1"},
		{"short password", "alice", "a@x.com", "12345"},
		{"password over bcrypt limit", "alice", "a@x.com", strings.Repeat("x", 73)},
		{"bad email", "alice", "not-an-email", "secret1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.Register(context.Background(), tc.username, tc.email, tc.password)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestAuthService()

	if _, _, err := svc.Register(context.Background(), "alice", "a@x.com", "secret1"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, _, err := svc.Register(context.Background(), "someone", "a@x.com", "secret2"); err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	svc, _, _ := newTestAuthService()

	if _, _, err := svc.Register(context.Background(), "alice", "a@x.com", "secret1"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, _, err := svc.Register(context.Background(), "alice", "other@x.com", "secret2"); err != domain.ErrUsernameTaken {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, _, issuer := newTestAuthService()

	if _, _, err := svc.Register(context.Background(), "carol", "carol@x.com", "s3cret1"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "Carol@X.com", "s3cret1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.Username != "carol" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("login token invalid: %v", err)
	}
	if claims.Role != domain.RoleCustomer {
		t.Fatalf("expected role %s, got %s", domain.RoleCustomer, claims.Role)
	}
}

// Unknown email and wrong password must be indistinguishable to the caller.
func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	svc, _, _ := newTestAuthService()

	if _, _, err := svc.Register(context.Background(), "dave", "dave@x.com", "goodpass"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, _, wrongPass := svc.Login(context.Background(), "dave@x.com", "badpass")
	_, _, noUser := svc.Login(context.Background(), "ghost@x.com", "whatever")

	if wrongPass != domain.ErrInvalidCredentials {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPass)
	}
	if noUser != domain.ErrInvalidCredentials {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", noUser)
	}
	if wrongPass != noUser {
		t.Fatalf("errors must be identical to avoid account enumeration")
	}
}

func TestAuthService_Login_MissingFields(t *testing.T) {
	svc, _, _ := newTestAuthService()

	if _, _, err := svc.Login(context.Background(), "", "pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "a@x.com", ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
