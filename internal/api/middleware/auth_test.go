package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/res-landing/restaurant-system/internal/auth"
	"github.com/res-landing/restaurant-system/internal/core/domain"
)

type stubUserRepo struct {
	byID map[string]*domain.User
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	return user, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, _ string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, _ string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.byID[id]; ok {
		clone := *u
		clone.PasswordHash = ""
		return &clone, nil
	}
	return nil, domain.ErrUserNotFound
}

func testRepo() *stubUserRepo {
	return &stubUserRepo{byID: map[string]*domain.User{
		"user-1": {ID: "user-1", Username: "alice", Email: "a@x.com", Role: domain.RoleAdmin},
	}}
}

func TestAuth_ValidToken(t *testing.T) {
	e := echo.New()
	issuer := auth.NewIssuer("secret", time.Hour)
	token, err := issuer.Issue("user-1", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Auth(issuer, testRepo())
	handler := mw(func(c echo.Context) error {
		called = true
		if c.Get(CtxUserID) != "user-1" {
			t.Fatalf("user_id not set")
		}
		if c.Get(CtxUsername) != "alice" {
			t.Fatalf("username not set")
		}
		if c.Get(CtxEmail) != "a@x.com" {
			t.Fatalf("email not set")
		}
		if c.Get(CtxRole) != domain.RoleAdmin {
			t.Fatalf("role not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

// The role on the request comes from the store, not the token: a token
// minted before a demotion must carry the current role.
func TestAuth_RoleFromStoreWinsOverToken(t *testing.T) {
	e := echo.New()
	issuer := auth.NewIssuer("secret", time.Hour)
	token, err := issuer.Issue("user-1", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	repo := testRepo()
	repo.byID["user-1"].Role = domain.RoleCustomer

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(issuer, repo)
	handler := mw(func(c echo.Context) error {
		if c.Get(CtxRole) != domain.RoleCustomer {
			t.Fatalf("expected store role, got %v", c.Get(CtxRole))
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func expectRejected(t *testing.T, req *http.Request, wantCode int) {
	t.Helper()
	e := echo.New()
	issuer := auth.NewIssuer("secret", time.Hour)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(issuer, testRepo())
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != wantCode {
		t.Fatalf("expected %d, got %d", wantCode, rec.Code)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	expectRejected(t, req, http.StatusUnauthorized)
}

func TestAuth_InvalidScheme(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	expectRejected(t, req, http.StatusUnauthorized)
}

func TestAuth_InvalidToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	expectRejected(t, req, http.StatusUnauthorized)
}

func TestAuth_ExpiredToken(t *testing.T) {
	claims := auth.Claims{
		Role: domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Second)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	expectRejected(t, req, http.StatusUnauthorized)
}

func TestAuth_CorruptStoredRole(t *testing.T) {
	e := echo.New()
	issuer := auth.NewIssuer("secret", time.Hour)
	token, err := issuer.Issue("user-1", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	repo := testRepo()
	repo.byID["user-1"].Role = "superuser"

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(issuer, repo)
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_UnknownSubject(t *testing.T) {
	issuer := auth.NewIssuer("secret", time.Hour)
	token, err := issuer.Issue("ghost", domain.RoleCustomer)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	expectRejected(t, req, http.StatusUnauthorized)
}
