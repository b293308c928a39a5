package ports

import (
	"context"

	"github.com/res-landing/restaurant-system/internal/core/domain"
)

// AuthService covers account registration and credential-based login.
// Both return the user together with a freshly issued bearer token.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
