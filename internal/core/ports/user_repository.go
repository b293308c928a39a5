package ports

import (
	"context"

	"github.com/res-landing/restaurant-system/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
// FindByID returns identity fields only; the password hash never leaves the
// repository through it.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
