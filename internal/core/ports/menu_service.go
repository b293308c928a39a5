package ports

import (
	"context"

	"github.com/res-landing/restaurant-system/internal/core/domain"
)

// CreateMenuItemInput carries the fields for a new menu item. Category and
// Image fall back to catalog defaults when empty.
type CreateMenuItemInput struct {
	Name        string
	Description string
	Price       float64
	Category    string
	Image       string
}

// UpdateMenuItemInput carries a partial update: nil fields keep their prior
// values.
type UpdateMenuItemInput struct {
	Name        *string
	Description *string
	Price       *float64
	Category    *string
	Image       *string
}

// MenuService covers the public catalog view and the admin-only mutations.
type MenuService interface {
	List(ctx context.Context) ([]*domain.MenuItem, error)
	Get(ctx context.Context, id string) (*domain.MenuItem, error)
	Create(ctx context.Context, input CreateMenuItemInput) (*domain.MenuItem, error)
	Update(ctx context.Context, id string, input UpdateMenuItemInput) (*domain.MenuItem, error)
	Delete(ctx context.Context, id string) error
}
