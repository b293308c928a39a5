package ports

import (
	"context"

	"github.com/res-landing/restaurant-system/internal/core/domain"
)

// MenuRepository defines persistence operations for the menu catalog.
type MenuRepository interface {
	List(ctx context.Context) ([]*domain.MenuItem, error)
	FindByID(ctx context.Context, id string) (*domain.MenuItem, error)
	Create(ctx context.Context, item *domain.MenuItem) (*domain.MenuItem, error)
	Update(ctx context.Context, item *domain.MenuItem) (*domain.MenuItem, error)
	Delete(ctx context.Context, id string) error
}
