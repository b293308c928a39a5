package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/res-landing/restaurant-system/internal/core/domain"
	"github.com/res-landing/restaurant-system/internal/core/ports"
)

// MenuCache is an optional read-through cache for the public menu listing.
// Implementations must tolerate being unavailable: cache errors degrade to
// repository reads, never to request failures.
type MenuCache interface {
	GetList(ctx context.Context) ([]*domain.MenuItem, bool)
	SetList(ctx context.Context, items []*domain.MenuItem)
	Invalidate(ctx context.Context)
}

// MenuService implements the catalog operations. Mutations invalidate the
// list cache so the public view never serves a deleted or stale item past
// the cache TTL.
type MenuService struct {
	repo   ports.MenuRepository
	cache  MenuCache
	logger zerolog.Logger
}

func NewMenuService(repo ports.MenuRepository, cache MenuCache, logger zerolog.Logger) *MenuService {
	return &MenuService{repo: repo, cache: cache, logger: logger}
}

func (s *MenuService) List(ctx context.Context) ([]*domain.MenuItem, error) {
	if s.cache != nil {
		if items, ok := s.cache.GetList(ctx); ok {
			return items, nil
		}
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetList(ctx, items)
	}
	return items, nil
}

func (s *MenuService) Get(ctx context.Context, id string) (*domain.MenuItem, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *MenuService) Create(ctx context.Context, input ports.CreateMenuItemInput) (*domain.MenuItem, error) {
	name := strings.TrimSpace(input.Name)
	description := strings.TrimSpace(input.Description)
	if name == "" || description == "" {
		return nil, fmt.Errorf("%w: name and description are required", domain.ErrInvalidMenuItem)
	}
	if input.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", domain.ErrInvalidMenuItem)
	}

	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = domain.DefaultCategory
	}
	image := strings.TrimSpace(input.Image)
	if image == "" {
		image = domain.DefaultImageURL
	}

	now := time.Now().UTC()
	item := &domain.MenuItem{
		Name:        name,
		Description: description,
		Price:       input.Price,
		Category:    category,
		Image:       image,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, item)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return created, nil
}

// Update applies a partial update: nil fields keep their stored values.
func (s *MenuService) Update(ctx context.Context, id string, input ports.UpdateMenuItemInput) (*domain.MenuItem, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		item.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil && strings.TrimSpace(*input.Description) != "" {
		item.Description = strings.TrimSpace(*input.Description)
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, fmt.Errorf("%w: price cannot be negative", domain.ErrInvalidMenuItem)
		}
		item.Price = *input.Price
	}
	if input.Category != nil && strings.TrimSpace(*input.Category) != "" {
		item.Category = strings.TrimSpace(*input.Category)
	}
	if input.Image != nil && strings.TrimSpace(*input.Image) != "" {
		item.Image = strings.TrimSpace(*input.Image)
	}
	item.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, item)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return updated, nil
}

func (s *MenuService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *MenuService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	s.cache.Invalidate(ctx)
	s.logger.Debug().Msg("menu cache invalidated")
}
