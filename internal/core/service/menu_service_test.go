package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/rs/zerolog"

	"github.com/res-landing/restaurant-system/internal/core/domain"
	"github.com/res-landing/restaurant-system/internal/core/ports"
)

type stubMenuRepo struct {
	items  map[string]*domain.MenuItem
	nextID int
}

func newStubMenuRepo() *stubMenuRepo {
	return &stubMenuRepo{items: make(map[string]*domain.MenuItem)}
}

func cloneItem(i *domain.MenuItem) *domain.MenuItem {
	clone := *i
	return &clone
}

func (r *stubMenuRepo) List(_ context.Context) ([]*domain.MenuItem, error) {
	out := make([]*domain.MenuItem, 0, len(r.items))
	for _, i := range r.items {
		out = append(out, cloneItem(i))
	}
	return out, nil
}

func (r *stubMenuRepo) FindByID(_ context.Context, id string) (*domain.MenuItem, error) {
	if i, ok := r.items[id]; ok {
		return cloneItem(i), nil
	}
	return nil, domain.ErrMenuItemNotFound
}

func (r *stubMenuRepo) Create(_ context.Context, item *domain.MenuItem) (*domain.MenuItem, error) {
	for _, existing := range r.items {
		if existing.Name == item.Name {
			return nil, domain.ErrMenuItemExists
		}
	}
	r.nextID++
	copy := cloneItem(item)
	copy.ID = strconv.Itoa(r.nextID)
	r.items[copy.ID] = cloneItem(copy)
	return copy, nil
}

func (r *stubMenuRepo) Update(_ context.Context, item *domain.MenuItem) (*domain.MenuItem, error) {
	if _, ok := r.items[item.ID]; !ok {
		return nil, domain.ErrMenuItemNotFound
	}
	r.items[item.ID] = cloneItem(item)
	return cloneItem(item), nil
}

func (r *stubMenuRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrMenuItemNotFound
	}
	delete(r.items, id)
	return nil
}

// fakeCache records cache traffic so tests can assert invalidation.
type fakeCache struct {
	stored      []*domain.MenuItem
	invalidated int
}

func (c *fakeCache) GetList(_ context.Context) ([]*domain.MenuItem, bool) {
	if c.stored == nil {
		return nil, false
	}
	return c.stored, true
}

func (c *fakeCache) SetList(_ context.Context, items []*domain.MenuItem) {
	c.stored = items
}

func (c *fakeCache) Invalidate(_ context.Context) {
	c.stored = nil
	c.invalidated++
}

func newTestMenuService() (*MenuService, *stubMenuRepo, *fakeCache) {
	repo := newStubMenuRepo()
	cache := &fakeCache{}
	return NewMenuService(repo, cache, zerolog.Nop()), repo, cache
}

func TestMenuService_Create_AppliesDefaults(t *testing.T) {
	svc, _, _ := newTestMenuService()

	item, err := svc.Create(context.Background(), ports.CreateMenuItemInput{
		Name:        "Margherita Pizza",
		Description: "Tomato, mozzarella, basil",
		Price:       12.99,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if item.Category != domain.DefaultCategory {
		t.Fatalf("expected default category, got %q", item.Category)
	}
	if item.Image != domain.DefaultImageURL {
		t.Fatalf("expected default image, got %q", item.Image)
	}
	if item.ID == "" {
		t.Fatalf("expected assigned id")
	}
}

func TestMenuService_Create_Validation(t *testing.T) {
	svc, _, _ := newTestMenuService()

	if _, err := svc.Create(context.Background(), ports.CreateMenuItemInput{Name: "", Description: "x", Price: 1}); !errors.Is(err, domain.ErrInvalidMenuItem) {
		t.Fatalf("expected ErrInvalidMenuItem for missing name, got %v", err)
	}
	if _, err := svc.Create(context.Background(), ports.CreateMenuItemInput{Name: "Soup", Description: "warm", Price: -1}); !errors.Is(err, domain.ErrInvalidMenuItem) {
		t.Fatalf("expected ErrInvalidMenuItem for negative price, got %v", err)
	}
}

func TestMenuService_Create_Duplicate(t *testing.T) {
	svc, _, _ := newTestMenuService()

	input := ports.CreateMenuItemInput{Name: "Tiramisu", Description: "Dessert", Price: 6.5}
	if _, err := svc.Create(context.Background(), input); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), input); err != domain.ErrMenuItemExists {
		t.Fatalf("expected ErrMenuItemExists, got %v", err)
	}
}

func TestMenuService_Update_Partial(t *testing.T) {
	svc, _, _ := newTestMenuService()

	created, err := svc.Create(context.Background(), ports.CreateMenuItemInput{
		Name:        "Carbonara",
		Description: "Classic roman pasta",
		Price:       14.49,
		Category:    "Pasta",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	newPrice := 15.99
	updated, err := svc.Update(context.Background(), created.ID, ports.UpdateMenuItemInput{Price: &newPrice})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Price != 15.99 {
		t.Fatalf("price not updated: %v", updated.Price)
	}
	if updated.Name != "Carbonara" || updated.Category != "Pasta" {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
}

func TestMenuService_Update_NotFound(t *testing.T) {
	svc, _, _ := newTestMenuService()

	name := "Ghost"
	if _, err := svc.Update(context.Background(), "missing", ports.UpdateMenuItemInput{Name: &name}); err != domain.ErrMenuItemNotFound {
		t.Fatalf("expected ErrMenuItemNotFound, got %v", err)
	}
}

func TestMenuService_List_UsesCache(t *testing.T) {
	svc, repo, cache := newTestMenuService()

	if _, err := svc.Create(context.Background(), ports.CreateMenuItemInput{Name: "Soup", Description: "warm", Price: 4}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// First list populates the cache from the repo.
	first, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(first) != 1 || cache.stored == nil {
		t.Fatalf("expected cache populated after first list")
	}

	// Mutate the repo behind the service's back; the cached copy must win.
	repo.items = map[string]*domain.MenuItem{}
	second, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(second) != 1 {
		t.Fatalf("expected cached listing, got %d items", len(second))
	}
}

func TestMenuService_Mutations_InvalidateCache(t *testing.T) {
	svc, _, cache := newTestMenuService()

	created, err := svc.Create(context.Background(), ports.CreateMenuItemInput{Name: "Soup", Description: "warm", Price: 4})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if cache.invalidated != 1 {
		t.Fatalf("create should invalidate cache, count=%d", cache.invalidated)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if cache.invalidated != 2 {
		t.Fatalf("delete should invalidate cache, count=%d", cache.invalidated)
	}
}

func TestMenuService_Delete_NotFound(t *testing.T) {
	svc, _, _ := newTestMenuService()

	if err := svc.Delete(context.Background(), "missing"); err != domain.ErrMenuItemNotFound {
		t.Fatalf("expected ErrMenuItemNotFound, got %v", err)
	}
}
