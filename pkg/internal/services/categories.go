package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/marshaler"
	"github.com/eko/gocache/lib/v4/store"

	localCache "github.com/youbuidl/feedcore/pkg/internal/cache"
	"github.com/youbuidl/feedcore/pkg/internal/models"
	"github.com/youbuidl/feedcore/pkg/internal/provider"
)

// CategoryResolver maps category ids to display names for one feed
// context. Loading is idempotent; the shared cache keeps repeated mounts
// from hammering the backend, but correctness never depends on a hit.
type CategoryResolver struct {
	provider    provider.Provider
	rootContext string

	mu         sync.RWMutex
	names      map[string]string
	categories []models.Category
}

func NewCategoryResolver(p provider.Provider, rootContext string) *CategoryResolver {
	return &CategoryResolver{
		provider:    p,
		rootContext: rootContext,
		names:       make(map[string]string),
	}
}

func categoriesCacheKey(contextID string) string {
	return fmt.Sprintf("categories#%s", contextID)
}

// Load fetches all categories under the resolver's context and fills the
// lookup table. Safe to call once per mounted post card.
func (r *CategoryResolver) Load(ctx context.Context) error {
	var categories []models.Category

	if localCache.S == nil {
		var err error
		if categories, err = r.provider.Categories(ctx, r.rootContext); err != nil {
			return fmt.Errorf("failed to load categories: %w", err)
		}
	} else {
		marshal := marshaler.New(cache.New[any](localCache.S))
		cacheKey := categoriesCacheKey(r.rootContext)

		if cached, err := marshal.Get(ctx, cacheKey, new([]models.Category)); err == nil {
			categories = *cached.(*[]models.Category)
		} else {
			categories, err = r.provider.Categories(ctx, r.rootContext)
			if err != nil {
				return fmt.Errorf("failed to load categories: %w", err)
			}
			_ = marshal.Set(ctx, cacheKey, categories, store.WithExpiration(5*time.Minute))
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.categories = categories
	for _, category := range categories {
		r.names[category.ID] = category.DisplayName
	}

	return nil
}

// Resolve returns the display name of a category. The root context is not
// itself a browsable category, so it resolves to the fallback label, as
// does anything unknown.
func (r *CategoryResolver) Resolve(categoryID string) string {
	if categoryID == r.rootContext {
		return models.FallbackCategoryName
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if name, ok := r.names[categoryID]; ok && len(name) > 0 {
		return name
	}
	return models.FallbackCategoryName
}

// Categories returns the loaded category list, newest first.
func (r *CategoryResolver) Categories() []models.Category {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.categories
}
