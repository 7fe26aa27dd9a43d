package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/youbuidl/feedcore/pkg/internal/models"
	"github.com/youbuidl/feedcore/pkg/internal/provider"
)

// ScopeAll selects the whole community instead of a single category.
const ScopeAll = "all"

// PageWindow is the offset window of a feed page. Windows deliberately
// widen and overlap (page n covers [n*25, (n+1)*50)); adjacent pages can
// repeat posts, which is why the controller de-duplicates by id before
// handing a page out. Do not "fix" the math here without a product call.
func PageWindow(page int) provider.Range {
	return provider.Range{
		Start: page * 25,
		End:   (page + 1) * 50,
	}
}

// FeedController owns the displayed post list of one feed: category
// selection, pagination, and the stale-response rules around both. Every
// dependency is injected; there is no ambient context.
type FeedController struct {
	provider    provider.Provider
	resolver    *CategoryResolver
	rootContext string

	mu         sync.Mutex
	scope      string
	page       int
	generation uint64
	loading    bool
	posts      []models.LabeledPost
}

func NewFeedController(p provider.Provider, resolver *CategoryResolver, rootContext string) *FeedController {
	return &FeedController{
		provider:    p,
		resolver:    resolver,
		rootContext: rootContext,
		scope:       ScopeAll,
	}
}

// SelectCategory switches the feed to a category (or ScopeAll), resets to
// page zero and loads it. A response from a previously selected scope that
// is still in flight will be discarded at apply time.
func (f *FeedController) SelectCategory(ctx context.Context, categoryID string) error {
	f.mu.Lock()
	f.scope = categoryID
	f.page = 0
	f.generation++
	generation := f.generation
	contextID := f.scopeContextLocked()
	f.loading = true
	f.mu.Unlock()

	return f.loadPage(ctx, generation, contextID, 0)
}

// SetPage loads the given page of the current scope.
func (f *FeedController) SetPage(ctx context.Context, page int) error {
	if page < 0 {
		return fmt.Errorf("page must not be negative")
	}

	f.mu.Lock()
	f.page = page
	f.generation++
	generation := f.generation
	contextID := f.scopeContextLocked()
	f.loading = true
	f.mu.Unlock()

	return f.loadPage(ctx, generation, contextID, page)
}

// Refresh reloads the current (scope, page) pair.
func (f *FeedController) Refresh(ctx context.Context) error {
	f.mu.Lock()
	f.generation++
	generation := f.generation
	contextID := f.scopeContextLocked()
	page := f.page
	f.loading = true
	f.mu.Unlock()

	return f.loadPage(ctx, generation, contextID, page)
}

func (f *FeedController) scopeContextLocked() string {
	if f.scope == ScopeAll || len(f.scope) == 0 {
		return f.rootContext
	}
	return f.scope
}

// loadPage fetches one page and applies it wholesale, but only while the
// generation it was issued under is still the current one. A failed fetch
// leaves the previous list untouched.
func (f *FeedController) loadPage(ctx context.Context, generation uint64, contextID string, page int) error {
	items, err := f.provider.RankedPosts(ctx, contextID, PageWindow(page))

	f.mu.Lock()
	defer f.mu.Unlock()

	if generation != f.generation {
		// Another selection won the race; this response is stale.
		log.Debug().Str("context", contextID).Int("page", page).Msg("Dropped a stale feed page.")
		return nil
	}

	f.loading = false
	if err != nil {
		return fmt.Errorf("failed to load feed page: %w", err)
	}

	items = lo.UniqBy(items, func(item models.Post) string {
		return item.ID
	})
	f.posts = lo.Map(items, func(item models.Post, _ int) models.LabeledPost {
		return models.LabeledPost{
			Post:         item,
			CategoryName: f.resolver.Resolve(item.CategoryID),
		}
	})

	return nil
}

// Posts returns the currently displayed page.
func (f *FeedController) Posts() []models.LabeledPost {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.posts
}

func (f *FeedController) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

func (f *FeedController) Scope() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.scope
}

func (f *FeedController) Page() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.page
}
