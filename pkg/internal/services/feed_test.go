package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youbuidl/feedcore/pkg/internal/models"
	"github.com/youbuidl/feedcore/pkg/internal/services"
)

func TestPageWindowWidens(t *testing.T) {
	first := services.PageWindow(0)
	assert.Equal(t, 0, first.Start)
	assert.Equal(t, 50, first.End)

	second := services.PageWindow(1)
	assert.Equal(t, 25, second.Start)
	assert.Equal(t, 100, second.End)

	// Adjacent windows overlap on purpose; duplicates are dropped at the
	// output boundary instead of in the math.
	assert.Less(t, second.Start, first.End)
}

func TestFeedLoadsSelectedCategory(t *testing.T) {
	p := newFakeProvider()
	p.posts["ctx1"] = []models.Post{{ID: "r1", CategoryID: "ctx1"}}
	p.posts["catA"] = []models.Post{{ID: "p1", CategoryID: "catA", LikeCount: 3}}
	p.categories["ctx1"] = []models.Category{{ID: "catA", ContextID: "ctx1", DisplayName: "Builders"}}

	resolver := services.NewCategoryResolver(p, "ctx1")
	require.NoError(t, resolver.Load(context.Background()))

	feed := services.NewFeedController(p, resolver, "ctx1")
	require.NoError(t, feed.SelectCategory(context.Background(), "catA"))

	posts := feed.Posts()
	require.Len(t, posts, 1)
	assert.Equal(t, "p1", posts[0].ID)
	assert.Equal(t, 3, posts[0].LikeCount)
	assert.Equal(t, "Builders", posts[0].CategoryName)
	assert.False(t, feed.Loading())
	assert.Equal(t, 0, feed.Page())
}

func TestFeedScopeAllUsesRootContext(t *testing.T) {
	p := newFakeProvider()
	p.posts["ctx1"] = []models.Post{{ID: "r1", CategoryID: "ctx1"}}

	resolver := services.NewCategoryResolver(p, "ctx1")
	feed := services.NewFeedController(p, resolver, "ctx1")
	require.NoError(t, feed.SelectCategory(context.Background(), services.ScopeAll))

	posts := feed.Posts()
	require.Len(t, posts, 1)
	assert.Equal(t, "r1", posts[0].ID)
	// Posts filed under the root context itself carry the fallback label.
	assert.Equal(t, models.FallbackCategoryName, posts[0].CategoryName)
}

func TestFeedDropsStaleResponse(t *testing.T) {
	p := newFakeProvider()
	p.posts["ctx1"] = []models.Post{{ID: "old", CategoryID: "ctx1"}}
	p.posts["catA"] = []models.Post{{ID: "p1", CategoryID: "catA"}}

	release := make(chan struct{})
	p.rankedHook = func(contextID string) {
		if contextID == "ctx1" {
			<-release
		}
	}

	resolver := services.NewCategoryResolver(p, "ctx1")
	feed := services.NewFeedController(p, resolver, "ctx1")

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		// Stalls inside the provider until released below.
		_ = feed.SetPage(context.Background(), 1)
	}()

	require.Eventually(t, func() bool {
		return p.rankedCallCount() == 1
	}, time.Second, time.Millisecond)

	// The user switches category while page 1 is still in flight.
	require.NoError(t, feed.SelectCategory(context.Background(), "catA"))

	close(release)
	wg.Wait()

	// Only the response matching the final (scope, page) pair applied.
	posts := feed.Posts()
	require.Len(t, posts, 1)
	assert.Equal(t, "p1", posts[0].ID)
	assert.Equal(t, "catA", feed.Scope())
	assert.Equal(t, 0, feed.Page())
	assert.False(t, feed.Loading())
}

func TestFeedKeepsPreviousPageOnFailure(t *testing.T) {
	p := newFakeProvider()
	p.posts["ctx1"] = []models.Post{{ID: "r1", CategoryID: "ctx1"}}

	resolver := services.NewCategoryResolver(p, "ctx1")
	feed := services.NewFeedController(p, resolver, "ctx1")
	require.NoError(t, feed.Refresh(context.Background()))
	require.Len(t, feed.Posts(), 1)

	p.mu.Lock()
	p.rankedErr = assert.AnError
	p.mu.Unlock()

	err := feed.SetPage(context.Background(), 1)
	require.Error(t, err)

	// Stale data stays visible, the spinner stops.
	assert.Len(t, feed.Posts(), 1)
	assert.False(t, feed.Loading())
}

func TestFeedDeduplicatesOverlappingWindows(t *testing.T) {
	p := newFakeProvider()
	p.posts["ctx1"] = []models.Post{
		{ID: "p1", CategoryID: "ctx1"},
		{ID: "p2", CategoryID: "ctx1"},
		{ID: "p1", CategoryID: "ctx1"},
	}

	resolver := services.NewCategoryResolver(p, "ctx1")
	feed := services.NewFeedController(p, resolver, "ctx1")
	require.NoError(t, feed.Refresh(context.Background()))

	posts := feed.Posts()
	require.Len(t, posts, 2)
	assert.Equal(t, "p1", posts[0].ID)
	assert.Equal(t, "p2", posts[1].ID)
}

func TestFeedRejectsNegativePage(t *testing.T) {
	p := newFakeProvider()
	resolver := services.NewCategoryResolver(p, "ctx1")
	feed := services.NewFeedController(p, resolver, "ctx1")

	require.Error(t, feed.SetPage(context.Background(), -1))
	assert.Equal(t, 0, p.rankedCallCount())
}
