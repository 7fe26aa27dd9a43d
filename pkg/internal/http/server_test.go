package http_test

import (
	"context"
	"encoding/json"
	"io"
	gohttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youbuidl/feedcore/pkg/internal/http"
	"github.com/youbuidl/feedcore/pkg/internal/http/api"
	"github.com/youbuidl/feedcore/pkg/internal/models"
	"github.com/youbuidl/feedcore/pkg/internal/provider"
	"github.com/youbuidl/feedcore/pkg/internal/services"
)

// stubProvider serves the fixed fixture of the end-to-end scenario.
type stubProvider struct{}

func (stubProvider) RankedPosts(ctx context.Context, contextID string, window provider.Range) ([]models.Post, error) {
	if contextID == "catA" {
		return []models.Post{{ID: "p1", CategoryID: "catA", LikeCount: 3}}, nil
	}
	return []models.Post{{ID: "r1", CategoryID: "ctx1"}}, nil
}

func (stubProvider) Categories(ctx context.Context, contextID string) ([]models.Category, error) {
	return []models.Category{{ID: "catA", ContextID: "ctx1", DisplayName: "Builders"}}, nil
}

func (stubProvider) GetReaction(ctx context.Context, postID, actorID string, kind models.ReactionKind) (*models.Reaction, error) {
	return nil, nil
}

func (stubProvider) SendReaction(ctx context.Context, postID, actorID string, kind models.ReactionKind) error {
	return nil
}

func (stubProvider) SearchPosts(ctx context.Context, contextID, term string) ([]models.Post, error) {
	return []models.Post{
		{ID: "s1"}, {ID: "s2"}, {ID: "s3"}, {ID: "s4"}, {ID: "s5"}, {ID: "s6"},
	}, nil
}

func newTestServer(t *testing.T) *http.App {
	t.Helper()

	backend := stubProvider{}
	resolver := services.NewCategoryResolver(backend, "ctx1")
	require.NoError(t, resolver.Load(context.Background()))

	return http.NewServer(&api.Deps{
		Feed:      services.NewFeedController(backend, resolver, "ctx1"),
		Search:    services.NewSearchController(backend, "ctx1", 5*time.Millisecond),
		Resolver:  resolver,
		Reactions: services.NewReactionRegistry(backend),
	})
}

func doJSON(t *testing.T, server *http.App, req *gohttp.Request) (int, map[string]any) {
	t.Helper()

	resp, err := server.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &body))
	}
	return resp.StatusCode, body
}

func TestFeedEndpointLabelsPosts(t *testing.T) {
	server := newTestServer(t)

	status, body := doJSON(t, server, httptest.NewRequest("GET", "/api/feed?category=catA&page=0", nil))
	require.Equal(t, gohttp.StatusOK, status)

	data := body["data"].([]any)
	require.Len(t, data, 1)
	post := data[0].(map[string]any)
	assert.Equal(t, "p1", post["id"])
	assert.Equal(t, "Builders", post["category_name"])
	assert.Equal(t, float64(3), post["like_count"])
}

func TestReactionRoundTrip(t *testing.T) {
	server := newTestServer(t)

	// Mount the feed page first; reactions only exist for displayed posts.
	status, _ := doJSON(t, server, httptest.NewRequest("GET", "/api/feed?category=catA", nil))
	require.Equal(t, gohttp.StatusOK, status)

	// Anonymous likes are refused.
	req := httptest.NewRequest("POST", "/api/posts/p1/reactions", strings.NewReader(`{"kind":"like"}`))
	req.Header.Set("Content-Type", "application/json")
	status, _ = doJSON(t, server, req)
	assert.Equal(t, gohttp.StatusUnauthorized, status)

	// A connected viewer's like applies optimistically.
	req = httptest.NewRequest("POST", "/api/posts/p1/reactions", strings.NewReader(`{"kind":"like"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Viewer-Id", "did:alice")
	status, body := doJSON(t, server, req)
	require.Equal(t, gohttp.StatusOK, status)
	like := body["like"].(map[string]any)
	assert.Equal(t, "reacted", like["state"])
	assert.Equal(t, float64(4), like["count"])

	// A second like conflicts.
	req = httptest.NewRequest("POST", "/api/posts/p1/reactions", strings.NewReader(`{"kind":"like"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Viewer-Id", "did:alice")
	status, _ = doJSON(t, server, req)
	assert.Equal(t, gohttp.StatusConflict, status)

	// Unknown posts 404.
	req = httptest.NewRequest("POST", "/api/posts/nope/reactions", strings.NewReader(`{"kind":"like"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Viewer-Id", "did:alice")
	status, _ = doJSON(t, server, req)
	assert.Equal(t, gohttp.StatusNotFound, status)
}

func TestSearchEndpoints(t *testing.T) {
	server := newTestServer(t)

	// Two characters: cleared, no results ever.
	req := httptest.NewRequest("PUT", "/api/search", strings.NewReader(`{"term":"ab"}`))
	req.Header.Set("Content-Type", "application/json")
	status, _ := doJSON(t, server, req)
	require.Equal(t, gohttp.StatusOK, status)

	time.Sleep(50 * time.Millisecond)
	status, body := doJSON(t, server, httptest.NewRequest("GET", "/api/search", nil))
	require.Equal(t, gohttp.StatusOK, status)
	assert.Nil(t, body["data"])

	// Three characters: debounced fetch, capped at five results.
	req = httptest.NewRequest("PUT", "/api/search", strings.NewReader(`{"term":"abc"}`))
	req.Header.Set("Content-Type", "application/json")
	status, _ = doJSON(t, server, req)
	require.Equal(t, gohttp.StatusOK, status)

	require.Eventually(t, func() bool {
		_, body := doJSON(t, server, httptest.NewRequest("GET", "/api/search", nil))
		data, _ := body["data"].([]any)
		return len(data) == services.SearchResultLimit
	}, time.Second, 5*time.Millisecond)

	// Dismissal clears the session.
	status, _ = doJSON(t, server, httptest.NewRequest("DELETE", "/api/search", nil))
	require.Equal(t, gohttp.StatusNoContent, status)
	_, body = doJSON(t, server, httptest.NewRequest("GET", "/api/search", nil))
	assert.Nil(t, body["data"])
}

func TestCategoriesEndpoint(t *testing.T) {
	server := newTestServer(t)

	status, body := doJSON(t, server, httptest.NewRequest("GET", "/api/categories", nil))
	require.Equal(t, gohttp.StatusOK, status)
	data := body["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "Builders", data[0].(map[string]any)["display_name"])
}
