// Package orbital talks to a hosted content backend over its REST API.
package orbital

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/youbuidl/feedcore/pkg/internal/models"
	"github.com/youbuidl/feedcore/pkg/internal/provider"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach content backend: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return provider.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("content backend replied %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse content backend JSON: %v", err)
	}
	return nil
}

func (c *Client) RankedPosts(ctx context.Context, contextID string, window provider.Range) ([]models.Post, error) {
	query := url.Values{}
	query.Set("start", fmt.Sprintf("%d", window.Start))
	query.Set("end", fmt.Sprintf("%d", window.End))

	var response struct {
		Data []models.Post `json:"data"`
	}
	path := fmt.Sprintf("/contexts/%s/posts", url.PathEscape(contextID))
	if err := c.get(ctx, path, query, &response); err != nil {
		return nil, err
	}
	return response.Data, nil
}

func (c *Client) Categories(ctx context.Context, contextID string) ([]models.Category, error) {
	var response struct {
		Data []models.Category `json:"data"`
	}
	path := fmt.Sprintf("/contexts/%s/categories", url.PathEscape(contextID))
	if err := c.get(ctx, path, nil, &response); err != nil {
		return nil, err
	}
	return response.Data, nil
}

func (c *Client) GetReaction(ctx context.Context, postID, actorID string, kind models.ReactionKind) (*models.Reaction, error) {
	query := url.Values{}
	query.Set("kind", kind.String())

	var reaction models.Reaction
	path := fmt.Sprintf("/posts/%s/reactions/%s", url.PathEscape(postID), url.PathEscape(actorID))
	if err := c.get(ctx, path, query, &reaction); err != nil {
		if errors.Is(err, provider.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reaction, nil
}

func (c *Client) SendReaction(ctx context.Context, postID, actorID string, kind models.ReactionKind) error {
	payload, err := json.Marshal(map[string]string{
		"actor_id": actorID,
		"kind":     kind.String(),
	})
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/posts/%s/reactions", c.baseURL, url.PathEscape(postID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach content backend: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("content backend replied %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) SearchPosts(ctx context.Context, contextID, term string) ([]models.Post, error) {
	query := url.Values{}
	query.Set("term", term)

	var response struct {
		Data []models.Post `json:"data"`
	}
	path := fmt.Sprintf("/contexts/%s/search", url.PathEscape(contextID))
	if err := c.get(ctx, path, query, &response); err != nil {
		return nil, err
	}
	return response.Data, nil
}
