package services

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/youbuidl/feedcore/pkg/internal/models"
	"github.com/youbuidl/feedcore/pkg/internal/provider"
)

// ReactionRegistry hands out one ReactionStore per mounted (post, viewer)
// pair. Stores are created on first mount and discarded on unmount;
// nothing about them outlives the session.
type ReactionRegistry struct {
	provider provider.Provider

	mu     sync.Mutex
	stores map[string]*ReactionStore
}

func NewReactionRegistry(p provider.Provider) *ReactionRegistry {
	return &ReactionRegistry{
		provider: p,
		stores:   make(map[string]*ReactionStore),
	}
}

func storeKey(postID, viewerID string) string {
	return postID + "\x00" + viewerID
}

// Mount returns the store for a (post, viewer) pair, creating it on first
// use. Hydration runs until it resolves: a transient check failure is not
// fatal, the store falls back to StateUnknown and the next mount retries.
func (r *ReactionRegistry) Mount(ctx context.Context, post models.Post, viewerID string) *ReactionStore {
	key := storeKey(post.ID, viewerID)

	r.mu.Lock()
	store, ok := r.stores[key]
	if !ok {
		store = NewReactionStore(r.provider, post, viewerID)
		r.stores[key] = store
	}
	r.mu.Unlock()

	if len(viewerID) > 0 && !store.Resolved() {
		if err := store.Hydrate(ctx); err != nil {
			log.Warn().Err(err).
				Str("post", post.ID).
				Msg("An error occurred when hydrating reaction state...")
		}
	}
	return store
}

// Lookup returns an already-mounted store, or nil.
func (r *ReactionRegistry) Lookup(postID, viewerID string) *ReactionStore {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stores[storeKey(postID, viewerID)]
}

// Unmount drops the store for a pair, if any.
func (r *ReactionRegistry) Unmount(postID, viewerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.stores, storeKey(postID, viewerID))
}
