// Package provider defines the behavioral contract of the content backend
// the feed core runs against. The hosted implementation lives in
// provider/orbital, the self-hosted one in provider/local.
package provider

import (
	"context"
	"errors"

	"github.com/youbuidl/feedcore/pkg/internal/models"
)

// ErrNotFound is returned by lookups whose subject does not exist. An empty
// list is not an error and is returned as such.
var ErrNotFound = errors.New("not found")

// Range is a half-open offset window [Start, End) into a ranked result set.
type Range struct {
	Start int
	End   int
}

func (r Range) Len() int {
	if r.End <= r.Start {
		return 0
	}
	return r.End - r.Start
}

// Provider is the opaque content backend. Ranking is server-side and
// implementation-defined; callers only get to pick a context and a window.
type Provider interface {
	// RankedPosts returns the slice of the context's ranked feed covered by
	// the given offset window.
	RankedPosts(ctx context.Context, contextID string, window Range) ([]models.Post, error)

	// Categories lists the browsable categories under a context, ordered by
	// creation time descending.
	Categories(ctx context.Context, contextID string) ([]models.Category, error)

	// GetReaction looks up an existing reaction of the given kind left by
	// the actor on the post. Returns (nil, nil) when there is none.
	GetReaction(ctx context.Context, postID, actorID string, kind models.ReactionKind) (*models.Reaction, error)

	// SendReaction records a reaction. Backends treat repeats of the same
	// (post, actor, kind) as a no-op.
	SendReaction(ctx context.Context, postID, actorID string, kind models.ReactionKind) error

	// SearchPosts runs a free-text search within a context. The backend may
	// return more results than any caller wants to show; truncation is the
	// caller's business.
	SearchPosts(ctx context.Context, contextID, term string) ([]models.Post, error)
}
