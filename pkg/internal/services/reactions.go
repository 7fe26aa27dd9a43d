package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/youbuidl/feedcore/pkg/internal/models"
	"github.com/youbuidl/feedcore/pkg/internal/provider"
)

// ReactionState is the lifecycle of one (post, viewer, kind) triple.
type ReactionState int8

const (
	StateUnknown = ReactionState(iota)
	StateChecking
	StateNotReacted
	StateReacted
)

func (s ReactionState) String() string {
	switch s {
	case StateChecking:
		return "checking"
	case StateNotReacted:
		return "not_reacted"
	case StateReacted:
		return "reacted"
	default:
		return "unknown"
	}
}

// ReactionStore tracks one viewer's engagement with one post. Counter
// updates are optimistic: they apply before the network send resolves and
// are not rolled back if it fails. The send result is logged only. That
// favors responsiveness over strict consistency, matching the product's
// current call.
//
// The Reacted precondition is the single-flight guard: once a kind flips
// to StateReacted, further attempts are rejected synchronously instead of
// waiting on the network.
type ReactionStore struct {
	provider provider.Provider
	postID   string
	viewerID string

	mu         sync.Mutex
	states     map[models.ReactionKind]ReactionState
	likeCount  int
	points     int
	replyCount int
}

// NewReactionStore mounts reaction state for a post card. An empty
// viewerID means the viewer is not connected; reactions will be rejected
// with ErrUnauthenticated.
func NewReactionStore(p provider.Provider, post models.Post, viewerID string) *ReactionStore {
	return &ReactionStore{
		provider: p,
		postID:   post.ID,
		viewerID: viewerID,
		states: map[models.ReactionKind]ReactionState{
			models.ReactionLike:   StateUnknown,
			models.ReactionPoints: StateUnknown,
		},
		likeCount:  post.LikeCount,
		points:     post.Points,
		replyCount: post.ReplyCount,
	}
}

// Hydrate asks the backend whether the viewer already reacted. Without a
// viewer identity it does nothing and the store stays at StateUnknown.
func (s *ReactionStore) Hydrate(ctx context.Context) error {
	if len(s.viewerID) == 0 {
		return nil
	}

	s.mu.Lock()
	for kind, state := range s.states {
		if state == StateUnknown {
			s.states[kind] = StateChecking
		}
	}
	s.mu.Unlock()

	for _, kind := range []models.ReactionKind{models.ReactionLike, models.ReactionPoints} {
		reaction, err := s.provider.GetReaction(ctx, s.postID, s.viewerID, kind)

		s.mu.Lock()
		if err != nil {
			// Unpark every kind still waiting so a later Hydrate can
			// retry the whole check.
			for k, state := range s.states {
				if state == StateChecking {
					s.states[k] = StateUnknown
				}
			}
			s.mu.Unlock()
			return fmt.Errorf("failed to check reaction: %w", err)
		}
		if s.states[kind] == StateChecking {
			if reaction != nil {
				s.states[kind] = StateReacted
			} else {
				s.states[kind] = StateNotReacted
			}
		}
		s.mu.Unlock()
	}

	return nil
}

// Like optimistically marks the post liked and bumps the counter, then
// fires the network send in the background. Rejected when the viewer is
// not connected or already liked the post.
func (s *ReactionStore) Like(ctx context.Context) error {
	return s.react(ctx, models.ReactionLike)
}

// GivePoints grants exactly one point. Calling it again while already
// granted is a no-op: no double count, no second network call.
func (s *ReactionStore) GivePoints(ctx context.Context) error {
	if len(s.viewerID) == 0 {
		return ErrUnauthenticated
	}

	s.mu.Lock()
	if s.states[models.ReactionPoints] == StateReacted {
		s.mu.Unlock()
		return nil
	}
	s.states[models.ReactionPoints] = StateReacted
	s.points++
	s.mu.Unlock()

	s.send(ctx, models.ReactionPoints)
	return nil
}

func (s *ReactionStore) react(ctx context.Context, kind models.ReactionKind) error {
	if len(s.viewerID) == 0 {
		return ErrUnauthenticated
	}

	s.mu.Lock()
	if s.states[kind] == StateReacted {
		s.mu.Unlock()
		return ErrAlreadyReacted
	}
	s.states[kind] = StateReacted
	switch kind {
	case models.ReactionLike:
		s.likeCount++
	case models.ReactionPoints:
		s.points++
	}
	s.mu.Unlock()

	s.send(ctx, kind)
	return nil
}

// send is fire-and-forget: the local state already moved, the result is
// only logged. No rollback on failure.
func (s *ReactionStore) send(ctx context.Context, kind models.ReactionKind) {
	postID, viewerID := s.postID, s.viewerID
	ctx = context.WithoutCancel(ctx)
	go func() {
		if err := s.provider.SendReaction(ctx, postID, viewerID, kind); err != nil {
			log.Warn().Err(err).
				Str("post", postID).
				Str("kind", kind.String()).
				Msg("An error occurred when sending reaction...")
		}
	}()
}

// Resolved reports whether every kind's backend check has landed. A store
// whose hydration failed is not resolved and may be hydrated again.
func (s *ReactionStore) Resolved() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, state := range s.states {
		if state == StateUnknown || state == StateChecking {
			return false
		}
	}
	return true
}

// State reports the lifecycle state for a kind.
func (s *ReactionStore) State(kind models.ReactionKind) ReactionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states[kind]
}

func (s *ReactionStore) LikeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.likeCount
}

func (s *ReactionStore) Points() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.points
}

func (s *ReactionStore) ReplyCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replyCount
}
