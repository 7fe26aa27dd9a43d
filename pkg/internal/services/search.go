package services

import (
	"context"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/youbuidl/feedcore/pkg/internal/models"
	"github.com/youbuidl/feedcore/pkg/internal/provider"
)

const (
	// SearchDebounce is how long typing must pause before a query fires.
	SearchDebounce = 300 * time.Millisecond

	// SearchResultLimit caps the dropdown; backends may return more, the
	// surplus is cut here.
	SearchResultLimit = 5

	// searchMinQueryLen: queries this short (or shorter) never reach the
	// network, they just clear the results.
	searchMinQueryLen = 2
)

// SearchController runs the search bar session: debounced free-text
// queries against one context, with generation tagging so a slow early
// response can never overwrite a newer query's results.
//
// Cancellation is soft. Dismissing the session or typing again does not
// abort an in-flight request; its response is simply dropped at apply
// time because its generation is no longer current.
type SearchController struct {
	provider  provider.Provider
	contextID string
	debounce  time.Duration

	mu         sync.Mutex
	query      string
	generation uint64
	timer      *time.Timer
	loading    bool
	results    []models.Post
}

func NewSearchController(p provider.Provider, contextID string, debounce ...time.Duration) *SearchController {
	window := SearchDebounce
	if len(debounce) > 0 && debounce[0] > 0 {
		window = debounce[0]
	}
	return &SearchController{
		provider:  p,
		contextID: contextID,
		debounce:  window,
	}
}

// SetQuery records a keystroke and restarts the debounce timer. Queries of
// two characters or fewer clear the results immediately without touching
// the network.
func (s *SearchController) SetQuery(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.query = text
	s.generation++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}

	if utf8.RuneCountInString(text) <= searchMinQueryLen {
		s.results = nil
		s.loading = false
		return
	}

	generation := s.generation
	s.timer = time.AfterFunc(s.debounce, func() {
		s.run(generation, text)
	})
}

func (s *SearchController) run(generation uint64, term string) {
	s.mu.Lock()
	if generation != s.generation {
		s.mu.Unlock()
		return
	}
	s.loading = true
	s.mu.Unlock()

	results, err := s.provider.SearchPosts(context.Background(), s.contextID, term)

	s.mu.Lock()
	defer s.mu.Unlock()

	if generation != s.generation {
		// A newer query took over while this one was in flight.
		log.Debug().Str("term", term).Msg("Dropped a stale search response.")
		return
	}

	s.loading = false
	if err != nil {
		log.Warn().Err(err).Str("term", term).Msg("An error occurred when searching posts...")
		return
	}

	if len(results) > SearchResultLimit {
		results = results[:SearchResultLimit]
	}
	s.results = results
}

// Select ends the session after the user picks a result.
func (s *SearchController) Select() {
	s.clear()
}

// Dismiss ends the session on focus loss. In-flight requests are not
// aborted, their late results just have nowhere to land.
func (s *SearchController) Dismiss() {
	s.clear()
}

func (s *SearchController) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.query = ""
	s.results = nil
	s.loading = false
	s.generation++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *SearchController) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

func (s *SearchController) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Results returns the current result list, at most SearchResultLimit long.
func (s *SearchController) Results() []models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results
}
