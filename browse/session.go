package browse

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shulehub/forum/models"
)

// DefaultDebounce is the quiet period before typed search text commits.
const DefaultDebounce = 300 * time.Millisecond

// Source supplies the full post collection and whether it is ready yet.
// In production this is the datasource Loader's Snapshot.
type Source func() ([]models.Post, bool)

// View is the read-only derived state handed to the rendering layer,
// recomputed on every relevant query change.
type View struct {
	VisiblePosts []models.Post `json:"items"`
	Pagination   PageMeta      `json:"pagination"`
	Stats        Stats         `json:"stats"`
	Query        QueryState    `json:"query"`
	Loading      bool          `json:"loading"`
}

// SessionConfig tunes a Session. Zero values fall back to defaults.
type SessionConfig struct {
	PageSize         int
	Debounce         time.Duration
	MemberBaseOffset int
}

// Session owns the query state for one browsing client. Typed search input
// commits after a debounce quiet period; selecting a tag commits immediately.
// All other state changes apply synchronously.
type Session struct {
	ID string

	mu     sync.Mutex
	state  QueryState
	source Source

	pageSize     int
	debounce     time.Duration
	memberOffset int

	// pendingCommit is a single cancelable deferred task: scheduling a new
	// one cancels the previous, and the generation counter rejects a late
	// fire that lost the race with its cancellation.
	pendingCommit *time.Timer
	commitGen     uint64

	lastUsed time.Time
}

// NewSession creates a session over the given source.
func NewSession(source Source, cfg SessionConfig) *Session {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.MemberBaseOffset == 0 {
		cfg.MemberBaseOffset = DefaultMemberBaseOffset
	}
	return &Session{
		ID:           uuid.NewString(),
		state:        DefaultQueryState(),
		source:       source,
		pageSize:     cfg.PageSize,
		debounce:     cfg.Debounce,
		memberOffset: cfg.MemberBaseOffset,
		lastUsed:     time.Now(),
	}
}

// SetSearchText records the raw input immediately and schedules the debounced
// commit. Every call cancels any pending commit, so at most one commit fires
// per pause in typing, carrying the final text.
func (s *Session) SetSearchText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchLocked()

	s.state.SearchText = text
	if s.pendingCommit != nil {
		s.pendingCommit.Stop()
	}
	s.commitGen++
	gen := s.commitGen
	s.pendingCommit = time.AfterFunc(s.debounce, func() {
		s.commitSearch(gen, text)
	})
}

func (s *Session) commitSearch(gen uint64, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.commitGen {
		// A newer keystroke or tag selection superseded this commit.
		return
	}
	s.pendingCommit = nil
	if s.state.DebouncedSearchText != text {
		s.state.DebouncedSearchText = text
		s.state.Page = 1
	}
}

// SelectTag applies a tag as the search filter immediately, bypassing the
// debounce, and invalidates any commit still pending.
func (s *Session) SelectTag(tag string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchLocked()

	if s.pendingCommit != nil {
		s.pendingCommit.Stop()
		s.pendingCommit = nil
	}
	s.commitGen++
	s.state.SearchText = tag
	s.state.DebouncedSearchText = tag
	s.state.Page = 1
}

// SetCategory selects a category ("all" disables the filter) and resets the
// page.
func (s *Session) SetCategory(category string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchLocked()

	switch category {
	case "", CategoryAll:
		category = CategoryAll
	default:
		category = string(models.NormalizeCategory(category))
	}
	if s.state.Category != category {
		s.state.Category = category
		s.state.Page = 1
	}
}

// SetSortMode selects the ordering and resets the page.
func (s *Session) SetSortMode(mode string) {
	normalized := NormalizeSortMode(mode)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchLocked()

	if s.state.SortMode != normalized {
		s.state.SortMode = normalized
		s.state.Page = 1
	}
}

// SetPage moves to an explicitly requested page, clamped to the current
// filtered range.
func (s *Session) SetPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchLocked()

	posts, ready := s.source()
	if !ready {
		s.state.Page = 1
		return
	}
	filtered := Pipeline(posts, s.state)
	s.state.Page = ClampPage(page, TotalPages(len(filtered), s.pageSize))
}

// Query returns a copy of the current query state.
func (s *Session) Query() QueryState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// View computes the derived view for the rendering layer. A stale page left
// behind by a narrowing filter is clamped back into range here, before
// slicing.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchLocked()

	posts, ready := s.source()
	if !ready {
		return View{
			VisiblePosts: []models.Post{},
			Pagination:   PageMeta{Page: 1, PageSize: s.pageSize, TotalPages: 1},
			Query:        s.state,
			Loading:      true,
		}
	}

	filtered := Pipeline(posts, s.state)
	visible, meta := Paginate(filtered, s.state.Page, s.pageSize)
	s.state.Page = meta.Page

	return View{
		VisiblePosts: visible,
		Pagination:   meta,
		Stats:        Aggregate(posts, s.memberOffset),
		Query:        s.state,
		Loading:      false,
	}
}

// LastUsed reports the last time the session was touched, for TTL eviction.
func (s *Session) LastUsed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}

func (s *Session) touchLocked() {
	s.lastUsed = time.Now()
}
