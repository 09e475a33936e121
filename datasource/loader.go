package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/shulehub/forum/models"
	"github.com/shulehub/forum/utils"
)

// State tracks the loader lifecycle. There are no transitions after Ready.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
)

// Loader fetches the post collection from the remote feed exactly once, under
// a hard time budget, and substitutes the built-in fallback dataset on any
// failure. Consumers always converge to a usable collection.
type Loader struct {
	client  *http.Client
	baseURL string
	limit   int
	timeout time.Duration

	mu           sync.RWMutex
	state        State
	posts        []models.Post
	fromFallback bool

	once sync.Once
}

// NewLoader builds a Loader for the given feed base URL. An empty baseURL is
// treated as a permanently unreachable feed and resolves to the fallback set.
func NewLoader(baseURL string, limit int, timeout time.Duration) *Loader {
	if timeout <= 0 {
		timeout = 4 * time.Second
	}
	if limit <= 0 {
		limit = 50
	}
	return &Loader{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		limit:   limit,
		timeout: timeout,
	}
}

// Start kicks off the single load in the background. Safe to call more than
// once; only the first call does anything.
func (l *Loader) Start() {
	l.once.Do(func() {
		l.setState(StateLoading)
		go l.load()
	})
}

// LoadBlocking runs the single load synchronously. Used by tests and by
// callers that prefer to finish loading before serving.
func (l *Loader) LoadBlocking() {
	l.once.Do(func() {
		l.setState(StateLoading)
		l.load()
	})
}

// Loading reports whether the fetch is still in flight.
func (l *Loader) Loading() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state != StateReady
}

// Snapshot returns the loaded collection and whether it is ready. The slice
// is shared and must be treated as read-only; posts are immutable per load.
func (l *Loader) Snapshot() ([]models.Post, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.state != StateReady {
		return nil, false
	}
	return l.posts, true
}

// FromFallback reports whether the ready collection is the built-in dataset.
func (l *Loader) FromFallback() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.fromFallback
}

func (l *Loader) load() {
	posts, err := l.fetch()
	if err != nil || len(posts) == 0 {
		if utils.Sugar != nil {
			utils.Sugar.Warnf("posts feed unavailable, serving fallback dataset: %v", err)
		}
		l.ready(FallbackPosts(), true)
		return
	}
	if utils.Sugar != nil {
		utils.Sugar.Infof("loaded %d posts from feed", len(posts))
	}
	l.ready(posts, false)
}

// fetch performs the bounded network read and normalization. Any error means
// the caller falls back; no retry is attempted.
func (l *Loader) fetch() ([]models.Post, error) {
	if l.baseURL == "" {
		return nil, fmt.Errorf("no posts feed configured")
	}

	ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
	defer cancel()

	url := fmt.Sprintf("%s/posts?limit=%d", l.baseURL, l.limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch posts feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("posts feed returned status %d", resp.StatusCode)
	}

	// The payload must be a JSON array; anything else is malformed.
	var raw []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode posts feed: %w", err)
	}

	return normalizePosts(raw, time.Now().UTC()), nil
}

func (l *Loader) setState(s State) {
	l.mu.Lock()
	l.state = s
	l.mu.Unlock()
}

func (l *Loader) ready(posts []models.Post, fromFallback bool) {
	l.mu.Lock()
	l.posts = posts
	l.fromFallback = fromFallback
	l.state = StateReady
	l.mu.Unlock()
}
