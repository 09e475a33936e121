package browse

import (
	"testing"
	"time"

	"github.com/shulehub/forum/models"
)

const testDebounce = 40 * time.Millisecond

func testSource(posts []models.Post) Source {
	return func() ([]models.Post, bool) { return posts, true }
}

func sessionPosts() []models.Post {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	posts := make([]models.Post, 0, 10)
	for i := 0; i < 10; i++ {
		p := mkPost(string(rune('a'+i)), models.CategoryGeneral, false, i, i, base.Add(time.Duration(i)*time.Hour))
		if i%2 == 0 {
			p.Category = models.CategoryStudyTips
			p.Tags = []string{"revision"}
		}
		posts = append(posts, p)
	}
	return posts
}

func newTestSession(posts []models.Post) *Session {
	return NewSession(testSource(posts), SessionConfig{
		PageSize:         3,
		Debounce:         testDebounce,
		MemberBaseOffset: 1,
	})
}

func TestSearchDebounceCommitsOnce(t *testing.T) {
	s := newTestSession(sessionPosts())

	// Rapid retype within the quiet period: only the final text commits.
	s.SetSearchText("grade 8")
	time.Sleep(testDebounce / 4)
	s.SetSearchText("grade")

	q := s.Query()
	if q.SearchText != "grade" {
		t.Fatalf("raw text = %q, want immediate update", q.SearchText)
	}
	if q.DebouncedSearchText != "" {
		t.Fatalf("committed too early: %q", q.DebouncedSearchText)
	}

	time.Sleep(4 * testDebounce)
	q = s.Query()
	if q.DebouncedSearchText != "grade" {
		t.Fatalf("committed %q, want final text %q", q.DebouncedSearchText, "grade")
	}
}

func TestSearchCommitResetsPage(t *testing.T) {
	s := newTestSession(sessionPosts())
	s.SetPage(2)
	if s.Query().Page != 2 {
		t.Fatal("setup: page not moved")
	}

	s.SetSearchText("revision")
	time.Sleep(4 * testDebounce)
	if got := s.Query().Page; got != 1 {
		t.Fatalf("page = %d after search commit, want 1", got)
	}
}

func TestSelectTagBypassesDebounce(t *testing.T) {
	s := newTestSession(sessionPosts())
	s.SelectTag("revision")

	// Immediate: no debounce wait.
	q := s.Query()
	if q.SearchText != "revision" || q.DebouncedSearchText != "revision" {
		t.Fatalf("tag select not immediate: %+v", q)
	}
	if q.Page != 1 {
		t.Fatalf("tag select page = %d, want 1", q.Page)
	}
}

func TestTagSupersedesPendingCommit(t *testing.T) {
	s := newTestSession(sessionPosts())

	// A pending typed commit must never overwrite a newer tag selection.
	s.SetSearchText("stale")
	s.SelectTag("revision")
	time.Sleep(4 * testDebounce)

	if got := s.Query().DebouncedSearchText; got != "revision" {
		t.Fatalf("late commit overwrote tag: %q", got)
	}
}

func TestCategoryAndSortResetPage(t *testing.T) {
	s := newTestSession(sessionPosts())

	s.SetPage(2)
	s.SetCategory("study-tips")
	if got := s.Query().Page; got != 1 {
		t.Fatalf("category change left page at %d", got)
	}

	s.SetPage(2)
	s.SetSortMode("popular")
	if got := s.Query().Page; got != 1 {
		t.Fatalf("sort change left page at %d", got)
	}
}

func TestSetPageClamps(t *testing.T) {
	s := newTestSession(sessionPosts()) // 10 posts, page size 3 -> 4 pages

	s.SetPage(99)
	if got := s.Query().Page; got != 4 {
		t.Fatalf("page clamped to %d, want 4", got)
	}
	s.SetPage(-3)
	if got := s.Query().Page; got != 1 {
		t.Fatalf("negative page clamped to %d, want 1", got)
	}
}

func TestViewClampsStalePage(t *testing.T) {
	s := newTestSession(sessionPosts())
	s.SetPage(4)

	// Narrowing the filter shrinks the result set; the stale page must be
	// clamped before slicing, not rendered as an empty page.
	s.SelectTag("revision") // resets page anyway, so move again
	s.mu.Lock()
	s.state.Page = 4
	s.mu.Unlock()

	v := s.View()
	if v.Pagination.Page > v.Pagination.TotalPages {
		t.Fatalf("view page %d beyond total %d", v.Pagination.Page, v.Pagination.TotalPages)
	}
	if len(v.VisiblePosts) == 0 {
		t.Fatal("clamped page rendered empty")
	}
}

func TestViewWhileLoading(t *testing.T) {
	notReady := func() ([]models.Post, bool) { return nil, false }
	s := NewSession(notReady, SessionConfig{PageSize: 3, Debounce: testDebounce})

	v := s.View()
	if !v.Loading {
		t.Fatal("view not marked loading")
	}
	if len(v.VisiblePosts) != 0 || v.Pagination.TotalPages != 1 {
		t.Fatalf("loading view = %+v", v)
	}
}

func TestViewDerivation(t *testing.T) {
	s := newTestSession(sessionPosts())
	s.SetCategory("study-tips") // 5 posts, page size 3 -> 2 pages

	v := s.View()
	if v.Loading {
		t.Fatal("view marked loading with ready source")
	}
	if v.Pagination.Total != 5 || v.Pagination.TotalPages != 2 || len(v.VisiblePosts) != 3 {
		t.Fatalf("view pagination = %+v len=%d", v.Pagination, len(v.VisiblePosts))
	}
	// Stats always cover the full collection, not the filtered view.
	if v.Stats.PostCount != 10 {
		t.Fatalf("stats over filtered view: %+v", v.Stats)
	}
}

func TestRegistryLifecycle(t *testing.T) {
	r := NewRegistry(30 * time.Minute)
	s := r.Create(testSource(sessionPosts()), SessionConfig{})

	got, ok := r.Get(s.ID)
	if !ok || got.ID != s.ID {
		t.Fatal("session not retrievable")
	}
	if _, ok := r.Get("missing"); ok {
		t.Fatal("unknown id resolved")
	}
}

func TestRegistryEvictsIdleSessions(t *testing.T) {
	r := NewRegistry(10 * time.Millisecond)
	s := r.Create(testSource(sessionPosts()), SessionConfig{})

	time.Sleep(30 * time.Millisecond)
	if _, ok := r.Get(s.ID); ok {
		t.Fatal("idle session survived TTL")
	}
}
