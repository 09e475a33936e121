package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shulehub/forum/browse"
	"github.com/shulehub/forum/config"
	"github.com/shulehub/forum/datasource"
	"github.com/shulehub/forum/models"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type listPayload struct {
	Items      []models.Post   `json:"items"`
	Pagination browse.PageMeta `json:"pagination"`
	Stats      browse.Stats    `json:"stats"`
	Loading    bool            `json:"loading"`
}

func fallbackLoader() *datasource.Loader {
	l := datasource.NewLoader("", 10, time.Second)
	l.LoadBlocking()
	return l
}

func testEngine(loader *datasource.Loader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	fc := NewForumController(loader)
	r.GET("/api/v1/forum/posts", fc.ListPosts)
	r.GET("/api/v1/forum/categories", fc.ListCategories)
	sc := NewStatsController(loader, nil)
	r.GET("/api/v1/forum/stats", sc.GetStats)
	return r
}

func doList(t *testing.T, r *gin.Engine, query string) listPayload {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/forum/posts"+query, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	var payload listPayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	return payload
}

func TestListPostsDefaults(t *testing.T) {
	config.SetForTesting(config.AppConfig{PageSize: 6, MemberBaseOffset: 142})
	r := testEngine(fallbackLoader())

	got := doList(t, r, "")
	if got.Loading {
		t.Fatal("loading with ready loader")
	}
	if len(got.Items) != 6 || got.Pagination.TotalPages != 2 || got.Pagination.Total != 10 {
		t.Fatalf("pagination = %+v len=%d", got.Pagination, len(got.Items))
	}
	if !got.Items[0].Pinned || !got.Items[1].Pinned {
		t.Fatal("pinned posts not first")
	}
	if got.Stats.PostCount != 10 {
		t.Fatalf("stats = %+v", got.Stats)
	}
}

func TestListPostsCategoryAndSearch(t *testing.T) {
	config.SetForTesting(config.AppConfig{PageSize: 6, MemberBaseOffset: 142})
	r := testEngine(fallbackLoader())

	got := doList(t, r, "?category=announcements&search=maintenance")
	if len(got.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(got.Items))
	}
	if got.Items[0].Category != models.CategoryAnnouncements {
		t.Fatalf("category = %s", got.Items[0].Category)
	}
}

func TestListPostsEmptyResultIsNotAnError(t *testing.T) {
	config.SetForTesting(config.AppConfig{PageSize: 6, MemberBaseOffset: 142})
	r := testEngine(fallbackLoader())

	got := doList(t, r, "?search=zzz-no-such-post")
	if len(got.Items) != 0 {
		t.Fatalf("items = %d, want 0", len(got.Items))
	}
	if got.Pagination.TotalPages != 1 || got.Pagination.Page != 1 {
		t.Fatalf("empty result pagination = %+v", got.Pagination)
	}
	// Full-collection stats survive an empty filtered view.
	if got.Stats.PostCount != 10 {
		t.Fatalf("stats = %+v", got.Stats)
	}
}

func TestListPostsClampsStalePage(t *testing.T) {
	config.SetForTesting(config.AppConfig{PageSize: 6, MemberBaseOffset: 142})
	r := testEngine(fallbackLoader())

	got := doList(t, r, "?page=99")
	if got.Pagination.Page != got.Pagination.TotalPages {
		t.Fatalf("page %d not clamped to %d", got.Pagination.Page, got.Pagination.TotalPages)
	}
	if len(got.Items) == 0 {
		t.Fatal("clamped page rendered empty")
	}
}

func TestListPostsCoercesUnknownParams(t *testing.T) {
	config.SetForTesting(config.AppConfig{PageSize: 6, MemberBaseOffset: 142})
	r := testEngine(fallbackLoader())

	got := doList(t, r, "?category=bogus&sort=bogus&page=-4")
	if got.Pagination.Page != 1 {
		t.Fatalf("bad page gave %d", got.Pagination.Page)
	}
	for _, p := range got.Items {
		if p.Category != models.CategoryGeneral {
			t.Fatalf("bogus category resolved to %s", p.Category)
		}
	}
}

func TestListPostsWhileLoading(t *testing.T) {
	config.SetForTesting(config.AppConfig{PageSize: 6, MemberBaseOffset: 142})
	// Never started: the loader stays un-converged for this test.
	loader := datasource.NewLoader("", 10, time.Second)
	r := testEngine(loader)

	got := doList(t, r, "?search=anything")
	if !got.Loading {
		t.Fatal("loading flag not set")
	}
	if len(got.Items) != 0 || got.Stats.PostCount != 0 {
		t.Fatalf("loading payload = %+v", got)
	}
}

func TestGetStats(t *testing.T) {
	config.SetForTesting(config.AppConfig{PageSize: 6, MemberBaseOffset: 142})
	r := testEngine(fallbackLoader())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/forum/stats", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	var stats struct {
		PostCount        int   `json:"post_count"`
		ReplyCount       int   `json:"reply_count"`
		MemberCount      int   `json:"member_count"`
		DailyActiveCount int64 `json:"daily_active_count"`
		Loading          bool  `json:"loading"`
	}
	if err := json.Unmarshal(env.Data, &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.Loading {
		t.Fatal("stats marked loading")
	}
	if stats.PostCount != 10 || stats.MemberCount != 8+142 {
		t.Fatalf("stats = %+v", stats)
	}
	if stats.DailyActiveCount != 0 {
		t.Fatalf("daily active without db = %d, want 0", stats.DailyActiveCount)
	}
}

func TestListCategories(t *testing.T) {
	config.SetForTesting(config.AppConfig{PageSize: 6})
	r := testEngine(fallbackLoader())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/forum/categories", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	var data struct {
		Categories []string `json:"categories"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode categories: %v", err)
	}
	if len(data.Categories) != 5 {
		t.Fatalf("categories = %v", data.Categories)
	}
}
