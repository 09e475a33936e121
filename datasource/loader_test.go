package datasource

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"
)

func TestLoaderFetchesAndNormalizes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/posts" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("limit") != "25" {
			t.Errorf("unexpected limit %q", r.URL.Query().Get("limit"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": 7, "title": "Remote post", "content": "hello", "category": "study-tips",
			 "tags": ["cbc"], "author": {"id": "u-9", "name": "Jane", "role": "instructor"},
			 "stats": {"views": 3, "replies": 1, "likes": 2},
			 "timestamp": "2024-03-01T10:00:00Z", "last_activity": "2024-03-02T10:00:00Z"}
		]`))
	}))
	defer srv.Close()

	l := NewLoader(srv.URL, 25, time.Second)
	l.LoadBlocking()

	posts, ready := l.Snapshot()
	if !ready {
		t.Fatal("loader not ready after blocking load")
	}
	if l.FromFallback() {
		t.Fatal("fell back despite healthy feed")
	}
	if len(posts) != 1 {
		t.Fatalf("got %d posts", len(posts))
	}
	p := posts[0]
	if p.ID != "7" {
		t.Errorf("numeric id not coerced: %q", p.ID)
	}
	if p.Title != "Remote post" || string(p.Category) != "study-tips" {
		t.Errorf("post = %+v", p)
	}
	if p.Author.Name != "Jane" || string(p.Author.Role) != "instructor" {
		t.Errorf("author = %+v", p.Author)
	}
}

func TestLoaderTimeoutFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	l := NewLoader(srv.URL, 10, 50*time.Millisecond)
	start := time.Now()
	l.LoadBlocking()
	if elapsed := time.Since(start); elapsed > 400*time.Millisecond {
		t.Fatalf("load not bounded by timeout: took %s", elapsed)
	}

	assertFallback(t, l)
}

func TestLoaderFallsBackOnBadPayloads(t *testing.T) {
	cases := []struct {
		name string
		h    http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"not found", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}},
		{"not an array", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"items": []}`))
		}},
		{"invalid json", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{{{`))
		}},
		{"empty array", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[]`))
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.h)
			defer srv.Close()

			l := NewLoader(srv.URL, 10, time.Second)
			l.LoadBlocking()
			assertFallback(t, l)
		})
	}
}

func TestLoaderNoBaseURLFallsBack(t *testing.T) {
	l := NewLoader("", 10, time.Second)
	l.LoadBlocking()
	assertFallback(t, l)
}

// Repeated failures must render an identical collection, byte for byte.
func TestFallbackDeterministicAcrossFailures(t *testing.T) {
	load := func() []byte {
		l := NewLoader("", 10, time.Second)
		l.LoadBlocking()
		posts, _ := l.Snapshot()
		b, err := json.Marshal(posts)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		return b
	}
	first := load()
	second := load()
	if string(first) != string(second) {
		t.Fatal("fallback dataset differs between failures")
	}
}

func TestLoaderLoadsExactlyOnce(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`[{"id": "a", "title": "t", "content": "c"}]`))
	}))
	defer srv.Close()

	l := NewLoader(srv.URL, 10, time.Second)
	l.LoadBlocking()
	l.LoadBlocking()
	l.Start()

	if hits != 1 {
		t.Fatalf("feed fetched %d times, want 1", hits)
	}
}

func assertFallback(t *testing.T, l *Loader) {
	t.Helper()
	posts, ready := l.Snapshot()
	if !ready {
		t.Fatal("loader did not converge")
	}
	if !l.FromFallback() {
		t.Fatal("loader did not mark fallback")
	}
	if !reflect.DeepEqual(posts, FallbackPosts()) {
		t.Fatal("collection is not the fixed fallback dataset")
	}
}
