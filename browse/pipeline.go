// Package browse implements the post browsing core: a pure filter/sort
// pipeline, pagination, aggregate stats, and the query session that drives
// them. Pipeline functions are []Post in, []Post out, with no side effects.
package browse

import (
	"sort"
	"strings"

	"github.com/shulehub/forum/models"
)

// SortMode selects the secondary ordering of the post list. Pinned posts
// always come first regardless of mode.
type SortMode string

const (
	SortLatest      SortMode = "latest"
	SortPopular     SortMode = "popular"
	SortMostReplies SortMode = "most-replies"
)

// NormalizeSortMode coerces unknown values to the latest ordering.
func NormalizeSortMode(s string) SortMode {
	switch SortMode(s) {
	case SortLatest, SortPopular, SortMostReplies:
		return SortMode(s)
	default:
		return SortLatest
	}
}

// CategoryAll disables category filtering.
const CategoryAll = "all"

// QueryState is the ephemeral selection driving the pipeline. SearchText is
// the raw input as typed; DebouncedSearchText is the committed value the
// filter actually uses.
type QueryState struct {
	SearchText          string   `json:"search_text"`
	DebouncedSearchText string   `json:"debounced_search_text"`
	Category            string   `json:"category"`
	SortMode            SortMode `json:"sort_mode"`
	Page                int      `json:"page"`
}

// DefaultQueryState is the selection a fresh view starts from.
func DefaultQueryState() QueryState {
	return QueryState{
		Category: CategoryAll,
		SortMode: SortLatest,
		Page:     1,
	}
}

// Pipeline maps the full collection and a query state to the ordered,
// filtered list. Pure: it never mutates its input and is re-derivable from
// its arguments alone.
func Pipeline(posts []models.Post, state QueryState) []models.Post {
	out := ByCategory(posts, state.Category)
	out = BySearch(out, state.DebouncedSearchText)
	return Sort(out, state.SortMode)
}

// ByCategory keeps posts with an exact category match; CategoryAll (or an
// empty selection) keeps everything.
func ByCategory(posts []models.Post, category string) []models.Post {
	if category == "" || category == CategoryAll {
		return append([]models.Post(nil), posts...)
	}
	result := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if string(p.Category) == category {
			result = append(result, p)
		}
	}
	return result
}

// BySearch keeps posts whose title, excerpt, or any tag contains the needle,
// case-insensitively. A blank needle keeps everything.
func BySearch(posts []models.Post, needle string) []models.Post {
	needle = strings.ToLower(strings.TrimSpace(needle))
	if needle == "" {
		return posts
	}
	result := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if matchesSearch(p, needle) {
			result = append(result, p)
		}
	}
	return result
}

func matchesSearch(p models.Post, needle string) bool {
	if strings.Contains(strings.ToLower(p.Title), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Excerpt), needle) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// Sort orders posts pinned-first, then by the mode's key descending. The sort
// is stable: posts equal under the composite key keep their input order.
func Sort(posts []models.Post, mode SortMode) []models.Post {
	result := append([]models.Post(nil), posts...)
	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.Pinned != b.Pinned {
			return a.Pinned
		}
		switch mode {
		case SortPopular:
			return a.Stats.Likes > b.Stats.Likes
		case SortMostReplies:
			return a.Stats.Replies > b.Stats.Replies
		default:
			return a.LastActivity.After(b.LastActivity)
		}
	})
	return result
}
