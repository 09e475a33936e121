package browse

import "github.com/shulehub/forum/models"

// DefaultPageSize is the number of posts per page.
const DefaultPageSize = 6

// PageMeta describes the pagination of a filtered list.
type PageMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// TotalPages is max(1, ceil(total/pageSize)): an empty result still has one
// (empty) page so the pager never disappears.
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// ClampPage forces page into [1, totalPages].
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Paginate slices the ordered list for the requested 1-based page. The page
// is clamped before slicing, so a stale out-of-range page yields the last
// real page rather than a silently empty one.
func Paginate(posts []models.Post, page, pageSize int) ([]models.Post, PageMeta) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	total := len(posts)
	totalPages := TotalPages(total, pageSize)
	page = ClampPage(page, totalPages)

	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return posts[start:end], PageMeta{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
