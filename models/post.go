package models

import "time"

// Category is the fixed set of discussion buckets a post can live in.
type Category string

const (
	CategoryGeneral       Category = "general"
	CategoryAcademicHelp  Category = "academic-help"
	CategoryStudyTips     Category = "study-tips"
	CategoryParentsCorner Category = "parents-corner"
	CategoryAnnouncements Category = "announcements"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryGeneral,
	CategoryAcademicHelp,
	CategoryStudyTips,
	CategoryParentsCorner,
	CategoryAnnouncements,
}

// NormalizeCategory coerces unknown values into the general bucket so that
// posts are never dropped on account of a bad category.
func NormalizeCategory(s string) Category {
	for _, c := range Categories {
		if string(c) == s {
			return c
		}
	}
	return CategoryGeneral
}

// Role identifies what kind of member authored a post.
type Role string

const (
	RoleStudent    Role = "student"
	RoleParent     Role = "parent"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
	RolePartner    Role = "partner"
	RoleStaff      Role = "staff"
)

var validRoles = map[Role]bool{
	RoleStudent:    true,
	RoleParent:     true,
	RoleInstructor: true,
	RoleAdmin:      true,
	RolePartner:    true,
	RoleStaff:      true,
}

// NormalizeRole falls back to student for missing or unknown roles.
func NormalizeRole(s string) Role {
	if validRoles[Role(s)] {
		return Role(s)
	}
	return RoleStudent
}

// Author is the embedded post author value.
type Author struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Role      Role   `json:"role"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// PostStats holds the non-negative engagement counters of a post.
type PostStats struct {
	Views   int `json:"views"`
	Replies int `json:"replies"`
	Likes   int `json:"likes"`
}

// Post is a single discussion post as seen by the browsing surface.
// Posts are materialized once per load (from the remote feed or the built-in
// fallback set) and never mutated afterwards.
type Post struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Excerpt      string    `json:"excerpt"`
	Category     Category  `json:"category"`
	Tags         []string  `json:"tags"`
	Author       Author    `json:"author"`
	Stats        PostStats `json:"stats"`
	Timestamp    time.Time `json:"timestamp"`
	LastActivity time.Time `json:"last_activity"`
	Solved       bool      `json:"solved"`
	Pinned       bool      `json:"pinned"`
}

const excerptMaxLen = 160

// MakeExcerpt derives the short display text from full content.
func MakeExcerpt(content string) string {
	runes := []rune(content)
	if len(runes) <= excerptMaxLen {
		return content
	}
	return string(runes[:excerptMaxLen])
}
