package datasource

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shulehub/forum/models"
	"github.com/shulehub/forum/utils"
)

// normalizePosts is the defensive boundary between the loosely typed remote
// payload and the strict Post shape. Every field is coerced individually so a
// single malformed record never poisons the whole collection.
func normalizePosts(raw []map[string]any, now time.Time) []models.Post {
	posts := make([]models.Post, 0, len(raw))
	for i, rec := range raw {
		if rec == nil {
			continue
		}
		posts = append(posts, normalizePost(rec, i, now))
	}
	return posts
}

func normalizePost(rec map[string]any, index int, now time.Time) models.Post {
	id := asString(rec["id"])
	if id == "" {
		id = fmt.Sprintf("post-%d", index)
	}

	title := utils.SanitizePlain(asString(rec["title"]))
	if title == "" {
		title = "Untitled discussion"
	}
	content := utils.Sanitize(asString(rec["content"]))

	excerpt := utils.SanitizePlain(asString(rec["excerpt"]))
	if excerpt == "" {
		excerpt = models.MakeExcerpt(utils.SanitizePlain(content))
	}

	created := asTime(firstPresent(rec, "timestamp", "created_at", "createdAt"), now)
	lastActivity := asTime(firstPresent(rec, "last_activity", "lastActivity", "updated_at"), created)
	if lastActivity.Before(created) {
		lastActivity = created
	}

	return models.Post{
		ID:           id,
		Title:        title,
		Content:      content,
		Excerpt:      excerpt,
		Category:     models.NormalizeCategory(asString(rec["category"])),
		Tags:         asTags(rec["tags"]),
		Author:       normalizeAuthor(rec["author"], index),
		Stats:        normalizeStats(rec["stats"], rec),
		Timestamp:    created,
		LastActivity: lastActivity,
		Solved:       asBool(rec["solved"]),
		Pinned:       asBool(rec["pinned"]),
	}
}

func normalizeAuthor(v any, index int) models.Author {
	m, ok := v.(map[string]any)
	if !ok {
		// Some feeds carry a flat author name instead of an object.
		name := utils.SanitizePlain(asString(v))
		if name == "" {
			name = "Community Member"
		}
		return models.Author{
			ID:   fmt.Sprintf("author-%d", index),
			Name: name,
			Role: models.RoleStudent,
		}
	}

	id := asString(m["id"])
	if id == "" {
		id = fmt.Sprintf("author-%d", index)
	}
	name := utils.SanitizePlain(asString(m["name"]))
	if name == "" {
		name = "Community Member"
	}
	return models.Author{
		ID:        id,
		Name:      name,
		Role:      models.NormalizeRole(asString(m["role"])),
		AvatarURL: asString(firstPresent(m, "avatar_url", "avatar")),
	}
}

func normalizeStats(v any, rec map[string]any) models.PostStats {
	m, ok := v.(map[string]any)
	if !ok {
		// Fall back to flat counters on the record itself.
		m = rec
	}
	return models.PostStats{
		Views:   clampNonNegative(asInt(m["views"])),
		Replies: clampNonNegative(asInt(m["replies"])),
		Likes:   clampNonNegative(asInt(m["likes"])),
	}
}

func firstPresent(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

func asInt(v any) int {
	switch t := v.(type) {
	case float64:
		return int(t)
	case int:
		return t
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return n
		}
	}
	return 0
}

func asBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return strings.EqualFold(t, "true") || t == "1"
	case float64:
		return t != 0
	}
	return false
}

func asTime(v any, fallback time.Time) time.Time {
	switch t := v.(type) {
	case string:
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	case float64:
		if t > 0 {
			sec := int64(t)
			if sec > 1e12 { // milliseconds
				return time.UnixMilli(sec).UTC()
			}
			return time.Unix(sec, 0).UTC()
		}
	}
	return fallback
}

func asTags(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return []string{}
	}
	tags := make([]string, 0, len(arr))
	for _, it := range arr {
		if s := utils.SanitizePlain(asString(it)); s != "" {
			tags = append(tags, s)
		}
	}
	return utils.UniqueStrings(tags)
}

func clampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
