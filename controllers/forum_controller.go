package controllers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shulehub/forum/browse"
	"github.com/shulehub/forum/config"
	"github.com/shulehub/forum/datasource"
	"github.com/shulehub/forum/models"
	"github.com/shulehub/forum/utils"
)

// ForumController serves the derived browsing view over the loaded post
// collection. All reads; the collection is immutable per load.
type ForumController struct {
	loader *datasource.Loader
}

// NewForumController creates a new ForumController instance.
func NewForumController(loader *datasource.Loader) *ForumController {
	return &ForumController{loader: loader}
}

// ListPosts returns the filtered, sorted, paginated post view.
func (f *ForumController) ListPosts(ctx *gin.Context) {
	cfg := config.Get()

	search := strings.TrimSpace(ctx.Query("search"))
	category := parseCategory(ctx.Query("category"))
	sortMode := browse.NormalizeSortMode(ctx.Query("sort"))
	page := parsePage(ctx.Query("page"))

	posts, ready := f.loader.Snapshot()
	if !ready {
		utils.Success(ctx, loadingPayload(cfg.PageSize))
		return
	}

	// Cache searchless views only, to avoid cache key explosion. The
	// snapshot never changes within a process lifetime, so no invalidation
	// is needed beyond the TTL.
	var cacheKey string
	if search == "" {
		cacheKey = fmt.Sprintf("cache:forum:list:cat=%s:sort=%s:page=%d", category, sortMode, page)
		if b, ok := utils.CacheGetBytes(cacheKey); ok {
			ctx.Data(200, "application/json", b)
			return
		}
	}

	state := browse.QueryState{
		DebouncedSearchText: search,
		Category:            category,
		SortMode:            sortMode,
		Page:                page,
	}
	filtered := browse.Pipeline(posts, state)
	visible, meta := browse.Paginate(filtered, page, cfg.PageSize)

	payload := gin.H{
		"items":      visible,
		"pagination": meta,
		"stats":      browse.Aggregate(posts, cfg.MemberBaseOffset),
		"loading":    false,
	}
	if cacheKey != "" {
		wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: payload}
		utils.CacheSetJSON(cacheKey, wrapper, time.Hour)
	}
	utils.Success(ctx, payload)
}

// ListCategories returns the fixed category set for the filter bar.
func (f *ForumController) ListCategories(ctx *gin.Context) {
	utils.Success(ctx, gin.H{"categories": models.Categories})
}

func loadingPayload(pageSize int) gin.H {
	return gin.H{
		"items": []models.Post{},
		"pagination": browse.PageMeta{
			Page:       1,
			PageSize:   pageSize,
			TotalPages: 1,
		},
		"stats":   browse.Stats{},
		"loading": true,
	}
}

func parseCategory(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || s == browse.CategoryAll {
		return browse.CategoryAll
	}
	return string(models.NormalizeCategory(s))
}

func parsePage(s string) int {
	if p, err := strconv.Atoi(s); err == nil && p > 0 {
		return p
	}
	return 1
}
