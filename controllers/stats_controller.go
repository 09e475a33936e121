package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shulehub/forum/browse"
	"github.com/shulehub/forum/config"
	"github.com/shulehub/forum/datasource"
	"github.com/shulehub/forum/models"
	"github.com/shulehub/forum/utils"
)

// StatsController provides forum summary counters and daily activity.
type StatsController struct {
	loader *datasource.Loader
	db     *gorm.DB
}

// NewStatsController creates a new StatsController instance. db may be nil
// when page view recording is disabled.
func NewStatsController(loader *datasource.Loader, db *gorm.DB) *StatsController {
	return &StatsController{loader: loader, db: db}
}

// GetStats returns aggregate counters over the full collection. Counters are
// derived from the unfiltered snapshot, never the filtered view.
func (s *StatsController) GetStats(ctx *gin.Context) {
	cfg := config.Get()

	var stats browse.Stats
	posts, ready := s.loader.Snapshot()
	if ready {
		stats = browse.Aggregate(posts, cfg.MemberBaseOffset)
	}

	// Daily active (PV-based): sum of today's page views across all paths.
	// Use string date equality to avoid timezone/type mismatches with the
	// DATE column. Fall back to 0 instead of failing the whole endpoint.
	var dailyActive int64
	if s.db != nil {
		today := time.Now().In(time.Local).Format("2006-01-02")
		if err := s.db.Model(&models.PageView{}).
			Where("date = ?", today).
			Select("COALESCE(SUM(count),0)").
			Scan(&dailyActive).Error; err != nil {
			dailyActive = 0
		}
	}

	utils.Success(ctx, gin.H{
		"post_count":         stats.PostCount,
		"reply_count":        stats.ReplyCount,
		"member_count":       stats.MemberCount,
		"daily_active_count": dailyActive,
		"loading":            !ready,
	})
}
