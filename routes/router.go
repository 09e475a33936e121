package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shulehub/forum/browse"
	"github.com/shulehub/forum/config"
	"github.com/shulehub/forum/controllers"
	"github.com/shulehub/forum/datasource"
	"github.com/shulehub/forum/middleware"
	"github.com/shulehub/forum/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(loader *datasource.Loader, db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		// fallback to default recovery if logger failed to init
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	// Record PV after each request (disabled when db is nil)
	r.Use(middleware.PageViewRecorder(db))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	forumCtrl := controllers.NewForumController(loader)
	statsCtrl := controllers.NewStatsController(loader, db)
	sessionCtrl := controllers.NewSessionController(
		browse.NewRegistry(time.Duration(cfg.SessionTTLMinutes)*time.Minute),
		loader,
		browse.SessionConfig{
			PageSize:         cfg.PageSize,
			Debounce:         time.Duration(cfg.DebounceMS) * time.Millisecond,
			MemberBaseOffset: cfg.MemberBaseOffset,
		},
	)

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimitMiddleware())
	api.Use(middleware.SessionStatus())
	{
		api.GET("/session", sessionCtrl.AuthStatus)

		forum := api.Group("/forum")
		{
			forum.GET("/posts", forumCtrl.ListPosts)
			forum.GET("/categories", forumCtrl.ListCategories)
			forum.GET("/stats", statsCtrl.GetStats)

			forum.POST("/sessions", sessionCtrl.CreateSession)
			forum.GET("/sessions/:id", sessionCtrl.GetSession)
			forum.POST("/sessions/:id/query", sessionCtrl.ApplyQuery)
		}
	}

	return r
}
