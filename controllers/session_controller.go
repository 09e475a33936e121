package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shulehub/forum/browse"
	"github.com/shulehub/forum/datasource"
	"github.com/shulehub/forum/middleware"
	"github.com/shulehub/forum/utils"
)

// SessionController exposes stateful browse sessions so a thin rendering
// client can drive typed search (with its debounce), tag shortcuts, category
// and sort selection, and paging across requests.
type SessionController struct {
	registry *browse.Registry
	loader   *datasource.Loader
	cfg      browse.SessionConfig
}

// NewSessionController creates a new SessionController instance.
func NewSessionController(registry *browse.Registry, loader *datasource.Loader, cfg browse.SessionConfig) *SessionController {
	return &SessionController{registry: registry, loader: loader, cfg: cfg}
}

// CreateSession opens a browse session and returns its id plus the initial view.
func (sc *SessionController) CreateSession(ctx *gin.Context) {
	s := sc.registry.Create(sc.loader.Snapshot, sc.cfg)
	utils.Success(ctx, gin.H{
		"session_id": s.ID,
		"view":       s.View(),
	})
}

// GetSession returns the current derived view of a session.
func (sc *SessionController) GetSession(ctx *gin.Context) {
	s, ok := sc.registry.Get(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusNotFound, 40410, "session not found or expired")
		return
	}
	utils.Success(ctx, gin.H{"view": s.View()})
}

// ApplyQuery applies one query operation to a session and returns the
// resulting view. Search text goes through the debounce; tags bypass it.
func (sc *SessionController) ApplyQuery(ctx *gin.Context) {
	s, ok := sc.registry.Get(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusNotFound, 40410, "session not found or expired")
		return
	}

	var req struct {
		Op    string `json:"op" binding:"required"`
		Value string `json:"value"`
		Page  int    `json:"page"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40040, "invalid request payload")
		return
	}

	switch strings.ToLower(req.Op) {
	case "search":
		s.SetSearchText(req.Value)
	case "tag":
		s.SelectTag(req.Value)
	case "category":
		s.SetCategory(req.Value)
	case "sort":
		s.SetSortMode(req.Value)
	case "page":
		s.SetPage(req.Page)
	default:
		utils.Error(ctx, http.StatusBadRequest, 40041, "unknown query op")
		return
	}

	utils.Success(ctx, gin.H{"view": s.View()})
}

// AuthStatus reports whether the request carries a valid platform session.
// The surrounding page uses this to pick the call-to-action; the browsing
// pipeline itself never consults it.
func (sc *SessionController) AuthStatus(ctx *gin.Context) {
	utils.Success(ctx, gin.H{"authenticated": middleware.IsAuthenticated(ctx)})
}
