package api

import (
	"log/slog"
	"net/http"
	"time"

	"group-chat/auth"
	"group-chat/contract"
	"group-chat/observability"
	"group-chat/repositories"

	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	Handler  *Handler
	Verifier *auth.TokenVerifier
	Users    repositories.IUserRepository
	Limiter  *UserRateLimiter
	Metrics  *observability.Metrics
	Health   func() error
	Clock    contract.Clock
	Log      *slog.Logger
}

// NewRouter wires every route under /api behind bearer authentication,
// except the health probe. /metrics is served unauthenticated for scrapers.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(deps.Log))

	router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	public := router.Group("/api")
	public.GET("/health", func(c *gin.Context) {
		if deps.Health != nil {
			if err := deps.Health(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	h := deps.Handler
	secured := router.Group("/api", auth.Middleware(deps.Verifier, deps.Users, deps.Clock, deps.Log))

	groups := secured.Group("/groups")
	groups.POST("", h.CreateGroup)
	groups.GET("", h.ListMyGroups)
	groups.GET("/:groupId", h.GetGroup)
	groups.PATCH("/:groupId", h.UpdateGroup)
	groups.PUT("/:groupId/admin-only", h.ToggleAdminOnly)
	groups.DELETE("/:groupId/leave", h.LeaveGroup)
	groups.POST("/:groupId/members", h.AddMember)
	groups.DELETE("/:groupId/members/:userId", h.RemoveMember)
	groups.PUT("/:groupId/members/:userId/role", h.UpdateRole)
	groups.PUT("/:groupId/members/:userId/mute", h.MuteMember)
	groups.PUT("/:groupId/members/:userId/unmute", h.UnmuteMember)
	groups.POST("/:groupId/messages", deps.Limiter.Handler(), h.SendMessage)
	groups.GET("/:groupId/messages", h.ListMessages)
	groups.GET("/:groupId/messages/search", h.SearchMessages)
	groups.GET("/:groupId/unread-count", h.UnreadCount)

	messages := secured.Group("/messages")
	messages.POST("/:messageId/read", h.MarkRead)
	messages.DELETE("/:messageId", h.DeleteMessage)

	return router
}

func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("HTTP request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"user", auth.UserID(c),
		)
	}
}
