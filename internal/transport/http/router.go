package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iamasit07/connect-four/internal/service/game"
	"github.com/iamasit07/connect-four/internal/transport/http/middleware"
)

type RouterDeps struct {
	Auth           Authenticator
	Games          GameReader
	Users          LeaderboardReader
	Sessions       *game.SessionManager
	Snapshots      SnapshotReader
	WebSocket      http.HandlerFunc
	AllowedOrigins []string
}

func NewRouter(d RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "activeGames": len(d.Sessions.GetActiveGames())})
	})
	if d.WebSocket != nil {
		router.GET("/ws", gin.WrapF(d.WebSocket))
	}

	authHandler := NewAuthHandler(d.Auth)
	historyHandler := NewHistoryHandler(d.Games)
	leaderboardHandler := NewLeaderboardHandler(d.Users)
	watchHandler := NewWatchHandler(d.Sessions, d.Snapshots)
	requireAuth := middleware.AuthMiddleware(d.Auth)

	api := router.Group("/api", middleware.CORSMiddleware(d.AllowedOrigins))
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/guest", authHandler.Guest)
		api.POST("/auth/logout", requireAuth, authHandler.Logout)
		api.GET("/auth/me", requireAuth, authHandler.Me)

		api.GET("/leaderboard", leaderboardHandler.Leaderboard)
		api.GET("/history", requireAuth, historyHandler.GetHistory)
		api.GET("/history/:id", requireAuth, historyHandler.GetGameDetails)

		api.GET("/watch", watchHandler.GetLiveGames)
		api.GET("/watch/:id", watchHandler.GetGameSnapshot)
		api.GET("/layout", GetLayout)
		api.OPTIONS("/*path", func(c *gin.Context) {}) // answered by CORSMiddleware
	}

	return router
}
