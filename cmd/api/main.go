package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/iamasit07/connect-four/internal/config"
	"github.com/iamasit07/connect-four/internal/repository/postgres"
	"github.com/iamasit07/connect-four/internal/repository/redis"
	"github.com/iamasit07/connect-four/internal/service/cleanup"
	"github.com/iamasit07/connect-four/internal/service/game"
	"github.com/iamasit07/connect-four/internal/service/matchmaking"
	"github.com/iamasit07/connect-four/internal/service/session"
	transportHttp "github.com/iamasit07/connect-four/internal/transport/http"
	"github.com/iamasit07/connect-four/internal/transport/websocket"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.LoadConfig()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. PostgreSQL is required
	db, err := postgres.InitDB(ctx, cfg.DatabaseURL, postgres.PoolConfig{
		MaxOpenConns:       cfg.DBMaxOpenConns,
		MaxIdleConns:       cfg.DBMaxIdleConns,
		ConnMaxLifetimeMin: cfg.DBConnMaxLifetimeMin,
	})
	if err != nil {
		log.Fatalf("Database unreachable: %v", err)
	}
	defer db.Close()

	log.Println("Running database migrations...")
	if err := postgres.RunMigrations(ctx, db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	gameRepo := postgres.NewGameRepo(db)
	userRepo := postgres.NewUserRepo(db)

	// 2. Redis is optional: snapshots and the logout blocklist need it
	var (
		cache          session.CacheRepository
		snapshots      game.SnapshotStore
		snapshotReader transportHttp.SnapshotReader
	)
	if redisClient := redis.InitRedis(ctx, cfg.RedisURL, cfg.RedisPassword); redisClient != nil {
		defer redisClient.Close()
		cache = redis.NewRedisCache(redisClient)
		store := redis.NewSnapshotStore(redisClient, cfg.SnapshotTTL)
		snapshots = store
		snapshotReader = store
	}

	// 3. Services
	sessionManager := game.NewSessionManager(gameRepo, snapshots, game.DefaultTimings())
	authService := session.NewAuthService(userRepo, cache)
	connManager := websocket.NewConnectionManager()
	matchmakingQueue := matchmaking.NewMatchmakingQueue(cfg.MatchmakingTimeout)

	// 4. Background workers
	cleanupWorker := cleanup.NewWorker(sessionManager, cfg.CleanupInterval)
	cleanupWorker.Start()
	defer cleanupWorker.Stop()

	go matchmaking.MatchMakingListener(ctx, matchmakingQueue, connManager, sessionManager)

	// 5. HTTP + WebSocket
	wsHandler := websocket.NewHandler(connManager, matchmakingQueue, sessionManager, authService, cfg.AllowedOrigins)
	router := transportHttp.NewRouter(transportHttp.RouterDeps{
		Auth:           authService,
		Games:          gameRepo,
		Users:          userRepo,
		Sessions:       sessionManager,
		Snapshots:      snapshotReader,
		WebSocket:      wsHandler.HandleWebSocket,
		AllowedOrigins: cfg.AllowedOrigins,
	})
	serveStatic(router, "./static")

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited gracefully")
}

// serveStatic serves a built frontend from dir with an SPA fallback, if dir exists.
func serveStatic(router *gin.Engine, dir string) {
	if _, err := os.Stat(dir); err != nil {
		return
	}

	router.Static("/assets", dir+"/assets")
	router.GET("/", func(c *gin.Context) {
		c.File(dir + "/index.html")
	})

	router.NoRoute(func(c *gin.Context) {
		path := dir + c.Request.URL.Path
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			c.File(path)
			return
		}

		if strings.HasPrefix(c.Request.URL.Path, "/api/") || strings.HasPrefix(c.Request.URL.Path, "/assets/") {
			c.Status(http.StatusNotFound)
			return
		}

		c.File(dir + "/index.html")
	})
}
