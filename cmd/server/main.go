package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/wilding96/baby-tracker/internal/auth"
	"github.com/wilding96/baby-tracker/internal/cache"
	"github.com/wilding96/baby-tracker/internal/config"
	"github.com/wilding96/baby-tracker/internal/database"
	"github.com/wilding96/baby-tracker/internal/handlers"
	"github.com/wilding96/baby-tracker/internal/middleware"
	"github.com/wilding96/baby-tracker/internal/repository"
)

var Version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Env)
	defer logger.Sync()

	ctx := context.Background()

	db, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	store := newCacheStore(cfg, logger)

	users := repository.NewUserRepository(db)
	babies := repository.NewBabyRepository(db)
	logs := repository.NewLogRepository(db)
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		if err := db.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": Version,
		})
	})

	api := r.Group("/api")
	{
		api.POST("/auth/register", handlers.Register(users, jwtService))
		api.POST("/auth/login", handlers.Login(users, jwtService))

		authed := api.Group("")
		authed.Use(middleware.RequireAuth(jwtService))
		{
			authed.POST("/babies", handlers.CreateBaby(babies, logger))
			authed.POST("/babies/join", handlers.JoinBaby(babies, logger))
			authed.POST("/logs", handlers.CreateLog(logs, babies, store, logger))
			authed.PATCH("/logs/:id", handlers.UpdateLogStartTime(logs, babies, store, logger))
			authed.DELETE("/logs/:id", handlers.DeleteLog(logs, babies, store, logger))

			// Routes below need a resolved baby profile
			withBaby := authed.Group("")
			withBaby.Use(middleware.RequireBaby(babies))
			{
				withBaby.GET("/baby", handlers.GetCurrentBaby())
				withBaby.PUT("/babies/:id", handlers.UpdateBaby(babies, logger))
				withBaby.GET("/dashboard", handlers.GetDashboard(logs, store, logger))
				withBaby.GET("/logs", handlers.ListLogs(logs, logger))
				withBaby.GET("/stats", handlers.GetDailyStats(logs, logger))
				withBaby.GET("/export", handlers.ExportLogs(logs, logger))
			}
		}
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: r,
	}

	// Start server in goroutine
	go func() {
		logger.Info("server starting", zap.String("port", cfg.Port), zap.String("version", Version))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}

func newLogger(env string) *zap.Logger {
	var logger *zap.Logger
	var err error
	if env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}

// newCacheStore picks the shared Redis cache when configured, otherwise
// the in-process one
func newCacheStore(cfg *config.Config, logger *zap.Logger) cache.Store {
	if cfg.RedisAddr == "" {
		return cache.Memory(cfg.DashboardCacheTTL)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unavailable, falling back to in-process cache", zap.Error(err))
		return cache.Memory(cfg.DashboardCacheTTL)
	}

	return cache.Redis(client, cfg.DashboardCacheTTL, logger)
}
