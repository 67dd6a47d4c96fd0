package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tasklane/tasklane/internal/auth"
	"github.com/tasklane/tasklane/internal/config"
	"github.com/tasklane/tasklane/internal/database"
	"github.com/tasklane/tasklane/internal/handlers"
	"github.com/tasklane/tasklane/internal/logger"
	"github.com/tasklane/tasklane/internal/middleware"
	"github.com/tasklane/tasklane/internal/redis"
	"github.com/tasklane/tasklane/internal/service"
	"github.com/tasklane/tasklane/internal/storage"
)

func main() {
	log := logger.New("task-service")
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: %v", err)
	}

	if cfg.Auth.JWTSecret == config.DefaultJWTSecret {
		log.Warn("JWT_SECRET not set, using default (insecure for production)")
	}

	dbManager, err := database.NewDBManager(ctx, database.Config{
		DSN:             cfg.Database.DSN,
		ReplicaDSNs:     cfg.Database.ReplicaDSNs,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
	})
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer dbManager.Close()

	if err := dbManager.EnsureSchema(ctx); err != nil {
		log.Fatal("Failed to ensure schema: %v", err)
	}

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	userStore := storage.NewPostgresUserStore(dbManager)
	taskStore := storage.NewPostgresTaskStore(dbManager)
	userService := service.NewUserService(userStore, jwtManager, cfg.Auth.BcryptCost)
	taskService := service.NewTaskService(taskStore)

	authHandler := handlers.NewAuthHandler(userService)
	taskHandler := handlers.NewTaskHandler(taskService)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager)

	// The rate limiter only guards the credential endpoints; the service runs
	// without it when redis is unreachable.
	limit := func(h http.HandlerFunc) http.HandlerFunc { return h }
	redisCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	redisClient, err := redis.NewClient(redisCtx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	cancel()
	if err != nil {
		log.Warn("Redis unavailable, auth rate limiting disabled: %v", err)
	} else {
		defer redisClient.Close()
		rateLimiter := middleware.NewRateLimiter(redisClient.Raw(), cfg.RateLimit.Requests, cfg.RateLimit.Window)
		limit = rateLimiter.Middleware
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", handlers.Health)
	mux.HandleFunc("POST /api/auth/register", limit(authHandler.Register))
	mux.HandleFunc("POST /api/auth/login", limit(authHandler.Login))
	mux.HandleFunc("GET /api/tasks", authMiddleware.RequireAuth(taskHandler.List))
	mux.HandleFunc("POST /api/tasks", authMiddleware.RequireAuth(taskHandler.Create))
	mux.HandleFunc("GET /api/tasks/{id}", authMiddleware.RequireAuth(taskHandler.Get))
	mux.HandleFunc("PUT /api/tasks/{id}", authMiddleware.RequireAuth(taskHandler.Update))
	mux.HandleFunc("DELETE /api/tasks/{id}", authMiddleware.RequireAuth(taskHandler.Delete))

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: middleware.CORS(mux),
	}

	go func() {
		log.Info("Task service listening on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down task service...")
	shutdownCtx, cancelShutdown := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Forced shutdown: %v", err)
	}
	log.Info("Task service stopped")
}
