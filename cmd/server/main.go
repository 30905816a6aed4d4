package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/s-brown01/Doin-sub000/internal/config"
	"github.com/s-brown01/Doin-sub000/internal/database"
	"github.com/s-brown01/Doin-sub000/internal/handlers"
	"github.com/s-brown01/Doin-sub000/internal/logging"
	"github.com/s-brown01/Doin-sub000/internal/middleware"
	"github.com/s-brown01/Doin-sub000/internal/services"
)

func main() {
	if err := run(); err != nil {
		logging.Error("Application error", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
}

func run() error {
	logger := logging.New()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if cfg.Server.Debug {
		logger.SetLevel(logging.LevelDebug)
		logging.SetDefaultLevel(logging.LevelDebug)
	}

	logger.Info("Starting Doin server...")

	logger.Info("Connecting to PostgreSQL", map[string]interface{}{
		"host": cfg.Database.Host,
		"port": cfg.Database.Port,
	})
	db, err := database.NewPostgresDB(cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to postgres: %w", err)
	}
	defer db.Close()

	logger.Info("Running database migrations...")
	migrator, err := database.NewMigrator(cfg.Database.DSN(), "migrations")
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	if err := migrator.Up(); err != nil {
		_ = migrator.Close()
		return fmt.Errorf("running migrations: %w", err)
	}
	_ = migrator.Close()

	logger.Info("Connecting to Redis", map[string]interface{}{
		"addr": cfg.Redis.Addr(),
	})
	redisDB, err := database.NewRedisDB(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return fmt.Errorf("connecting to redis: %w", err)
	}
	defer func() { _ = redisDB.Close() }()

	dbAdapter := services.NewPoolAdapter(db.Pool)

	userService := services.NewUserService(dbAdapter)
	authService := services.NewAuthService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	friendService := services.NewFriendService(dbAdapter)
	eventService := services.NewEventService(dbAdapter, friendService)
	eventImageService := services.NewEventImageService(dbAdapter)
	imageService := services.NewImageService(dbAdapter)

	healthHandler := handlers.NewHealthHandler(db, redisDB)
	authHandler := handlers.NewAuthHandler(userService, imageService, authService)
	friendHandler := handlers.NewFriendHandler(friendService, userService)
	eventHandler := handlers.NewEventHandler(eventService, eventImageService)
	imageHandler := handlers.NewImageHandler(imageService)
	userHandler := handlers.NewUserHandler(userService, imageService)

	authn := middleware.NewAuthenticator(authService)
	requestLogger := middleware.NewRequestLogger(logger)

	// Per-IP limit on credential endpoints.
	loginRateLimiter := middleware.NewRateLimiter(redisDB.Client, 10, time.Minute, "ratelimit:auth:", middleware.GetClientIP, true)

	requireAuth := authn.RequireAuth
	optionalAuth := authn.OptionalAuth

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", healthHandler.Health)

	mux.Handle("POST /api/auth/register", loginRateLimiter.Middleware(http.HandlerFunc(authHandler.Register)))
	mux.Handle("POST /api/auth/login", loginRateLimiter.Middleware(http.HandlerFunc(authHandler.Login)))

	mux.Handle("GET /api/friends", requireAuth(http.HandlerFunc(friendHandler.List)))
	mux.Handle("GET /api/friends/requests", requireAuth(http.HandlerFunc(friendHandler.Requests)))
	mux.Handle("GET /api/friends/suggestions", requireAuth(http.HandlerFunc(friendHandler.Suggestions)))
	mux.Handle("POST /api/friends/{username}", requireAuth(http.HandlerFunc(friendHandler.Add)))
	mux.Handle("POST /api/friends/{username}/confirm", requireAuth(http.HandlerFunc(friendHandler.Confirm)))
	mux.Handle("DELETE /api/friends/{username}", requireAuth(http.HandlerFunc(friendHandler.Remove)))
	mux.Handle("GET /api/friends/{username}/status", requireAuth(http.HandlerFunc(friendHandler.Status)))
	mux.Handle("GET /api/users/search", requireAuth(http.HandlerFunc(friendHandler.Search)))

	mux.Handle("POST /api/events", requireAuth(http.HandlerFunc(eventHandler.Create)))
	mux.Handle("GET /api/events", optionalAuth(http.HandlerFunc(eventHandler.Feed)))
	mux.Handle("GET /api/events/public", http.HandlerFunc(eventHandler.Public))
	mux.Handle("GET /api/events/upcoming", requireAuth(http.HandlerFunc(eventHandler.Upcoming)))
	mux.Handle("GET /api/events/{id}", optionalAuth(http.HandlerFunc(eventHandler.GetByID)))
	mux.Handle("POST /api/events/{id}/join", requireAuth(http.HandlerFunc(eventHandler.Join)))
	mux.Handle("POST /api/events/{id}/images", requireAuth(http.HandlerFunc(eventHandler.AddImage)))
	mux.Handle("GET /api/users/{id}/events", optionalAuth(http.HandlerFunc(eventHandler.UserEvents)))

	mux.Handle("GET /api/images/{id}", http.HandlerFunc(imageHandler.Get))
	mux.Handle("POST /api/images", requireAuth(http.HandlerFunc(imageHandler.Upload)))
	mux.Handle("PUT /api/users/profile-picture", requireAuth(http.HandlerFunc(userHandler.UpdateProfilePicture)))

	var handler http.Handler = mux
	handler = requestLogger.Apply(handler)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan bool, 1)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("Server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		server.SetKeepAlivesEnabled(false)
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Could not gracefully shutdown the server", map[string]interface{}{
				"error": err.Error(),
			})
		}
		close(done)
	}()

	logger.Info("Server listening", map[string]interface{}{
		"addr": addr,
	})
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	<-done
	logger.Info("Server stopped")
	return nil
}
