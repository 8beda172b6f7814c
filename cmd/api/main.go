package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bugrabasbostanci/funny-yellow-sub001/internal/auth"
	"github.com/bugrabasbostanci/funny-yellow-sub001/internal/background"
	"github.com/bugrabasbostanci/funny-yellow-sub001/internal/config"
	"github.com/bugrabasbostanci/funny-yellow-sub001/internal/database"
	"github.com/bugrabasbostanci/funny-yellow-sub001/internal/handlers"
	appmiddleware "github.com/bugrabasbostanci/funny-yellow-sub001/internal/middleware"
	"github.com/bugrabasbostanci/funny-yellow-sub001/internal/models"
	"github.com/bugrabasbostanci/funny-yellow-sub001/internal/repositories"
	"github.com/bugrabasbostanci/funny-yellow-sub001/internal/routes"
	"github.com/bugrabasbostanci/funny-yellow-sub001/internal/services"
	pkghttp "github.com/bugrabasbostanci/funny-yellow-sub001/pkg/http"
	pkglogger "github.com/bugrabasbostanci/funny-yellow-sub001/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	db, err := database.NewConnection(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	// Services
	stickerRepo := repositories.NewStickerRepository(db)
	tokenService := auth.NewTokenService(cfg.Auth.TokenSecret, cfg.Auth.TokenExpiry)
	rateLimiter := services.NewRateLimitService(services.RateLimitConfig{
		MaxAttempts: cfg.Auth.RateLimitMaxAttempts,
		Window:      cfg.Auth.RateLimitWindow,
	}, logger)
	audit := pkglogger.NewAuditLogger(logger)

	creds := models.AdminCredentials{
		Username:     cfg.Admin.Username,
		PasswordHash: cfg.Admin.PasswordHash,
		PasswordSalt: cfg.Admin.PasswordSalt,
	}
	authService := services.NewAuthService(creds, tokenService, rateLimiter, logger, audit)

	// Handlers
	originConfig := &pkghttp.OriginConfig{TrustedProxies: cfg.Server.TrustedProxies}
	cookieConfig := auth.CookieConfig{
		Secure:   cfg.Auth.CookieSecure,
		SameSite: cfg.Auth.CookieSameSite,
	}
	authHandler := handlers.NewAuthHandler(authService, originConfig, cookieConfig, cfg.Auth.TokenExpiry)
	adminHandler := handlers.NewAdminHandler(stickerRepo)

	// Router
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(appmiddleware.SecurityHeaders(appmiddleware.SecurityHeadersConfig{Env: cfg.Server.Env}))

	corsConfig := appmiddleware.DefaultCORSConfig(cfg.Server.Env)
	if len(cfg.Server.AllowedOrigins) > 0 {
		corsConfig.AllowedOrigins = cfg.Server.AllowedOrigins
	}
	r.Use(appmiddleware.CORS(corsConfig))

	r.Use(appmiddleware.SecureLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))

	r.Get("/health", healthHandler(db))

	routes.Register(r, routes.Dependencies{
		AuthHandler:  authHandler,
		AdminHandler: adminHandler,
		TokenService: tokenService,
		Logger:       logger,
		Config:       cfg,
	})

	// Background sweep of expired lockout entries
	sweepCtx, cancelSweep := context.WithCancel(context.Background())
	sweeper := background.NewSweepManager(rateLimiter, logger, cfg.Auth.SweepInterval)
	go sweeper.Start(sweepCtx)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	cancelSweep()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", slog.Any("error", err))
	}

	logger.Info("server stopped")
}

func healthHandler(db *database.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		code := http.StatusOK

		if err := db.HealthCheck(r.Context()); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status":    status,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
