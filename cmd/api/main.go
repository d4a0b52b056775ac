package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/leadnest/leadnest-api/internal/config"
	"github.com/leadnest/leadnest-api/internal/domain/billing"
	"github.com/leadnest/leadnest-api/internal/domain/contact"
	"github.com/leadnest/leadnest-api/internal/domain/credit"
	"github.com/leadnest/leadnest-api/internal/middleware"
	"github.com/leadnest/leadnest-api/internal/pkg/database"
	"github.com/leadnest/leadnest-api/internal/pkg/jwt"
	"github.com/leadnest/leadnest-api/internal/pkg/logger"
	"github.com/leadnest/leadnest-api/internal/pkg/response"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Env,
	})

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting LeadNest Credits API")

	if cfg.AutoMigrate {
		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}
	}

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redis, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redis)

	jwtService := jwt.NewService(cfg.JWTSecret)

	// ---------- Services ----------
	balanceCache := credit.NewBalanceCache(redis, cfg.BalanceCacheTTL)
	creditService := credit.NewService(db, balanceCache)
	contactService := contact.NewService(db, creditService, contact.NewStaticRevealer(), cfg.RevealTimeout)
	billingService := billing.NewService(creditService)

	// ---------- Handlers ----------
	creditHandler := credit.NewHandler(creditService)
	contactHandler := contact.NewHandler(contactService)
	billingHandler := billing.NewHandler(billingService)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.OK(w, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(jwtService))
			r.Mount("/credits", creditHandler.Routes())
			r.Mount("/contacts", contactHandler.Routes())
			r.Mount("/billing", billingHandler.Routes())
		})
	})

	// ---------- Server ----------
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
