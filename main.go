package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/perchapp/perch-be/internal/api"
	"github.com/perchapp/perch-be/internal/auth"
	"github.com/perchapp/perch-be/internal/config"
	"github.com/perchapp/perch-be/internal/database"
	"github.com/perchapp/perch-be/internal/logger"
	"github.com/perchapp/perch-be/internal/repository/sqlite"
	"github.com/perchapp/perch-be/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init(cfg.LogLevel)

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up repositories
	userRepo := sqlite.NewUserRepo(db)
	inviteRepo := sqlite.NewInviteRepo(db)
	postRepo := sqlite.NewPostRepo(db)
	followRepo := sqlite.NewFollowRepo(db)

	// Set up services
	tokens := auth.NewService(cfg.JWTSecret)
	inviteService := services.NewInviteService(inviteRepo)
	authService := services.NewAuthService(userRepo, inviteService, tokens)
	userService := services.NewUserService(userRepo, postRepo, followRepo)
	postService := services.NewPostService(postRepo)
	followService := services.NewFollowService(followRepo, userRepo)
	feedService := services.NewFeedService(postRepo)

	// Surface a system invite if none exist yet, so the first account can
	// be registered.
	if code, created, err := inviteService.EnsureBootstrapInvite(); err != nil {
		log.Fatal().Err(err).Msg("Failed to create bootstrap invite")
	} else if created {
		log.Info().Str("invite_code", code).Msg("Bootstrap invite created; use it to register the first account")
	}

	// Set up router
	router := api.NewRouter(tokens, authService, userService, inviteService, postService, followService, feedService)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
