package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/avezina/todostack/internal/api"
	"github.com/avezina/todostack/internal/auth"
	"github.com/avezina/todostack/internal/config"
	"github.com/avezina/todostack/internal/database"
	"github.com/avezina/todostack/internal/logger"
	"github.com/avezina/todostack/internal/services"
)

func main() {
	// A missing .env file is fine; the environment may be set directly.
	_ = godotenv.Load()
	logger.Init()

	cfg, err := config.Load("8081")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	userService := services.NewUserService(db)
	tokens := auth.NewTokenManager(cfg.JWTSecret)

	router := api.NewUserRouter(db, userService, tokens, cfg.AllowedOrigin)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("User service starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down user service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("User service exiting")
}
