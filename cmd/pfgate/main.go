package main

import (
	"context"
	"net/http"
	"time"

	"github.com/pipeforge-labs/pipeforge-console/internal/gateway"
	"github.com/pipeforge-labs/pipeforge-console/pkg/logger"
)

func main() {
	cfg, err := gateway.LoadConfig(context.Background())
	if err != nil {
		log := logger.New(logger.Options{})
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	handler := gateway.NewRouter(cfg, log)

	server := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Info().
		Str("addr", cfg.ListenAddr).
		Str("backend", cfg.BackendOrigin).
		Str("env", cfg.Env).
		Msg("gateway starting")

	if err := server.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
