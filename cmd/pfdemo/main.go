package main

import (
	"flag"
	"fmt"
	"net/http"

	"github.com/pipeforge-labs/pipeforge-console/internal/demo"
	"github.com/pipeforge-labs/pipeforge-console/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	log := logger.New(logger.Options{Pretty: true})

	cfg, err := demo.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	store := demo.NewStore()
	tracker := demo.NewTracker()
	if err := demo.Seed(store, tracker, cfg.Seed); err != nil {
		log.Fatal().Err(err).Msg("failed to seed demo data")
	}

	issuer := demo.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	handler := demo.NewHandler(store, tracker, issuer, log)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      demo.NewRouter(handler),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	log.Info().
		Int("port", cfg.Server.Port).
		Msg("demo backend starting, login with admin/admin123")

	if err := server.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
