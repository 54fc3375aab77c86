package main

import (
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/schoolhub/schoolhub/internal/bootstrap"
	"github.com/schoolhub/schoolhub/internal/pkg/logger"
	"github.com/schoolhub/schoolhub/internal/server"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to configuration file")
	flag.Parse()

	// Missing .env is fine; environment variables may come from elsewhere
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg("No .env file found")
	}

	app, err := bootstrap.Initialize(*configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize application")
		os.Exit(1)
	}

	if err := server.New(app).Run(); err != nil {
		logger.Error().Err(err).Msg("Server exited with error")
		os.Exit(1)
	}
}
