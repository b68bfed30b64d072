package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"bookjournal-backend/internal/config"
	"bookjournal-backend/internal/infrastructure/database"
	"bookjournal-backend/pkg/logger"
)

func main() {
	// ========================================
	// LOAD ENVIRONMENT VARIABLES
	// ========================================
	// .env cho local; production dùng system environment variables
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to load config")
	}

	logger.Init(cfg.App.Environment, cfg.App.LogLevel)
	if envErr != nil {
		log.Info().Msg("No .env file found, using system environment variables")
	}

	// ========================================
	// SET GIN MODE
	// ========================================
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	log.Info().Str("env", cfg.App.Environment).Str("version", cfg.App.Version).Msg("🌍 Starting " + cfg.App.Name)

	// ========================================
	// AUTO MIGRATE (optional)
	// ========================================
	if cfg.Database.AutoMigrate {
		if err := database.RunMigrations(cfg.Database.URL()); err != nil {
			log.Fatal().Err(err).Msg("❌ Migrations failed")
		}
	}

	Serve(cfg)
}
