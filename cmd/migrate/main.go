package main

import (
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"bookjournal-backend/internal/config"
	"bookjournal-backend/internal/infrastructure/database"
	"bookjournal-backend/pkg/logger"
)

// migrate -cmd=up|down|version [-steps=N]
func main() {
	cmd := flag.String("cmd", "up", "up, down or version")
	steps := flag.Int("steps", 1, "number of migrations to roll back with -cmd=down")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to load config")
	}
	logger.Init(cfg.App.Environment, cfg.App.LogLevel)

	url := cfg.Database.URL()

	switch *cmd {
	case "up":
		err = database.RunMigrations(url)
	case "down":
		err = database.RollbackMigrations(url, *steps)
	case "version":
		var (
			version uint
			dirty   bool
		)
		version, dirty, err = database.MigrationVersion(url)
		if err == nil {
			log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Migration version")
		}
	default:
		log.Error().Str("cmd", *cmd).Msg("unknown command")
		flag.Usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatal().Err(err).Str("cmd", *cmd).Msg("❌ Migration command failed")
	}
}
