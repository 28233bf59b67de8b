package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/skous2/nails-by-brooke/internal/config"
	"github.com/skous2/nails-by-brooke/internal/repository/postgres"
	"github.com/skous2/nails-by-brooke/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	steps := flag.Int("steps", 1, "number of migrations to roll back with down")
	configFile := flag.String("config", os.Getenv("CONFIG_FILE"), "path to config.yml")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: migrate [flags] up|down|version\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	logger.Init(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	dsn := cfg.Database.DSN()

	switch flag.Arg(0) {
	case "up":
		if err := postgres.RunMigrations(dsn); err != nil {
			log.Fatal().Err(err).Msg("migrate up failed")
		}
		log.Info().Msg("migrations applied")
	case "down":
		if err := postgres.RollbackMigrations(dsn, *steps); err != nil {
			log.Fatal().Err(err).Msg("migrate down failed")
		}
		log.Info().Int("steps", *steps).Msg("migrations rolled back")
	case "version":
		version, dirty, err := postgres.MigrationVersion(dsn)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to read version")
		}
		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("schema version")
	default:
		flag.Usage()
		os.Exit(2)
	}
}
