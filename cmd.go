package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sanketkurve/portfolio-backend/config"
	"github.com/sanketkurve/portfolio-backend/database"
)

// Global flags available to all subcommands.
var envFile string

// NewRootCmd creates the root command for the portfolio CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "portfolio",
		Short: "Portfolio site backend",
		Long: `Portfolio serves the public content API and the admin API for a
personal portfolio site, and provides maintenance commands for its database.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewSeedCmd())
	cmd.AddCommand(NewGenerateCmd())
	cmd.AddCommand(NewHashPasswordCmd())

	return cmd
}

// loadConfig reads the dotenv file, the process environment and, when
// AWS_SSM_PARAMETER_PATH is set, SSM parameters. Explicit environment wins.
func loadConfig(ctx context.Context) (map[string]string, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			log.Warn().Err(err).Str("file", envFile).Msg("could not load env file")
		}
	}

	c := config.New()
	if err := config.LoadSSM(ctx, c); err != nil {
		return nil, fmt.Errorf("load ssm parameters: %w", err)
	}

	setupLogging(c)
	return c, nil
}

// setupLogging configures the global zerolog logger from LOG_LEVEL and
// LOG_FORMAT ("json" or "console").
func setupLogging(c map[string]string) {
	level, err := zerolog.ParseLevel(strings.ToLower(config.GetString(c, "LOG_LEVEL", "info")))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if strings.EqualFold(config.GetString(c, "LOG_FORMAT", "json"), "console") {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
			With().Timestamp().Logger()
		return
	}
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// openDatabase connects and migrates. The caller owns Close.
func openDatabase(ctx context.Context, c map[string]string) (database.Database, error) {
	gdb, err := database.Open(c, log.Logger)
	if err != nil {
		return database.Database{}, err
	}

	db := database.New(gdb)
	if err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		return database.Database{}, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}
