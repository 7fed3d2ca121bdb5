package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/sanketkurve/portfolio-backend/auth"
	"github.com/sanketkurve/portfolio-backend/config"
	"github.com/sanketkurve/portfolio-backend/database"
	"github.com/sanketkurve/portfolio-backend/models"
)

// Default timeout for seed command.
const defaultSeedTimeout = 30 * time.Second

// seedConfig holds configuration for the seed command.
type seedConfig struct {
	timeout       time.Duration
	username      string
	email         string
	password      string
	resetPassword bool
	demo          bool
}

// NewSeedCmd creates the seed subcommand.
func NewSeedCmd() *cobra.Command {
	cfg := &seedConfig{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the admin account and optional demo content",
		Long: `Creates the admin account from flags or ADMIN_USERNAME, ADMIN_EMAIL and
ADMIN_PASSWORD. This command is idempotent - an existing admin is left alone
unless --reset-password is given, and demo content is only added to an empty
project table.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSeed(cmd, cfg)
		},
	}

	cmd.Flags().DurationVar(&cfg.timeout, "timeout", defaultSeedTimeout, "timeout for database operations (e.g., 30s, 1m)")
	cmd.Flags().StringVar(&cfg.username, "username", "", "admin username (default $ADMIN_USERNAME)")
	cmd.Flags().StringVar(&cfg.email, "email", "", "admin email (default $ADMIN_EMAIL)")
	cmd.Flags().StringVar(&cfg.password, "password", "", "admin password (default $ADMIN_PASSWORD)")
	cmd.Flags().BoolVar(&cfg.resetPassword, "reset-password", false, "overwrite the password of an existing admin")
	cmd.Flags().BoolVar(&cfg.demo, "demo", false, "insert demo projects, skills and certificates")

	return cmd
}

func runSeed(cmd *cobra.Command, cfg *seedConfig) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.timeout)
	defer cancel()

	c, err := loadConfig(ctx)
	if err != nil {
		return oops.Code("CONFIG_INVALID").With("operation", "load config").Wrap(err)
	}
	cfg.fillFrom(c)

	cmd.Println("Connecting to database...")
	db, err := openDatabase(ctx, c)
	if err != nil {
		return oops.Code("DB_CONNECT_FAILED").With("operation", "connect to database").Wrap(err)
	}
	defer db.Close()

	hasher := auth.NewBcryptHasher(config.GetInt(c, "BCRYPT_COST", 0))
	return seedDatabase(ctx, db, hasher, cfg, cmd.OutOrStdout())
}

// fillFrom takes admin details from config where no flag was given.
func (cfg *seedConfig) fillFrom(c map[string]string) {
	if cfg.username == "" {
		cfg.username = config.GetString(c, "ADMIN_USERNAME", "")
	}
	if cfg.email == "" {
		cfg.email = config.GetString(c, "ADMIN_EMAIL", "")
	}
	if cfg.password == "" {
		cfg.password = config.GetString(c, "ADMIN_PASSWORD", "")
	}
}

func seedDatabase(ctx context.Context, db database.Database, hasher auth.PasswordHasher, cfg *seedConfig, out io.Writer) error {
	if cfg.username == "" || cfg.password == "" {
		return oops.Code("CONFIG_INVALID").Errorf("admin username and password are required (flags or ADMIN_USERNAME/ADMIN_PASSWORD)")
	}

	hash, err := hasher.Hash(cfg.password)
	if err != nil {
		return oops.Code("SEED_FAILED").With("operation", "hash admin password").Wrap(err)
	}

	admins := db.AdminRepo()
	_, err = admins.FindByUsername(ctx, cfg.username)
	switch {
	case errors.Is(err, database.ErrNotFound):
		if _, err := admins.Create(ctx, cfg.username, cfg.email, hash); err != nil {
			return oops.Code("SEED_FAILED").With("operation", "create admin").Wrap(err)
		}
		fmt.Fprintf(out, "Created admin %q\n", cfg.username)
	case err != nil:
		return oops.Code("SEED_FAILED").With("operation", "find admin").Wrap(err)
	case cfg.resetPassword:
		if err := admins.SetPasswordHash(ctx, cfg.username, hash); err != nil {
			return oops.Code("SEED_FAILED").With("operation", "reset admin password").Wrap(err)
		}
		fmt.Fprintf(out, "Reset password for admin %q\n", cfg.username)
	default:
		fmt.Fprintf(out, "Admin %q already exists, skipping\n", cfg.username)
	}

	if !cfg.demo {
		return nil
	}
	return seedDemoContent(ctx, db, out)
}

func seedDemoContent(ctx context.Context, db database.Database, out io.Writer) error {
	existing, err := db.ProjectRepo().Count(ctx)
	if err != nil {
		return oops.Code("SEED_FAILED").With("operation", "count projects").Wrap(err)
	}
	if existing > 0 {
		fmt.Fprintln(out, "Projects already present, skipping demo content")
		return nil
	}

	year := time.Now().Year()
	featured := true
	for _, in := range []models.ProjectInput{
		{
			Title:       "Portfolio Backend",
			Tagline:     "The API behind this site",
			Description: "Content and admin API with token auth and contact notifications.",
			Tech:        []string{"Go", "PostgreSQL", "chi"},
			Features:    []string{"Admin dashboard", "Contact form"},
			Year:        &year,
			Featured:    &featured,
		},
		{
			Title:       "Static Frontend",
			Tagline:     "Fast portfolio frontend",
			Description: "Single page frontend that reads the public content API.",
			Tech:        []string{"TypeScript", "React"},
			Year:        &year,
		},
	} {
		if _, err := db.ProjectRepo().Create(ctx, in); err != nil {
			return oops.Code("SEED_FAILED").With("operation", "create demo project").Wrap(err)
		}
	}

	for i, name := range []string{"Go", "PostgreSQL", "TypeScript"} {
		order := i + 1
		level := 80 - i*10
		if _, err := db.SkillRepo().Create(ctx, models.SkillInput{
			Name:     name,
			Category: "Programming",
			Level:    &level,
			Order:    &order,
		}); err != nil {
			return oops.Code("SEED_FAILED").With("operation", "create demo skill").Wrap(err)
		}
	}

	priority := 1
	if _, err := db.CertificateRepo().Create(ctx, models.CertificateInput{
		Name:     "Certified Kubernetes Administrator",
		Issuer:   "CNCF",
		Date:     fmt.Sprintf("%d-01", year),
		Priority: &priority,
	}); err != nil {
		return oops.Code("SEED_FAILED").With("operation", "create demo certificate").Wrap(err)
	}

	log.Info().Msg("demo content seeded")
	fmt.Fprintln(out, "Seeded demo projects, skills and certificates")
	return nil
}
