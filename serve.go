package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sanketkurve/portfolio-backend/api"
	"github.com/sanketkurve/portfolio-backend/auth"
	"github.com/sanketkurve/portfolio-backend/config"
	"github.com/sanketkurve/portfolio-backend/services"
)

const defaultShutdownTimeout = 30 * time.Second

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	var shutdownTimeout time.Duration

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), shutdownTimeout)
		},
	}

	cmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", defaultShutdownTimeout, "time allowed for in-flight requests and notifications on shutdown")

	return cmd
}

func runServe(ctx context.Context, shutdownTimeout time.Duration) error {
	if ctx == nil {
		ctx = context.Background()
	}

	c, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	secret := config.GetString(c, "JWT_SECRET", "")
	if secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	db, err := openDatabase(ctx, c)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("error closing database")
		}
	}()

	hasher := auth.NewBcryptHasher(config.GetInt(c, "BCRYPT_COST", 0))
	var tokenOpts []auth.TokenOption
	if issuer := config.GetString(c, "JWT_ISSUER", ""); issuer != "" {
		tokenOpts = append(tokenOpts, auth.WithIssuer(issuer))
	}
	tokens := auth.NewTokenService(secret, config.GetDuration(c, "JWT_TTL", 24*time.Hour), tokenOpts...)
	authService := auth.NewService(db.AdminRepo(), hasher, tokens, log.With().Str("component", "auth").Logger())

	mailer, err := services.NewMailer(c, log.With().Str("component", "mailer").Logger())
	if err != nil {
		return err
	}
	dispatcher := services.NewDispatcher(config.GetDuration(c, "NOTIFY_TIMEOUT", 30*time.Second), log.With().Str("component", "dispatcher").Logger())
	notifier := services.NewContactNotifier(mailer, dispatcher, services.NotifierConfigFrom(c), log.With().Str("component", "notifier").Logger())

	server, err := api.NewServer(api.Dependencies{
		Database: db,
		Auth:     authService,
		Notifier: notifier,
	}, c)
	if err != nil {
		return fmt.Errorf("initialize server: %w", err)
	}

	errChannel := make(chan error, 2)

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(shutdownTimeout)

	waitCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := dispatcher.Wait(waitCtx); err != nil {
		log.Warn().Err(err).Msg("notifications still pending at shutdown")
	}

	if errors.Is(fatalErr, http.ErrServerClosed) || errors.Is(fatalErr, errInterrupted) {
		return nil
	}
	return fatalErr
}

var errInterrupted = errors.New("interrupted")

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%w: %s", errInterrupted, <-c)
}
