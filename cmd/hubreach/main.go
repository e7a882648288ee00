package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	slacklib "github.com/slack-go/slack"

	"github.com/gosuda/hubreach/internal/config"
	"github.com/gosuda/hubreach/internal/notify"
	"github.com/gosuda/hubreach/internal/onboarding"
	"github.com/gosuda/hubreach/internal/server"
	"github.com/gosuda/hubreach/internal/store/postgres"
	redisstore "github.com/gosuda/hubreach/internal/store/redis"
	"github.com/gosuda/hubreach/internal/subscriber"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}
}

func run() error {
	// Initialize structured logging from environment.
	level, parseErr := zerolog.ParseLevel(os.Getenv("HUBREACH_LOG_LEVEL"))
	if parseErr != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if os.Getenv("HUBREACH_LOG_FORMAT") == "text" {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}

	ctx := context.Background()

	// Load configuration from environment.
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if cfg.Database.MaxConns < 0 || cfg.Database.MaxConns > math.MaxInt32 {
		return fmt.Errorf("database max_conns %d out of int32 range", cfg.Database.MaxConns)
	}

	// Connect to PostgreSQL.
	store, err := postgres.New(ctx, cfg.Database.DSN(), int32(cfg.Database.MaxConns)) //nolint:gosec // bounds checked above
	if err != nil {
		return err
	}
	defer store.Close()

	// Subscriber events are optional; without Redis inserts still succeed.
	var (
		events subscriber.EventPublisher
		pubsub *redisstore.PubSub
	)
	if cfg.Redis.Enabled {
		var redisErr error
		pubsub, redisErr = redisstore.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if redisErr != nil {
			return redisErr
		}
		defer pubsub.Close()
		events = pubsub
	} else {
		log.Info().Msg("redis disabled, subscriber events will not be published")
	}

	subscribers := subscriber.NewService(store.Records(), events, redisstore.SubscribersChannel, log.Logger)

	resolver := onboarding.NewResolver(onboarding.WithRepromptAfter(cfg.Onboarding.VerificationRepromptAfter))
	onboard := onboarding.NewService(store.Records(), resolver, log.Logger)

	// Graceful shutdown on SIGINT / SIGTERM.
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.Slack.Enabled() && pubsub != nil {
		notifier := notify.New(slacklib.New(cfg.Slack.BotToken), cfg.Slack.ChannelID, log.Logger)
		go func() {
			if runErr := notifier.Run(ctx, pubsub); runErr != nil {
				log.Error().Err(runErr).Msg("subscriber notifier stopped")
			}
		}()
		log.Info().Str("channel", cfg.Slack.ChannelID).Msg("slack subscriber notifications enabled")
	}

	srv := server.New(ctx, cfg, store, server.Services{
		Subscribers: subscribers,
		Onboarding:  onboard,
	})

	// Start server in background goroutine.
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("starting server")
		if startErr := srv.Start(); startErr != nil {
			log.Error().Err(startErr).Msg("server error")
			cancel()
		}
	}()

	// Block until shutdown signal.
	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
		return shutdownErr
	}

	log.Info().Msg("stopped")
	return nil
}
