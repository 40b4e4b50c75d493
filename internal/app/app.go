// Package app wires the fulfillment processor together and runs it.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"esimprocessor/config"
	"esimprocessor/internal/domain/fulfillment"
	"esimprocessor/internal/external/airalo"
	"esimprocessor/internal/external/kafka"
	"esimprocessor/internal/mail"
	"esimprocessor/internal/poller"
	order_repo "esimprocessor/internal/repo/order"
	"esimprocessor/pkg/logger"
	"esimprocessor/pkg/postgres"
)

const opsShutdownTimeout = 5 * time.Second

// Run boots the processor and blocks until SIGINT/SIGTERM or a fatal error.
func Run(cfg config.Config) error {
	logger.Setup(logger.Options{
		Level:   cfg.LogLevel,
		Console: cfg.LogConsole,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pg, err := postgres.New(cfg.PgURL, postgres.MaxPoolSize(cfg.PgPoolMax))
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pg.Close()

	if err := ApplyMigrations(cfg.PgURL); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	orders := order_repo.NewPgOrderRepo(pg)

	provisioner := airalo.New(
		cfg.AiraloBaseURL,
		cfg.AiraloClientID,
		cfg.AiraloClientSecret,
		&http.Client{Timeout: cfg.AiraloOrderTimeout},
		cfg.AiraloAuthTimeout,
	)

	var events fulfillment.EventSink = fulfillment.NoopSink{}
	if len(cfg.KafkaBrokers) > 0 {
		sink := kafka.NewEventSink(cfg.KafkaBrokers, cfg.KafkaEventsTopic)
		defer func() {
			if err := sink.Close(); err != nil {
				slog.Error("Failed to close Kafka writer", "error", err)
			}
		}()
		events = sink
		slog.Info("Kafka event sink enabled", "topic", cfg.KafkaEventsTopic)
	} else {
		slog.Info("No Kafka brokers configured, fulfillment events will be dropped")
	}

	service := fulfillment.NewService(orders, provisioner, events)

	mailbox := mail.NewClient(mail.Config{
		Host:     cfg.IMAPHost,
		Port:     cfg.IMAPPort,
		Username: cfg.IMAPUser,
		Password: cfg.IMAPPass,
		Mailbox:  cfg.IMAPMailbox,
	})

	p := poller.New(mailbox, service.ProcessEmail, cfg.PollInterval)

	opsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.OpsPort),
		Handler: newOpsHandler(pg, mailbox.Addr()),
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return p.Run(ctx)
	})

	g.Go(func() error {
		slog.Info("Ops server listening", "addr", opsServer.Addr)
		if err := opsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("ops server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), opsShutdownTimeout)
		defer cancel()
		return opsServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	slog.Info("Processor stopped")
	return nil
}
