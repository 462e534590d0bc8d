package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/sheikh-saqib/ledger-bot/internal/bot"
	"github.com/sheikh-saqib/ledger-bot/internal/command"
	"github.com/sheikh-saqib/ledger-bot/internal/config"
	"github.com/sheikh-saqib/ledger-bot/internal/events/kafka"
	"github.com/sheikh-saqib/ledger-bot/internal/ledger"
	"github.com/sheikh-saqib/ledger-bot/internal/storage"
	"github.com/sheikh-saqib/ledger-bot/internal/tron"
)

// app holds everything a subcommand needs, built from one Config.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	ledger  *ledger.Ledger
	handler *bot.Handler
	closers []func() error
}

func newLogger(cfg *config.Config) (*slog.Logger, error) {
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts)), nil
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger}

	store, closeStore, err := storage.Open(ctx, storage.Options{
		Driver: cfg.Storage.Driver,
		Path:   cfg.Storage.Path,
		DSN:    cfg.Storage.DSN,
	})
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, closeStore)

	timeout, err := cfg.TronTimeout()
	if err != nil {
		a.close()
		return nil, err
	}
	lookup := tron.NewClient(cfg.Tron.BaseURL,
		tron.WithAPIKey(cfg.Tron.APIKey),
		tron.WithHTTPClient(&http.Client{Timeout: timeout}),
		tron.WithLogger(logger.With("component", "tron")),
	)

	opts := []ledger.Option{
		ledger.WithLogger(logger.With("component", "ledger")),
		ledger.WithAdmin(cfg.Bot.AdminID),
	}
	if len(cfg.Kafka.Brokers) > 0 {
		pub := kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.TopicPrefix, logger.With("component", "kafka"))
		a.closers = append(a.closers, pub.Close)
		opts = append(opts, ledger.WithPublisher(pub))
	}

	a.ledger = ledger.NewLedger(store, lookup, opts...)

	// fail fast if the store is unreadable
	if _, err := a.ledger.Records(ctx); err != nil {
		a.close()
		return nil, err
	}

	a.handler = bot.NewHandler(a.ledger, command.Parser{}, logger.With("component", "bot"))
	return a, nil
}

func (a *app) close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
