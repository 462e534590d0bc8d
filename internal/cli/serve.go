package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/sheikh-saqib/ledger-bot/internal/transport/httpapi"
	"github.com/sheikh-saqib/ledger-bot/internal/transport/telegram"
	"github.com/spf13/cobra"
)

func newServeCmd(rc *rootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and, with a bot token, the Telegram poller",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rc.load()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.close()

			return a.serve(ctx)
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.cfg.HTTP.Addr,
		Handler:           httpapi.NewMux(a.handler, a.logger.With("component", "http")),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 2)

	go func() {
		a.logger.Info("starting http server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	if a.cfg.Bot.Token != "" {
		poller, err := telegram.NewPoller(a.cfg.Bot.Token, a.handler, a.cfg.Bot.PollTimeout, a.logger.With("component", "telegram"))
		if err != nil {
			srv.Close()
			return err
		}
		go func() {
			errc <- poller.Run(ctx)
		}()
	} else {
		a.logger.Info("no bot token configured, telegram polling disabled")
	}

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errc:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Warn("http shutdown", "error", err)
	}
	a.logger.Info("stopped")
	return runErr
}
