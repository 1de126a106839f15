package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Alex-Aron/LeagueOverlay/internal/config"
	"github.com/Alex-Aron/LeagueOverlay/internal/feed"
	"github.com/Alex-Aron/LeagueOverlay/internal/fetcher"
	"github.com/Alex-Aron/LeagueOverlay/internal/httpapi"
	"github.com/Alex-Aron/LeagueOverlay/internal/hub"
	"github.com/Alex-Aron/LeagueOverlay/internal/liveclient"
	"github.com/Alex-Aron/LeagueOverlay/internal/logging"
	"github.com/Alex-Aron/LeagueOverlay/internal/overlay"
	"github.com/Alex-Aron/LeagueOverlay/internal/schema"
)

const shutdownTimeout = 5 * time.Second

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("overlay stopped", zap.Error(err))
	}
	logger.Info("overlay stopped")
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	client, err := liveclient.New(liveclient.Config{
		BaseURL:   cfg.LiveClient.BaseURL,
		Timeout:   cfg.LiveClient.Timeout(),
		VerifyTLS: cfg.LiveClient.VerifyTLS,
	}, logger.Named("liveclient"))
	if err != nil {
		return fmt.Errorf("create live client: %w", err)
	}

	queue := feed.NewQueue[*schema.GameInfo]()
	slot := &overlay.Slot{}
	toggles := make(chan struct{}, 1)

	h := hub.NewHub(ctx)
	consumer := overlay.NewConsumer(queue, slot, toggles,
		summaryLogger{next: h, logger: logger.Named("overlay")}, logger.Named("overlay"))
	f := fetcher.New(client, queue, logger.Named("fetcher"),
		fetcher.WithIntervals(cfg.Poll.IdleBackoff(), cfg.Poll.ActiveInterval()))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return f.Run(gctx) })
	g.Go(func() error { return consumer.Run(gctx) })

	if cfg.HTTP.Enabled {
		srv := &http.Server{
			Addr: cfg.HTTP.Addr,
			Handler: httpapi.SetupRoutes(httpapi.Deps{
				Hub:        h,
				Overlay:    consumer,
				Fetcher:    f,
				LiveClient: client,
				Toggles:    toggles,
				Logger:     logger.Named("http"),
			}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			logger.Info("listening", zap.String("addr", cfg.HTTP.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// summaryLogger logs a one-line summary of each view before passing it on.
type summaryLogger struct {
	next   overlay.Broadcaster
	logger *zap.Logger
}

func (s summaryLogger) Publish(v overlay.View) {
	if v.Stats != nil && v.Visible {
		s.logger.Debug("overlay updated",
			zap.Int("version", v.Version),
			zap.String("summary", v.Stats.Summary()))
	}
	s.next.Publish(v)
}
