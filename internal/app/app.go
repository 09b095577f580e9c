package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MrSnakeDoc/linkvault/internal/config"
	"github.com/MrSnakeDoc/linkvault/internal/domain"
	"github.com/MrSnakeDoc/linkvault/internal/httpserver"
	"github.com/MrSnakeDoc/linkvault/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkvault/internal/logger"
	"github.com/MrSnakeDoc/linkvault/internal/metrics"
	"github.com/MrSnakeDoc/linkvault/internal/scheduler"
	"github.com/MrSnakeDoc/linkvault/internal/session"
	"github.com/MrSnakeDoc/linkvault/internal/version"
	"github.com/MrSnakeDoc/linkvault/internal/view"
)

type App struct {
	cfg     *config.Config
	logger  logger.Logger
	svc     *Services
	server  *httpserver.Server
	board   *view.Board
	sweeper *scheduler.Sweeper
	metrics *session.Subscription
}

// New wires the backend, the domain services and the HTTP server.
func New(cfg *config.Config, loggerClient logger.Logger) (*App, error) {
	svc, err := Open(cfg, loggerClient)
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	metricsSub := svc.Sessions.Subscribe(m.ObserveSession)

	board := view.NewBoard(svc.Links, svc.Sessions, cfg.ViewTTL, loggerClient.Named("views"))

	sweeper := scheduler.NewSweeper(svc.purger, board, loggerClient.Named("sweeper"), cfg.SweepInterval)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:         loggerClient,
		StartTime:      time.Now(),
		Version:        version.Version,
		Commit:         version.Commit,
		BuildDate:      version.BuildDate,
		GoVersion:      version.GoVersion,
		TimeNow:        time.Now,
		RequestTimeout: cfg.RequestTimeout,
		AllowedHosts:   cfg.AllowedHosts,
		AllowedCIDRS:   cfg.AllowedCIDRS,
		TrustProxy:     cfg.TrustProxy,
		CORSOrigins:    cfg.CORSOrigins,
		Backend:        svc.Backend,
		Pinger:         svc.Pinger,
		Sessions:       svc.Sessions,
		Links:          svc.Links,
		Board:          board,
		Dashboard:      view.NewAggregateView(svc.Links),
		Importer:       svc.Importer,
		Validate:       domain.NewValidator(),
		Metrics:        m,
	}

	return &App{
		cfg:     cfg,
		logger:  loggerClient,
		svc:     svc,
		server:  httpserver.New(cfg, loggerClient, d),
		board:   board,
		sweeper: sweeper,
		metrics: metricsSub,
	}, nil
}

// Run serves until SIGINT/SIGTERM, then shuts down gracefully.
func (a *App) Run() error {
	a.logger.Info("🚀 starting "+version.String(),
		logger.String("addr", a.cfg.ListenAddr),
		logger.String("backend", a.cfg.Backend))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.sweeper.Start(ctx)
	a.logger.Info("sweeper started", logger.Duration("interval", a.cfg.SweepInterval))

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := a.server.Start(); err != nil {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})

	// Stops everything once a signal arrives or the server fails.
	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("⏳ shutting down gracefully...")

		a.sweeper.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		if err := a.server.Stop(shutdownCtx); err != nil {
			return fmt.Errorf("failed to stop server: %w", err)
		}
		return nil
	})

	runErr := g.Wait()

	a.board.Close()
	a.metrics.Close()
	a.svc.Close()

	if runErr != nil {
		return runErr
	}
	a.logger.Info("✅ linkvault stopped cleanly")
	return nil
}
