// Package server initializes and runs the application: it opens storage,
// runs migrations, wires the Slack client to the sync engine, and starts the
// HTTP API alongside the periodic background sync.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrijs2005/slackpulse/internal/config"
	"github.com/dmitrijs2005/slackpulse/internal/export"
	"github.com/dmitrijs2005/slackpulse/internal/httpapi"
	"github.com/dmitrijs2005/slackpulse/internal/logging"
	"github.com/dmitrijs2005/slackpulse/internal/repositories/repomanager"
	"github.com/dmitrijs2005/slackpulse/internal/slack"
	"github.com/dmitrijs2005/slackpulse/internal/syncer"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	repomanager repomanager.RepositoryManager
	runner      httpapi.SyncRunner
	httpServer  *httpapi.Server
}

func NewApp(cfg *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	rm, err := repomanager.New(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	client := slack.NewClient(cfg.SlackToken,
		slack.WithTimeout(cfg.RequestTimeout),
	)

	registry := prometheus.NewRegistry()
	metrics := syncer.NewMetrics(registry)

	walker := syncer.NewWalker(client, cfg.MaxPagesPerChannel)
	controller := syncer.NewController(client, walker,
		rm.Users(), rm.Counts(), rm.Checkpoint(),
		logger, metrics, cfg.AdvanceOnFailure)

	var runner httpapi.SyncRunner = controller
	if cfg.ExportEnabled {
		exporter, err := export.NewExporter(cfg, logger, rm.Users(), rm.Counts())
		if err != nil {
			return nil, fmt.Errorf("exporter init error: %w", err)
		}
		runner = export.NewRunner(controller, exporter, logger)
	}

	httpServer := httpapi.NewServer(cfg, logger, rm.Users(), rm.Counts(), runner, registry)

	return &App{
		config:      cfg,
		logger:      logger,
		repomanager: rm,
		runner:      runner,
		httpServer:  httpServer,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) runSyncLoop(ctx context.Context) {
	if app.config.SyncInterval <= 0 {
		return
	}

	app.runPass(ctx)

	ticker := time.NewTicker(app.config.SyncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			app.runPass(ctx)
		}
	}
}

func (app *App) runPass(ctx context.Context) {
	summary, err := app.runner.RunPass(ctx, app.config.SlackUserIDs)
	if err != nil {
		app.logger.Error(ctx, "sync pass failed", "error", err.Error())
		return
	}
	app.logger.Info(ctx, "sync pass finished",
		"pass_id", summary.PassID,
		"attempted", summary.Attempted,
		"failed", len(summary.Failed))
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	if err := app.repomanager.RunMigrations(ctx); err != nil {
		app.logger.Error(ctx, "migrations failed", "error", err.Error())
		return
	}
	defer func() {
		if err := app.repomanager.Close(); err != nil {
			app.logger.Error(ctx, "db close error", "error", err.Error())
		}
	}()

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.httpServer.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.runSyncLoop(ctx)
	}()

	wg.Wait()
}
