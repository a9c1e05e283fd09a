package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"YenMetrics/internal/handler/api"
	"YenMetrics/internal/usecase"
	pkgch "YenMetrics/pkg/clickhouse"
	"YenMetrics/pkg/config"
	xhttp "YenMetrics/pkg/http"
	applogger "YenMetrics/pkg/logger"

	"github.com/labstack/echo/v4"
)

// App encapsulates the entire application lifecycle: the refresh loop,
// the HTTP API, and the infrastructure clients it must release on exit.
type App struct {
	cfg       *config.Config
	logger    *applogger.Logger
	refresher *usecase.Refresher
	handler   *api.MetricsHandler
	hub       *api.StreamHub
	chClient  *pkgch.Client

	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	logger *applogger.Logger,
	refresher *usecase.Refresher,
	handler *api.MetricsHandler,
	hub *api.StreamHub,
	chClient *pkgch.Client,
) *App {
	return &App{
		cfg:       cfg,
		logger:    logger,
		refresher: refresher,
		handler:   handler,
		hub:       hub,
		chClient:  chClient,
	}
}

type routes struct {
	handlers []xhttp.Handler
}

func (r routes) RegisterRoutes(e *echo.Echo) {
	for _, h := range r.handlers {
		h.RegisterRoutes(e)
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.httpServer = xhttp.NewServer(routes{handlers: []xhttp.Handler{a.handler, a.hub}},
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	a.refresher.AddListener(a.hub)
	go a.refresher.Run(ctx)
	a.logger.Info("refresher started",
		applogger.String("source", a.cfg.Refresh.Source),
		applogger.Duration("interval", a.cfg.Refresh.Interval),
	)

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("http server started", applogger.Int("port", a.cfg.Server.Port))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	cancel()
	return a.shutdown()
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if err := a.refresher.Close(); err != nil {
		a.logger.Warn("refresher close error", applogger.Error(err))
	}

	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.logger.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
