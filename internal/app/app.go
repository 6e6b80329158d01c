package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/config"
	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/health"
	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/observability"
)

type App struct {
	Config        *config.Config
	Logger        *slog.Logger
	Server        *http.Server
	Observability *observability.Runtime
	Readiness     *health.ProbeRunner

	ShutdownTimeout time.Duration
	stopBackground  func()
}

func New(
	cfg *config.Config,
	logger *slog.Logger,
	server *http.Server,
	runtime *observability.Runtime,
	readiness *health.ProbeRunner,
	stopBackground func(),
) *App {
	return &App{
		Config:          cfg,
		Logger:          logger,
		Server:          server,
		Observability:   runtime,
		Readiness:       readiness,
		ShutdownTimeout: cfg.ShutdownTimeout,
		stopBackground:  stopBackground,
	}
}

func (a *App) StopBackgroundTasks() {
	if a.stopBackground != nil {
		a.stopBackground()
	}
}

// Run serves until ctx is cancelled, then drains in order: background
// jobs, in-flight HTTP, observability pipelines.
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.Info("http server listening", "addr", a.Server.Addr, "environment", a.Config.Environment)
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.Logger.Info("shutdown initiated")
		a.StopBackgroundTasks()

		drainCtx, cancel := context.WithTimeout(context.Background(), a.ShutdownTimeout)
		defer cancel()
		if err := a.Server.Shutdown(drainCtx); err != nil {
			a.Logger.Error("http drain failed", "error", err)
		}
		if a.Observability != nil {
			if err := a.Observability.Shutdown(drainCtx); err != nil {
				a.Logger.Error("observability shutdown failed", "error", err)
			}
		}
		return nil
	})

	return g.Wait()
}
