package main

import (
	"context"

	"github.com/indigo-web/smol"
	"github.com/indigo-web/smol/config"
	"github.com/indigo-web/smol/internal/logging"
	"github.com/indigo-web/smol/router"
	"github.com/indigo-web/smol/router/static"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NewLogger builds the logger configured by the SMOL_LOG_* variables.
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.New(cfg.Log)
}

// NewRouter serves the static root.
func NewRouter(cfg *config.Config) router.Router {
	return static.New(cfg.Static.Root, cfg.Static.Index)
}

func NewApp(cfg *config.Config, log *zap.Logger, tp trace.TracerProvider) *smol.App {
	return smol.New(cfg).
		Logger(log).
		Tracer(tp)
}

// startAppHook binds the listeners on start and serves until the application stops.
// A failing listener shuts the whole application down.
func startAppHook(
	lc fx.Lifecycle, sd fx.Shutdowner, app *smol.App, r router.Router, cfg *config.Config, log *zap.Logger,
) {
	runCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			if err := app.Bind(r); err != nil {
				return err
			}

			log.Info("serving files",
				zap.String("root", cfg.Static.Root),
				zap.String("index", cfg.Static.Index),
			)

			go func() {
				defer close(done)
				if err := app.Run(runCtx); err != nil {
					log.Error("server stopped", zap.Error(err))
					_ = sd.Shutdown(fx.ExitCode(1))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("stopping server")
			cancel()

			select {
			case <-done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
}
