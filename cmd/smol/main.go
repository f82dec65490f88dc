package main

import (
	"github.com/indigo-web/smol/config"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func main() {
	fx.New(options()...).Run()
}

func options() []fx.Option {
	return []fx.Option{
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		fx.Provide(config.Resolve),
		fx.Provide(NewLogger),
		fx.Provide(NewTracerProvider),
		fx.Provide(NewRouter),
		fx.Provide(NewApp),
		fx.Invoke(startAppHook),
	}
}
