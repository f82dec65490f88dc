package main

import (
	"github.com/indigo-web/smol/config"
	"github.com/indigo-web/smol/internal/tracing"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
)

// NewTracerProvider creates the tracer provider selected by SMOL_TRACE_EXPORTER. Pending
// spans are flushed when the application stops.
func NewTracerProvider(lc fx.Lifecycle, cfg *config.Config) (trace.TracerProvider, error) {
	tp, err := tracing.New(cfg.Trace)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: tp.Shutdown,
	})

	return tp.TracerProvider, nil
}
