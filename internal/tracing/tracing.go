package tracing

import (
	"context"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/indigo-web/smol/config"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// ServiceName is reported as the service.name resource attribute.
const ServiceName = "smol"

// Provider is a tracer provider along with the function flushing and stopping it.
type Provider struct {
	trace.TracerProvider
	Shutdown func(ctx context.Context) error
}

// New creates the tracer provider selected by the config. Empty exporter disables
// tracing, "stdout" pretty-prints finished spans into stdout.
func New(cfg config.Trace) (Provider, error) {
	return NewWithWriter(cfg, os.Stdout)
}

// NewWithWriter does the same as New, but the stdout exporter writes into w instead.
func NewWithWriter(cfg config.Trace, w io.Writer) (Provider, error) {
	switch cfg.Exporter {
	case "":
		return Provider{
			TracerProvider: noop.NewTracerProvider(),
			Shutdown:       func(context.Context) error { return nil },
		}, nil
	case "stdout":
		exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint(), stdouttrace.WithWriter(w))
		if err != nil {
			return Provider{}, errors.Wrap(err, "stdout exporter")
		}

		tp := sdktrace.NewTracerProvider(
			sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(exporter)),
			sdktrace.WithResource(resource.NewSchemaless(
				attribute.String("service.name", ServiceName),
			)),
		)

		return Provider{
			TracerProvider: tp,
			Shutdown:       tp.Shutdown,
		}, nil
	default:
		return Provider{}, errors.Newf("unsupported trace exporter: %q (supported: stdout)", cfg.Exporter)
	}
}
