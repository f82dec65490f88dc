package server

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dchest/uniuri"
	"github.com/indigo-web/smol/config"
	"github.com/indigo-web/smol/http"
	"github.com/indigo-web/smol/http/status"
	"github.com/indigo-web/smol/internal/transport/http1"
	"github.com/indigo-web/smol/router"
	"github.com/indigo-web/smol/transport"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

const (
	connIDLength = 12
	tracerName   = "github.com/indigo-web/smol/internal/server"
)

// Server serves a single request per connection: it parses the request, answers it via
// the router and closes the connection.
type Server struct {
	router router.Router
	cfg    *config.Config
	log    *zap.Logger
	tracer trace.Tracer
	codecs sync.Pool
}

// codec is the per-connection parsing and rendering state, reused across connections.
type codec struct {
	framer     *http1.Framer
	serializer *http1.Serializer
}

// New returns a server answering with the router. Nil logger and tracer provider
// disable logging and tracing respectively.
func New(r router.Router, cfg *config.Config, log *zap.Logger, tp trace.TracerProvider) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	if tp == nil {
		tp = noop.NewTracerProvider()
	}

	s := &Server{
		router: r,
		cfg:    cfg,
		log:    log,
		tracer: tp.Tracer(tracerName),
	}
	s.codecs.New = func() any {
		return &codec{
			framer:     http1.NewFramer(nil, s.cfg.Headers.MaxSize),
			serializer: http1.NewSerializer(make([]byte, 0, s.cfg.NET.WriteBufferSize)),
		}
	}

	return s
}

// Serve handles the connection until the response is sent, then closes it.
func (s *Server) Serve(ctx context.Context, client transport.Client) {
	start := time.Now()
	id := uniuri.NewLen(connIDLength)
	log := s.log.With(zap.String("conn", id), zap.String("remote", remote(client.Remote())))

	_, span := s.tracer.Start(ctx, "smol.connection",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("smol.conn.id", id),
			attribute.String("net.peer.address", remote(client.Remote())),
		),
	)
	defer span.End()

	defer func() {
		if err := client.Close(); err != nil {
			log.Debug("close connection", zap.Error(err))
		}
	}()

	log.Debug("connection accepted")

	c := s.codecs.Get().(*codec)
	defer func() {
		c.framer.Reset(nil)
		s.codecs.Put(c)
	}()

	framer, serializer := c.framer, c.serializer
	framer.Reset(client)

	request, err := http1.Parse(framer)
	if err != nil {
		log.Debug("malformed request", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "malformed request")

		resp := s.onError(nil, err)
		s.send(log, span, serializer, client, resp)
		log.Info("request rejected",
			zap.Uint16("status", uint16(resp.Reveal().Code)),
			zap.Duration("took", time.Since(start)),
		)
		return
	}

	span.SetAttributes(
		attribute.String("http.request.method", request.Method),
		attribute.String("url.path", request.Path),
	)
	log = log.With(zap.String("method", request.Method), zap.String("path", request.Path))

	if request.ExpectsContinue() {
		if err = serializer.Send(client, http.NewResponse().Code(status.Continue)); err != nil {
			log.Debug("send 100 Continue", zap.Error(err))
			span.RecordError(err)
			return
		}
	}

	if length := request.ContentLength(); length > 0 {
		client.Pushback(framer.Remainder())
		if drained, err := drain(client, length); err != nil {
			log.Debug("request body cut short",
				zap.Int64("content_length", length),
				zap.Int64("drained", drained),
				zap.Error(err),
			)
		}
	}

	resp := s.onRequest(log, request)
	s.send(log, span, serializer, client, resp)

	code := resp.Reveal().Code
	span.SetAttributes(attribute.Int("http.response.status_code", int(code)))
	log.Info("request served",
		zap.Uint16("status", uint16(code)),
		zap.Duration("took", time.Since(start)),
	)
}

func (s *Server) send(
	log *zap.Logger, span trace.Span, serializer *http1.Serializer, client transport.Client, resp *http.Response,
) {
	if err := serializer.Send(client, resp); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "send response")

		if errors.Is(err, http.ErrResponseState) {
			log.Error("invalid response", zap.Error(err))
			return
		}

		log.Debug("send response", zap.Error(err))
	}
}

func (s *Server) onError(request *http.Request, err error) *http.Response {
	resp := s.router.OnError(request, err)
	if resp == nil {
		return http.NewResponse().Error(err)
	}

	return resp
}

// onRequest calls the router, answering with 500 Internal Server Error if it panics.
func (s *Server) onRequest(log *zap.Logger, request *http.Request) (resp *http.Response) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("router panicked", zap.Any("panic", r), zap.Stack("stack"))
			resp = request.Respond().Error(status.ErrInternalServerError)
		}
	}()

	resp = s.router.OnRequest(request)
	if resp == nil {
		return request.Respond()
	}

	return resp
}

// drain discards exactly n bytes from the client.
func drain(client transport.Client, n int64) (drained int64, err error) {
	for drained < n {
		data, err := client.Read()
		if rest := n - drained; int64(len(data)) > rest {
			client.Pushback(data[rest:])
			data = data[:rest]
		}

		drained += int64(len(data))
		if err != nil {
			if drained == n {
				return drained, nil
			}

			return drained, errors.Wrap(err, "read body")
		}
	}

	return drained, nil
}

func remote(addr net.Addr) string {
	if addr == nil {
		return "unknown"
	}

	return addr.String()
}
