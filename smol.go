package smol

import (
	"context"
	"net"
	"sync"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/indigo-web/smol/config"
	"github.com/indigo-web/smol/internal/server"
	"github.com/indigo-web/smol/router"
	"github.com/indigo-web/smol/router/static"
	"github.com/indigo-web/smol/transport"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// ErrNotBound is returned by Run when it's called before Bind.
var ErrNotBound = errors.New("no transports are bound")

// App binds the listeners and runs the server over them.
type App struct {
	cfg        *config.Config
	log        *zap.Logger
	tp         trace.TracerProvider
	addrs      []string
	tcps       []*transport.TCP
	supervisor transport.Supervisor
	hooks      hooks
	// ctx is the parent of every connection span
	ctx        context.Context
	bound      bool
	running    *atomic.Bool
	stopOnce   *sync.Once
}

type hooks struct {
	OnStart, OnStop func()
}

// New returns a new App listening at the config's address. Nil config means the default
// one.
func New(cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.Default()
	}

	return &App{
		cfg:        cfg,
		log:        zap.NewNop(),
		addrs:      []string{cfg.Addr},
		supervisor: transport.NewSupervisor(),
		ctx:        context.Background(),
		running:    new(atomic.Bool),
		stopOnce:   new(sync.Once),
	}
}

// Logger sets the logger. Nothing is logged by default.
func (a *App) Logger(log *zap.Logger) *App {
	a.log = log
	return a
}

// Tracer sets the tracer provider every connection span is started from. Tracing is
// disabled by default.
func (a *App) Tracer(tp trace.TracerProvider) *App {
	a.tp = tp
	return a
}

// Listen adds one more address to listen at.
func (a *App) Listen(addr string) *App {
	a.addrs = append(a.addrs, addr)
	return a
}

// NotifyOnStart calls the callback as soon as all the listeners are accepting.
func (a *App) NotifyOnStart(cb func()) *App {
	a.hooks.OnStart = cb
	return a
}

// NotifyOnStop calls the callback after all the listeners are closed and every connection
// is served.
func (a *App) NotifyOnStop(cb func()) *App {
	a.hooks.OnStop = cb
	return a
}

// Bind binds every address and prepares the router. Nil router serves static files as
// the config says.
func (a *App) Bind(r router.Router) error {
	if r == nil {
		r = static.New(a.cfg.Static.Root, a.cfg.Static.Index)
	}

	srv := server.New(r, a.cfg, a.log.Named("server"), a.tp)

	for _, addr := range a.addrs {
		tcp := transport.NewTCP(a.cfg.NET.MaxConns, a.log.Named("transport"))
		if err := a.supervisor.Add(addr, tcp, a.newCallback(srv)); err != nil {
			return errors.Wrapf(err, "bind %s", addr)
		}

		a.tcps = append(a.tcps, tcp)
		a.log.Info("listening", zap.String("addr", tcp.Addr().String()))
	}

	a.bound = true
	return nil
}

// Addrs returns the bound addresses. This is useful when binding to port 0.
func (a *App) Addrs() []net.Addr {
	addrs := make([]net.Addr, len(a.tcps))
	for i, tcp := range a.tcps {
		addrs[i] = tcp.Addr()
	}

	return addrs
}

// Run serves the bound listeners until Stop is called, the context is done or a listener
// fails. Connections in progress are served till the end before returning.
func (a *App) Run(ctx context.Context) error {
	if !a.bound {
		return ErrNotBound
	}

	a.ctx = ctx
	a.running.Store(true)
	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			a.Stop()
		case <-done:
		}
	}()

	callIfNotNil(a.hooks.OnStart)
	err := a.supervisor.Run(a.cfg.NET)
	callIfNotNil(a.hooks.OnStop)

	if err != nil {
		a.log.Error("listener failed", zap.Error(err))
	}

	return err
}

// Serve binds and runs at once.
func (a *App) Serve(ctx context.Context, r router.Router) error {
	if err := a.Bind(r); err != nil {
		return err
	}

	return a.Run(ctx)
}

// Stop stops accepting new connections and waits for the current ones to be served. It
// is safe to call more than once.
func (a *App) Stop() {
	a.stopOnce.Do(func() {
		if a.running.Load() {
			a.supervisor.Stop()
			return
		}

		for _, tcp := range a.tcps {
			tcp.Close()
		}
	})
}

func (a *App) newCallback(srv *server.Server) func(net.Conn) {
	return func(conn net.Conn) {
		client := transport.NewClient(conn, a.cfg.NET.ReadTimeout, make([]byte, a.cfg.NET.ReadBufferSize))
		srv.Serve(a.ctx, client)
	}
}

func callIfNotNil(f func()) {
	if f != nil {
		f()
	}
}
