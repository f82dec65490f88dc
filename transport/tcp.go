package transport

import (
	"net"
	"os"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/indigo-web/smol/config"
	"go.uber.org/zap"
)

type listener interface {
	net.Listener
	SetDeadline(t time.Time) error
}

// retryDelay is how long the accept loop sleeps after a failed Accept that is
// worth retrying, e.g. when the process ran out of file descriptors.
const retryDelay = 50 * time.Millisecond

type TCP struct {
	l        listener
	wg       *sync.WaitGroup
	stop     *atomic.Bool
	maxConns int
	log      *zap.Logger
}

// NewTCP returns a TCP transport serving at most maxConns connections at once. Zero
// means no limit.
func NewTCP(maxConns int, log *zap.Logger) *TCP {
	tcp := newTCP(nil, log)
	tcp.maxConns = maxConns
	return &tcp
}

func newTCP(l listener, log *zap.Logger) TCP {
	if log == nil {
		log = zap.NewNop()
	}

	return TCP{
		l:    l,
		wg:   new(sync.WaitGroup),
		stop: new(atomic.Bool),
		log:  log,
	}
}

func bindTCP(addr string) (*net.TCPListener, error) {
	tcpaddr, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve %s", addr)
	}

	l, err := net.ListenTCP("tcp", tcpaddr)
	return l, errors.Wrapf(err, "listen %s", addr)
}

func (t *TCP) Bind(addr string) error {
	l, err := bindTCP(addr)
	if err != nil {
		return err
	}

	t.l = l
	if t.maxConns > 0 {
		t.l = newLimitedListener(l, t.maxConns)
	}

	return nil
}

// Addr returns the address the transport is bound to. It is useful when binding to
// port 0.
func (t *TCP) Addr() net.Addr {
	return t.l.Addr()
}

func (t *TCP) Listen(cfg config.NET, cb func(conn net.Conn)) error {
	for !t.stop.Load() {
		// the cached clock lags behind by up to its resolution, which is too coarse for
		// short interrupt periods
		err := t.l.SetDeadline(time.Now().Add(cfg.AcceptLoopInterruptPeriod))
		if err != nil {
			return errors.Wrap(err, "set accept deadline")
		}

		conn, err := t.l.Accept()
		if err != nil {
			if errors.Is(err, os.ErrDeadlineExceeded) {
				continue
			}

			if t.stop.Load() && errors.Is(err, net.ErrClosed) {
				return nil
			}

			if isTemporary(err) {
				t.log.Warn("accept failed, retrying", zap.Error(err))
				time.Sleep(retryDelay)
				continue
			}

			return errors.Wrap(err, "accept")
		}

		t.wg.Add(1)
		go func(conn net.Conn) {
			defer t.wg.Done()
			cb(conn)
			_ = conn.Close()
		}(conn)
	}

	return nil
}

func (t *TCP) Stop() {
	t.stop.Store(true)
}

func (t *TCP) Close() {
	if t.l != nil {
		_ = t.l.Close()
	}
}

func (t *TCP) Wait() {
	t.wg.Wait()
}

// isTemporary reports whether the accept failed because of running out of file
// descriptors. Such failures usually go away once some connections are closed.
func isTemporary(err error) bool {
	return errors.Is(err, syscall.EMFILE) || errors.Is(err, syscall.ENFILE)
}
