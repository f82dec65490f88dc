package transport

import (
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/indigo-web/smol/config"
	"github.com/stretchr/testify/require"
)

type transportMock struct {
	stopped     *atomic.Bool
	closed      *atomic.Bool
	once        bool
	loop        time.Duration
	returnError error
}

func newMock(loop time.Duration, returnError error, once bool) *transportMock {
	return &transportMock{
		stopped:     new(atomic.Bool),
		closed:      new(atomic.Bool),
		once:        once,
		loop:        loop,
		returnError: returnError,
	}
}

func (t *transportMock) Bind(string) error {
	return nil
}

func (t *transportMock) Listen(config.NET, func(conn net.Conn)) error {
	for !t.stopped.Load() && !t.once {
		time.Sleep(t.loop)
	}

	return t.returnError
}

func (t *transportMock) Stop() {
	t.stopped.Store(true)
}

func (t *transportMock) Close() {
	t.closed.Store(true)
}

func (t *transportMock) Wait() {}

func runParallel(fn func() error) chan error {
	c := make(chan error, 1)

	go func() {
		c <- fn()
	}()

	return c
}

func runAtMost(sup *Supervisor, timeout time.Duration) error {
	select {
	case err := <-runParallel(func() error {
		return sup.Run(config.Default().NET)
	}):
		return err
	case <-time.After(timeout):
		return errors.New("supervisor timed out")
	}
}

func TestSupervisor(t *testing.T) {
	newSupervisor := func(ts ...*transportMock) *Supervisor {
		sup := NewSupervisor()
		for _, transport := range ts {
			require.NoError(t, sup.Add("", transport, nil))
		}

		return &sup
	}

	t.Run("die without error", func(t *testing.T) {
		first, second := newMock(10*time.Millisecond, nil, false), newMock(10*time.Millisecond, nil, true)
		sup := newSupervisor(first, second)
		require.NoError(t, runAtMost(sup, 300*time.Millisecond))
		require.True(t, first.stopped.Load())
		require.True(t, first.closed.Load())
	})

	t.Run("die with error", func(t *testing.T) {
		failure := errors.New("listener exploded")
		sup := newSupervisor(
			newMock(10*time.Millisecond, nil, false),
			newMock(10*time.Millisecond, failure, true),
		)
		require.ErrorIs(t, runAtMost(sup, 300*time.Millisecond), failure)
	})

	t.Run("stop", func(t *testing.T) {
		sup := newSupervisor(
			newMock(10*time.Millisecond, nil, false),
			newMock(20*time.Millisecond, nil, false),
		)
		c := runParallel(func() error {
			return sup.Run(config.Default().NET)
		})
		time.Sleep(50 * time.Millisecond)
		c2 := runParallel(func() error {
			sup.Stop()
			return nil
		})

		select {
		case err := <-c2:
			require.NoError(t, err)
		case <-time.After(300 * time.Millisecond):
			require.Fail(t, "supervisor did not stop on time")
		}

		select {
		case err := <-c:
			require.NoError(t, err)
		case <-time.After(50 * time.Millisecond):
			require.Fail(t, "supervisor did not stop running on time")
		}
	})

	t.Run("no transports", func(t *testing.T) {
		sup := NewSupervisor()
		require.NoError(t, sup.Run(config.Default().NET))
	})
}
