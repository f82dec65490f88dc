package transport

import (
	"io"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/indigo-web/smol/config"
	"github.com/stretchr/testify/require"
)

func testNET() config.NET {
	cfg := config.Default().NET
	cfg.AcceptLoopInterruptPeriod = 20 * time.Millisecond
	return cfg
}

func TestTCP(t *testing.T) {
	t.Run("serve and stop", func(t *testing.T) {
		tcp := NewTCP(0, nil)
		require.NoError(t, tcp.Bind("127.0.0.1:0"))

		served := new(atomic.Int32)
		done := runParallel(func() error {
			return tcp.Listen(testNET(), func(conn net.Conn) {
				served.Add(1)
				_, _ = conn.Write([]byte("hi"))
			})
		})

		conn, err := net.Dial("tcp", tcp.Addr().String())
		require.NoError(t, err)
		data, err := io.ReadAll(conn)
		require.NoError(t, err)
		require.Equal(t, "hi", string(data))
		require.NoError(t, conn.Close())

		tcp.Stop()
		select {
		case err = <-done:
			require.NoError(t, err)
		case <-time.After(time.Second):
			require.Fail(t, "accept loop did not stop")
		}

		tcp.Wait()
		tcp.Close()
		require.Equal(t, int32(1), served.Load())
	})

	t.Run("connection limit", func(t *testing.T) {
		tcp := NewTCP(1, nil)
		require.NoError(t, tcp.Bind("127.0.0.1:0"))

		active, peak := new(atomic.Int32), new(atomic.Int32)
		done := runParallel(func() error {
			return tcp.Listen(testNET(), func(conn net.Conn) {
				n := active.Add(1)
				if n > peak.Load() {
					peak.Store(n)
				}
				time.Sleep(30 * time.Millisecond)
				active.Add(-1)
				_, _ = conn.Write([]byte("ok"))
			})
		})

		results := make(chan string, 3)
		for range 3 {
			go func() {
				conn, err := net.Dial("tcp", tcp.Addr().String())
				if err != nil {
					results <- err.Error()
					return
				}
				defer conn.Close()
				data, _ := io.ReadAll(conn)
				results <- string(data)
			}()
		}

		for range 3 {
			select {
			case got := <-results:
				require.Equal(t, "ok", got)
			case <-time.After(2 * time.Second):
				require.Fail(t, "connection was not served")
			}
		}

		tcp.Stop()
		require.NoError(t, <-done)
		tcp.Wait()
		tcp.Close()
		require.Equal(t, int32(1), peak.Load())
	})
}
