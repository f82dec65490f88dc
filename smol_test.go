package smol

import (
	"context"
	"io"
	"net"
	stdhttp "net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/carlmjohnson/requests"
	"github.com/dchest/uniuri"
	"github.com/indigo-web/smol/config"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newWWW(t *testing.T) (root, index string) {
	root = t.TempDir()
	index = "<h1>" + uniuri.New() + "</h1>"
	require.NoError(t, os.WriteFile(filepath.Join(root, "index.html"), []byte(index), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "style.css"), []byte("body{}"), 0o644))
	return root, index
}

func rawRequest(t *testing.T, addr, request string) string {
	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetDeadline(time.Now().Add(5*time.Second)))
	_, err = conn.Write([]byte(request))
	require.NoError(t, err)

	response, err := io.ReadAll(conn)
	require.NoError(t, err)
	return string(response)
}

func TestApp(t *testing.T) {
	root, index := newWWW(t)

	cfg := config.Default()
	cfg.Addr = "127.0.0.1:0"
	cfg.Static.Root = root
	cfg.NET.AcceptLoopInterruptPeriod = 50 * time.Millisecond

	started, stopped := make(chan struct{}), make(chan struct{})
	app := New(cfg).
		Logger(zaptest.NewLogger(t)).
		NotifyOnStart(func() { close(started) }).
		NotifyOnStop(func() { close(stopped) })
	require.NoError(t, app.Bind(nil))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runErr := make(chan error, 1)
	go func() {
		runErr <- app.Run(ctx)
	}()
	<-started

	addr := app.Addrs()[0].String()
	client := &stdhttp.Client{Transport: &stdhttp.Transport{DisableKeepAlives: true}}
	url := "http://" + addr

	t.Run("index", func(t *testing.T) {
		var body string
		headers := stdhttp.Header{}
		err := requests.URL(url).
			Client(client).
			CopyHeaders(headers).
			ToString(&body).
			Fetch(context.Background())
		require.NoError(t, err)
		require.Equal(t, index, body)
		require.Equal(t, "text/html; charset=utf-8", headers.Get("Content-Type"))
	})

	t.Run("stylesheet", func(t *testing.T) {
		var body string
		headers := stdhttp.Header{}
		err := requests.URL(url).
			Path("/style.css").
			Client(client).
			CopyHeaders(headers).
			ToString(&body).
			Fetch(context.Background())
		require.NoError(t, err)
		require.Equal(t, "body{}", body)
		require.Equal(t, "text/css; charset=utf-8", headers.Get("Content-Type"))
	})

	t.Run("not found", func(t *testing.T) {
		var body string
		err := requests.URL(url).
			Path("/missing.html").
			Client(client).
			CheckStatus(stdhttp.StatusNotFound).
			ToString(&body).
			Fetch(context.Background())
		require.NoError(t, err)
		require.Equal(t, "Not Found", body)
	})

	t.Run("method not allowed", func(t *testing.T) {
		err := requests.URL(url).
			Client(client).
			BodyBytes([]byte("hello")).
			Fetch(context.Background())
		require.True(t, requests.HasStatusErr(err, stdhttp.StatusMethodNotAllowed))
	})

	t.Run("expect continue", func(t *testing.T) {
		response := rawRequest(t, addr,
			"PUT /upload HTTP/1.1\r\nExpect: 100-continue\r\nContent-Length: 5\r\n\r\nhello",
		)
		require.True(t, strings.HasPrefix(response, "HTTP/1.1 100 Continue\r\n\r\nHTTP/1.1 405 Method Not Allowed\r\n"))
		require.Contains(t, response, "\r\nAllow: GET\r\n")
	})

	t.Run("bad request", func(t *testing.T) {
		response := rawRequest(t, addr, "HELLO\r\n\r\n")
		require.Equal(t,
			"HTTP/1.1 400 Bad Request\r\nContent-Type: text/plain\r\nContent-Length: 11\r\n\r\nBad Request",
			response,
		)
	})

	t.Run("concurrent", func(t *testing.T) {
		var wg sync.WaitGroup
		errs := make(chan error, 16)

		for range 16 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				var body string
				err := requests.URL(url).Client(client).ToString(&body).Fetch(context.Background())
				if err == nil && body != index {
					err = io.ErrUnexpectedEOF
				}
				errs <- err
			}()
		}

		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}
	})

	cancel()
	select {
	case err := <-runErr:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		require.Fail(t, "app did not stop on time")
	}

	<-stopped
	app.Stop()

	_, err := net.DialTimeout("tcp", addr, 200*time.Millisecond)
	require.Error(t, err)
}

func TestAppNotBound(t *testing.T) {
	require.ErrorIs(t, New(nil).Run(context.Background()), ErrNotBound)
}

func TestAppBindFailure(t *testing.T) {
	cfg := config.Default()
	cfg.Addr = "127.0.0.1:0"
	app := New(cfg).Listen("127.0.0.1:-1")
	require.Error(t, app.Bind(nil))
	app.Stop()
}
