package static

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dchest/uniuri"
	"github.com/indigo-web/smol/http"
	"github.com/indigo-web/smol/http/method"
	"github.com/indigo-web/smol/http/status"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func newRoot(t *testing.T) (root, index string) {
	dir := t.TempDir()
	root = filepath.Join(dir, "www")
	require.NoError(t, os.Mkdir(root, 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(root, "docs"), 0o755))

	index = "<h1>" + uniuri.New() + "</h1>"
	require.NoError(t, os.WriteFile(filepath.Join(root, "index.html"), []byte(index), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "docs", "guide.md"), []byte("# guide"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "secret.txt"), []byte("secret"), 0o644))

	return root, index
}

func get(path string) *http.Request {
	return http.NewRequest("GET", path, "HTTP/1.1", nil)
}

func TestStatic(t *testing.T) {
	root, index := newRoot(t)
	r := New(root, "index.html")

	t.Run("index", func(t *testing.T) {
		fields := r.OnRequest(get("/")).Reveal()
		require.Equal(t, status.OK, fields.Code)
		require.Equal(t, int64(len(index)), fields.Body.Len())
		require.Equal(t, "text/html; charset=utf-8", fields.Headers.Value("content-type"))
		require.NoError(t, fields.Body.Close())
	})

	t.Run("nested file", func(t *testing.T) {
		fields := r.OnRequest(get("/docs/guide.md?version=2")).Reveal()
		require.Equal(t, status.OK, fields.Code)
		require.Equal(t, int64(len("# guide")), fields.Body.Len())
		require.NoError(t, fields.Body.Close())
	})

	t.Run("missing file", func(t *testing.T) {
		fields := r.OnRequest(get("/nope.html")).Reveal()
		require.Equal(t, status.NotFound, fields.Code)
		require.Equal(t, int64(9), fields.Body.Len())
	})

	t.Run("directory", func(t *testing.T) {
		fields := r.OnRequest(get("/docs")).Reveal()
		require.Equal(t, status.NotFound, fields.Code)
	})

	t.Run("traversal", func(t *testing.T) {
		for _, path := range []string{"/../secret.txt", "/docs/../../secret.txt", "/..", "/%2e%2e/secret.txt"} {
			fields := r.OnRequest(get(path)).Reveal()
			require.Equal(t, status.NotFound, fields.Code, path)
		}
	})

	t.Run("method not allowed", func(t *testing.T) {
		for _, m := range lo.Without(method.List, method.GET) {
			request := http.NewRequest(m, "/", "HTTP/1.1", nil)
			fields := r.OnRequest(request).Reveal()
			require.Equal(t, status.MethodNotAllowed, fields.Code, m)
			require.Equal(t, "GET", fields.Headers.Value("allow"))
			require.Equal(t, int64(len("Method Not Allowed")), fields.Body.Len())
		}
	})

	t.Run("parse error", func(t *testing.T) {
		fields := r.OnError(nil, http.ErrMalformedRequestLine).Reveal()
		require.Equal(t, status.BadRequest, fields.Code)
		require.Equal(t, int64(len("Bad Request")), fields.Body.Len())
	})
}

func TestResolve(t *testing.T) {
	root := t.TempDir()
	r := New(root, "main.html")

	tcs := []struct {
		Target string
		Want   string
		OK     bool
	}{
		{"/", filepath.Join(root, "main.html"), true},
		{"/a/b.css", filepath.Join(root, "a", "b.css"), true},
		{"/a/../b.css", filepath.Join(root, "b.css"), true},
		{"//b.css", filepath.Join(root, "b.css"), true},
		{"/?q=1", filepath.Join(root, "main.html"), true},
		{"/../etc/passwd", "", false},
		{"*", "", false},
		{"http://example.com/", "", false},
		{"/a\x00b", "", false},
	}

	for _, tc := range tcs {
		path, ok := r.Resolve(tc.Target)
		require.Equal(t, tc.OK, ok, tc.Target)
		require.Equal(t, tc.Want, path, tc.Target)
	}
}
