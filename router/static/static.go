package static

import (
	"path/filepath"
	"strings"

	"github.com/indigo-web/smol/http"
	"github.com/indigo-web/smol/http/method"
	"github.com/indigo-web/smol/http/status"
	"github.com/indigo-web/smol/router"
)

const allowed = method.GET

var _ router.Router = new(Static)

// Static serves files from the root directory. Only GET requests are allowed.
type Static struct {
	root  string
	index string
}

// New returns a router serving files from root. The "/" path is answered with the index
// file.
func New(root, index string) *Static {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}

	return &Static{
		root:  filepath.Clean(root),
		index: index,
	}
}

func (s *Static) OnRequest(request *http.Request) *http.Response {
	if request.Method != allowed {
		return request.Respond().
			Error(status.ErrMethodNotAllowed).
			Header("Allow", allowed)
	}

	path, ok := s.Resolve(request.Path)
	if !ok {
		return request.Respond().Error(status.ErrNotFound)
	}

	return request.Respond().File(path)
}

func (s *Static) OnError(request *http.Request, err error) *http.Response {
	if request == nil {
		return http.NewResponse().Error(err)
	}

	return request.Respond().Error(err)
}

// Resolve maps the request target to a file path under the root. The query is ignored.
// Targets escaping the root, as well as those not starting with a slash, aren't
// resolved.
func (s *Static) Resolve(target string) (string, bool) {
	target, _, _ = strings.Cut(target, "?")
	if !strings.HasPrefix(target, "/") || strings.ContainsRune(target, 0) {
		return "", false
	}

	if target == "/" {
		target += s.index
	}

	path := filepath.Join(s.root, filepath.FromSlash(strings.TrimLeft(target, "/")))
	rel, err := filepath.Rel(s.root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}

	return path, true
}
