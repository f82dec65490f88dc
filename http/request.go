package http

import (
	"strconv"
	"strings"

	"github.com/indigo-web/smol/kv"
)

// Request is the parsed request line and header section of a single exchange. It must
// be treated as read-only once returned by the parser.
type Request struct {
	// Method is always upper-cased.
	Method string
	// Path is the request target exactly as it was received.
	Path  string
	Proto string
	// Headers hold lower-cased names. Each name appears at most once.
	Headers *kv.Storage
}

func NewRequest(method, path, proto string, headers *kv.Storage) *Request {
	if headers == nil {
		headers = kv.New()
	}

	return &Request{
		Method:  method,
		Path:    path,
		Proto:   proto,
		Headers: headers,
	}
}

// ContentLength returns the value of the Content-Length header. Values that aren't a
// valid non-negative decimal number are considered 0.
func (r *Request) ContentLength() int64 {
	value, found := r.Headers.Get("content-length")
	if !found {
		return 0
	}

	length, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || length < 0 {
		return 0
	}

	return length
}

// ExpectsContinue reports whether the client waits for an interim 100 Continue before
// sending the body.
func (r *Request) ExpectsContinue() bool {
	return strings.Contains(strings.ToLower(r.Headers.Value("expect")), "100-continue")
}

// Respond returns a fresh response builder.
func (r *Request) Respond() *Response {
	return NewResponse()
}
