package http1

import (
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/indigo-web/smol/http"
	"github.com/indigo-web/smol/internal/transport"
	"github.com/indigo-web/smol/kv"
)

const preallocHeaders = 8

// Parse consumes the header section from the lines and builds the request out of it.
// Parsing is strict: the request line must consist of exactly three non-empty tokens
// separated by single spaces, and every header line must contain a colon. Non-ASCII
// bytes are rejected anywhere.
func Parse(lines transport.Lines) (*http.Request, error) {
	requestLine, ok := lines.Next()
	if !ok {
		err := errors.Wrap(http.ErrMalformedRequestLine, "empty request")
		if cause := lines.Err(); cause != nil {
			err = errors.WithSecondaryError(err, cause)
		}

		return nil, err
	}

	method, path, proto, err := parseRequestLine(requestLine)
	if err != nil {
		return nil, err
	}

	headers := kv.NewPrealloc(preallocHeaders)

	for {
		line, ok := lines.Next()
		if !ok {
			break
		}

		key, value, err := parseHeaderLine(line)
		if err != nil {
			return nil, err
		}

		headers.Set(key, value)
	}

	if err = lines.Err(); err != nil {
		return nil, err
	}

	return http.NewRequest(method, path, proto, headers), nil
}

func parseRequestLine(line []byte) (method, path, proto string, err error) {
	if !isASCII(line) {
		return "", "", "", errors.Wrap(http.ErrMalformedRequestLine, "non-ASCII request line")
	}

	tokens := strings.Split(string(line), " ")
	if len(tokens) != 3 {
		return "", "", "", errors.Wrapf(http.ErrMalformedRequestLine, "want 3 tokens, got %d", len(tokens))
	}

	for _, token := range tokens {
		if len(token) == 0 {
			return "", "", "", errors.Wrap(http.ErrMalformedRequestLine, "empty token")
		}
	}

	return strings.ToUpper(tokens[0]), tokens[1], tokens[2], nil
}

func parseHeaderLine(line []byte) (key, value string, err error) {
	if !isASCII(line) {
		return "", "", errors.Wrap(http.ErrMalformedHeaderLine, "non-ASCII header line")
	}

	key, value, found := strings.Cut(string(line), ":")
	if !found {
		return "", "", errors.Wrapf(http.ErrMalformedHeaderLine, "no colon in %q", line)
	}

	return strings.ToLower(key), trimPrefixSpaces(value), nil
}

func trimPrefixSpaces(s string) string {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\r', '\n', '\v', '\f':
		default:
			return s[i:]
		}
	}

	return ""
}

func isASCII(b []byte) bool {
	for _, c := range b {
		if c >= utf8.RuneSelf {
			return false
		}
	}

	return true
}
