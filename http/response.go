package http

import (
	"io"
	"io/fs"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/indigo-web/smol/http/mime"
	"github.com/indigo-web/smol/http/status"
	"github.com/indigo-web/smol/internal/response"
	"github.com/indigo-web/smol/kv"
	"github.com/indigo-web/utils/uf"
)

// why 4? Content-Type, Content-Length and a couple of custom ones fit.
const preallocRespHeaders = 4

// Response is a builder of a single response. It is consumed by exactly one send; the
// writer owns closing a streamed body from then on.
type Response struct {
	fields *response.Fields
}

// NewResponse returns a new instance of the Response object with status code set to 200 OK
// and no body.
func NewResponse() *Response {
	return &Response{
		&response.Fields{
			Code:    status.OK,
			Headers: kv.NewPrealloc(preallocRespHeaders),
		},
	}
}

// Code sets a Response code. The status text is derived from it unless set explicitly via
// Status.
func (r *Response) Code(code status.Code) *Response {
	r.fields.Code = code
	return r
}

// Status sets a custom status text.
func (r *Response) Status(status status.Status) *Response {
	r.fields.Status = status
	return r
}

// Header sets the header value. An already present header with the same name compared
// case-insensitively is replaced in place, otherwise the header is appended.
func (r *Response) Header(key, value string) *Response {
	r.fields.Headers.Set(key, value)
	return r
}

// ContentType sets the Content-Type header value.
func (r *Response) ContentType(value mime.MIME) *Response {
	return r.Header("Content-Type", value)
}

// String sets the response's body to the passed string. The Content-Type defaults to
// text/plain.
func (r *Response) String(body string) *Response {
	if !r.fields.Headers.Has("content-type") {
		r.ContentType(mime.Plain)
	}

	return r.Bytes(uf.S2B(body))
}

// Bytes sets the response's body to passed slice WITHOUT COPYING. Changing the passed
// slice later will affect the response by itself
func (r *Response) Bytes(body []byte) *Response {
	return r.Body(bytesBody(body))
}

// Stream sets the response's body to the reader, from which exactly size bytes will be
// copied. If the reader is an io.Closer, it'll be closed after the response is sent.
func (r *Response) Stream(reader io.Reader, size int64) *Response {
	return r.Body(streamBody{reader: reader, size: size})
}

// Body sets an arbitrary body. A previously set streamed body is not closed.
func (r *Response) Body(body Body) *Response {
	r.fields.Body = body
	return r
}

// TryFile opens the file for reading and streams it as the body. The Content-Type is
// guessed by the file extension. Missing files, directories and files the process has no
// access to result in status.ErrNotFound.
func (r *Response) TryFile(path string) (*Response, error) {
	fd, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return r, errors.Wrap(status.ErrNotFound, path)
		}

		return r, errors.Mark(errors.Wrap(err, "open"), status.ErrInternalServerError)
	}

	stat, err := fd.Stat()
	if err != nil {
		_ = fd.Close()
		return r, errors.Mark(errors.Wrap(err, "stat"), status.ErrInternalServerError)
	}

	if stat.IsDir() {
		_ = fd.Close()
		return r, errors.Wrap(status.ErrNotFound, path)
	}

	return r.
		ContentType(mime.Guess(path)).
		Stream(fd, stat.Size()), nil
}

// File does the same as TryFile does, except returned error is being implicitly wrapped
// by Error
func (r *Response) File(path string) *Response {
	resp, err := r.TryFile(path)
	if err != nil {
		return r.Error(err)
	}

	return resp
}

// Error turns the response into a plain-text one with the status derived from the error.
// status.HTTPError anywhere in the chain sets its code, anything else results in 500
// Internal Server Error. The body is the status text. Nil error is a no-op.
func (r *Response) Error(err error) *Response {
	if err == nil {
		return r
	}

	code := status.InternalServerError
	var httpErr status.HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
	}

	r.fields.Headers.Clear()
	r.fields.Status = ""

	return r.
		Code(code).
		ContentType(mime.Plain).
		String(string(status.Text(code)))
}

// Sent reports whether the response has left the Built state.
func (r *Response) Sent() bool {
	return r.fields.State != response.Built
}

// Reveal returns a struct with values, filled by builder. Used mostly in internal purposes
func (r *Response) Reveal() *response.Fields {
	return r.fields
}

// Respond is a predicate to request.Respond(). May be used as a dummy handler
func Respond(request *Request) *Response {
	return request.Respond()
}

// Code is a predicate to request.Respond().Code(...)
func Code(request *Request, code status.Code) *Response {
	return request.Respond().Code(code)
}

// String is a predicate to request.Respond().String(...)
func String(request *Request, str string) *Response {
	return request.Respond().String(str)
}

// File is a predicate to request.Respond().File(...)
func File(request *Request, path string) *Response {
	return request.Respond().File(path)
}

// Error is a predicate to request.Respond().Error(...)
func Error(request *Request, err error) *Response {
	return request.Respond().Error(err)
}
