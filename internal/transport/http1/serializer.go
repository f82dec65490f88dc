package http1

import (
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/indigo-web/smol/http"
	"github.com/indigo-web/smol/http/mime"
	"github.com/indigo-web/smol/http/status"
	"github.com/indigo-web/smol/internal/response"
)

const (
	protocol      = "HTTP/1.1 "
	colonsp       = ": "
	contentType   = "Content-Type"
	contentLength = "Content-Length"
)

// minimalBuffSize defines the minimal size of the write buffer. Smaller buffers are
// silently grown up to it.
const minimalBuffSize = 128

// Serializer renders responses and writes them out. The header section and small bodies
// leave in a single write; bigger bodies are written or streamed right after.
type Serializer struct {
	buff []byte
	dst  io.Writer
}

func NewSerializer(buff []byte) *Serializer {
	if cap(buff) < minimalBuffSize {
		buff = make([]byte, 0, minimalBuffSize)
	}

	return &Serializer{
		buff: buff[:0],
	}
}

// Send writes the response into w. A response can be sent only once; later attempts fail
// with http.ErrResponseState. A streamed body is closed before returning, regardless of
// the outcome.
func (s *Serializer) Send(w io.Writer, resp *http.Response) (err error) {
	fields := resp.Reveal()
	if fields.State != response.Built {
		return errors.Mark(
			errors.AssertionFailedf("sending a response in state %q", fields.State.String()),
			http.ErrResponseState,
		)
	}

	defer func() {
		if err != nil {
			fields.State = response.Failed
		}
	}()

	if fields.Body != nil {
		defer func() {
			if closeErr := fields.Body.Close(); err == nil && closeErr != nil {
				err = errors.Wrap(closeErr, "close body")
			}
		}()
	}

	defer s.clear()

	if err = prepareHeaders(fields); err != nil {
		return err
	}

	s.dst = w
	s.renderResponseLine(fields)
	s.renderHeaders(fields)
	s.crlf()
	fields.State = response.HeadersWritten

	if fields.Body != nil {
		declared := fields.Body.Len()
		n, err := fields.Body.WriteTo(bodyWriter{s})
		if err != nil && !errors.Is(err, io.EOF) {
			return errors.Wrap(err, "write body")
		}

		if n != declared {
			return errors.Mark(
				errors.AssertionFailedf("body of declared length %d produced %d bytes", declared, n),
				http.ErrResponseState,
			)
		}
	}

	fields.State = response.BodyWritten

	if err = s.flush(); err != nil {
		return errors.Wrap(err, "write")
	}

	fields.State = response.Sent
	return nil
}

// prepareHeaders ensures Content-Length matches the body and Content-Type is set for it.
func prepareHeaders(fields *response.Fields) error {
	var length int64
	if fields.Body != nil {
		length = fields.Body.Len()
	}

	value, hasLength := fields.Headers.Get(contentLength)
	if hasLength {
		declared, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil || declared != length {
			return errors.Mark(
				errors.AssertionFailedf("Content-Length %q disagrees with body length %d", value, length),
				http.ErrResponseState,
			)
		}
	}

	if fields.Body == nil {
		return nil
	}

	if !fields.Headers.Has(contentType) {
		fields.Headers.Add(contentType, mime.OctetStream)
	}

	if !hasLength {
		fields.Headers.Add(contentLength, strconv.FormatInt(length, 10))
	}

	return nil
}

func (s *Serializer) renderResponseLine(fields *response.Fields) {
	s.buff = append(s.buff, protocol...)
	s.buff = append(s.buff, status.Line(fields.Code, fields.Status)...)
	s.crlf()
}

func (s *Serializer) renderHeaders(fields *response.Fields) {
	for key, value := range fields.Headers.Pairs() {
		s.buff = append(s.buff, key...)
		s.buff = append(s.buff, colonsp...)
		s.buff = append(s.buff, value...)
		s.crlf()
	}
}

func (s *Serializer) crlf() {
	s.buff = append(s.buff, crlf...)
}

func (s *Serializer) flush() error {
	if len(s.buff) == 0 {
		return nil
	}

	_, err := s.dst.Write(s.buff)
	s.buff = s.buff[:0]

	return err
}

func (s *Serializer) clear() {
	s.buff = s.buff[:0]
	s.dst = nil
}

// bodyWriter appends writes fitting into the serializer's buffer and sends bigger ones
// straight through. Copies from readers go to the destination's ReadFrom, if it has one.
type bodyWriter struct {
	s *Serializer
}

func (b bodyWriter) Write(p []byte) (int, error) {
	s := b.s
	if len(s.buff)+len(p) <= cap(s.buff) {
		s.buff = append(s.buff, p...)
		return len(p), nil
	}

	if err := s.flush(); err != nil {
		return 0, err
	}

	return s.dst.Write(p)
}

func (b bodyWriter) ReadFrom(r io.Reader) (int64, error) {
	if err := b.s.flush(); err != nil {
		return 0, err
	}

	if rf, ok := b.s.dst.(io.ReaderFrom); ok {
		return rf.ReadFrom(r)
	}

	return io.Copy(b.s.dst, r)
}
