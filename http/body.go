package http

import (
	"io"

	"github.com/indigo-web/smol/internal/response"
)

type Body = response.Body

type bytesBody []byte

func (b bytesBody) Len() int64 {
	return int64(len(b))
}

func (b bytesBody) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b)
	return int64(n), err
}

func (bytesBody) Close() error {
	return nil
}

// streamBody copies exactly size bytes from the reader. The reader is closed by Close if
// it implements io.Closer.
type streamBody struct {
	reader io.Reader
	size   int64
}

func (s streamBody) Len() int64 {
	return s.size
}

func (s streamBody) WriteTo(w io.Writer) (int64, error) {
	// io.CopyN hands an *io.LimitedReader to w's ReadFrom, which lets a *net.TCPConn
	// serve an *os.File via sendfile
	return io.CopyN(w, s.reader, s.size)
}

func (s streamBody) Close() error {
	if closer, ok := s.reader.(io.Closer); ok {
		return closer.Close()
	}

	return nil
}
