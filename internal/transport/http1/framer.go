package http1

import (
	"bytes"
	"io"
	"iter"

	"github.com/cockroachdb/errors"
	"github.com/indigo-web/smol/http"
	"github.com/indigo-web/smol/internal/buffer"
	"github.com/indigo-web/smol/internal/transport"
)

var crlf = []byte("\r\n")

const initialBuffSize = 1024

var _ transport.Lines = new(Framer)

// Framer splits a chunked byte stream into CRLF-terminated lines. The sequence ends at
// the first empty line, which is never yielded; everything received past it is left
// intact and available via Remainder.
type Framer struct {
	source transport.Source
	buff   buffer.Buffer
	// scanned is how many bytes of the unconsumed data are known not to contain a
	// CRLF beginning.
	scanned int
	// framed is how many bytes of the header section were consumed as lines.
	framed  int
	maxSize int
	// readErr is a read error that came together with data. It is reported as soon
	// as the data is exhausted.
	readErr error
	err     error
	done    bool
}

// NewFramer returns a framer reading from the source. The header section, including
// the partial line being accumulated, must fit into maxSize bytes. Bytes past the
// terminating empty line don't count.
func NewFramer(source transport.Source, maxSize int) *Framer {
	return &Framer{
		source:  source,
		buff:    buffer.New(min(initialBuffSize, maxSize)),
		maxSize: maxSize,
	}
}

// Next returns the next line without the trailing CRLF. The line is valid until the next
// call. Already buffered lines are always returned before the source is read again.
func (f *Framer) Next() (line []byte, ok bool) {
	if f.done {
		return nil, false
	}

	for {
		data := f.buff.Unconsumed()
		if pos := bytes.Index(data[f.scanned:], crlf); pos != -1 {
			end := f.scanned + pos
			line = data[:end]
			f.buff.Consume(end + len(crlf))
			f.scanned = 0
			f.framed += end + len(crlf)

			if f.framed > f.maxSize {
				f.tooLarge(f.framed)
				return nil, false
			}

			if len(line) == 0 {
				f.done = true
				return nil, false
			}

			return line, true
		}

		// the trailing CR might be waiting for its LF in the next chunk
		f.scanned = max(len(data)-1, 0)

		if f.framed+len(data) > f.maxSize {
			f.tooLarge(f.framed + len(data))
			return nil, false
		}

		if !f.fill() {
			f.done = true
			return nil, false
		}
	}
}

// Lines returns the remaining lines as a range-able sequence.
func (f *Framer) Lines() iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		for {
			line, ok := f.Next()
			if !ok || !yield(line) {
				return
			}
		}
	}
}

// Err returns the reason the sequence ended prematurely, or nil if it ended on an empty
// line (or hasn't ended yet).
func (f *Framer) Err() error {
	return f.err
}

// Remainder returns the bytes received past the terminating empty line. The slice is
// owned by the framer and is valid until Reset.
func (f *Framer) Remainder() []byte {
	return f.buff.Unconsumed()
}

// Reset prepares the framer for a new stream, keeping the allocated buffer.
func (f *Framer) Reset(source transport.Source) {
	f.source = source
	f.buff.Clear()
	f.scanned = 0
	f.framed = 0
	f.readErr = nil
	f.err = nil
	f.done = false
}

func (f *Framer) fill() bool {
	if f.readErr != nil {
		f.fail(f.readErr)
		return false
	}

	data, err := f.source.Read()
	f.buff.Append(data)

	if err != nil {
		if len(data) > 0 {
			f.readErr = err
			return true
		}

		f.fail(err)
		return false
	}

	return true
}

func (f *Framer) fail(err error) {
	if errors.Is(err, io.EOF) {
		f.err = http.ErrConnectionClosedEarly
		return
	}

	f.err = errors.WithSecondaryError(errors.Wrap(http.ErrConnectionClosedEarly, "read"), err)
}

func (f *Framer) tooLarge(size int) {
	f.err = errors.Wrapf(http.ErrHeaderFieldsTooLarge, "exceeded %d bytes", size)
	f.done = true
}
