package response

import (
	"io"

	"github.com/indigo-web/smol/http/status"
	"github.com/indigo-web/smol/kv"
)

// State tracks how far a response has gone on its way to the wire. A response only
// moves forward, one state at a time. Any failure moves it to Failed, which is final.
type State uint8

const (
	Built State = iota
	HeadersWritten
	BodyWritten
	Sent
	Failed
)

func (s State) String() string {
	switch s {
	case Built:
		return "built"
	case HeadersWritten:
		return "headers written"
	case BodyWritten:
		return "body written"
	case Sent:
		return "sent"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Body is a response payload whose length is known before the first byte is written.
type Body interface {
	// Len returns the exact number of bytes WriteTo is going to produce.
	Len() int64
	io.WriterTo
	io.Closer
}

type Fields struct {
	Headers *kv.Storage
	Body    Body
	Status  status.Status
	Code    status.Code
	State   State
}
