package dummy

import (
	"bytes"
	"io"
	"net"
	"time"
)

var _ net.Conn = new(Conn)

// Conn reads the data it was initialised with and collects everything written.
type Conn struct {
	Data   []byte
	reader *bytes.Reader
	closed bool
}

func NewConn(input string) *Conn {
	return &Conn{reader: bytes.NewReader([]byte(input))}
}

func (c *Conn) Read(b []byte) (n int, err error) {
	if c.reader == nil || c.closed {
		return 0, io.EOF
	}

	return c.reader.Read(b)
}

func (c *Conn) Write(b []byte) (n int, err error) {
	c.Data = append(c.Data, b...)
	return len(b), nil
}

func (c *Conn) Close() error {
	c.closed = true
	return nil
}

func (c *Conn) LocalAddr() net.Addr {
	return nil
}

func (c *Conn) RemoteAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 4242}
}

func (c *Conn) SetDeadline(time.Time) error {
	return nil
}

func (c *Conn) SetReadDeadline(time.Time) error {
	return nil
}

func (c *Conn) SetWriteDeadline(time.Time) error {
	return nil
}
