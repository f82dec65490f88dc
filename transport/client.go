package transport

import (
	"io"
	"net"
	"time"

	"github.com/indigo-web/smol/internal/timer"
)

// Client is a single accepted connection as seen by the server.
type Client interface {
	// Read returns the next chunk of data. The chunk stays valid until the following
	// call only.
	Read() ([]byte, error)
	// Pushback makes the next Read return b instead of reading from the connection.
	Pushback(b []byte)
	Write([]byte) (int, error)
	// ReadFrom copies r into the connection, letting it pick the fastest way.
	io.ReaderFrom
	Conn() net.Conn
	Remote() net.Addr
	Close() error
}

type client struct {
	conn    net.Conn
	buff    []byte
	pending []byte
	timeout time.Duration
}

func NewClient(conn net.Conn, timeout time.Duration, buff []byte) Client {
	return &client{
		buff:    buff,
		conn:    conn,
		timeout: timeout,
	}
}

// Read reads data into the internal buffer and returns a piece of it back. Timeouts are also
// handled automatically.
func (c *client) Read() ([]byte, error) {
	if len(c.pending) > 0 {
		pending := c.pending
		c.pending = nil

		return pending, nil
	}

	if err := c.conn.SetReadDeadline(timer.Now().Add(c.timeout)); err != nil {
		return nil, err
	}

	n, err := c.conn.Read(c.buff)
	return c.buff[:n], err
}

// Pushback preserves a chunk of data from previous read for the next read.
func (c *client) Pushback(b []byte) {
	c.pending = b
}

// Conn unwraps the underlying net.Conn.
func (c *client) Conn() net.Conn {
	return c.conn
}

// Write writes data into the underlying connection.
func (c *client) Write(b []byte) (int, error) {
	return c.conn.Write(b)
}

// ReadFrom hands the copy over to the connection. For *net.TCPConn and regular files this
// ends up in sendfile(2).
func (c *client) ReadFrom(r io.Reader) (int64, error) {
	if rf, ok := c.conn.(io.ReaderFrom); ok {
		return rf.ReadFrom(r)
	}

	return io.Copy(c.conn, r)
}

// Remote returns the remote address of the connection.
func (c *client) Remote() net.Addr {
	return c.conn.RemoteAddr()
}

// Close closes the connection.
func (c *client) Close() error {
	return c.conn.Close()
}
