package dummy

import (
	"bytes"
	"io"
	"net"

	"github.com/indigo-web/smol/transport"
)

var _ transport.Client = new(Client)

// Client returns the chunks it was initialised with, one per read, and io.EOF after
// them, unless set to loop over. It also journals everything written into it, making
// it thereby a universal mock suitable for most of the tests.
type Client struct {
	closed  bool
	loop    bool
	failure error
	pointer int
	tmp     []byte
	written bytes.Buffer
	data    [][]byte
	remote  net.Addr
}

func NewMockClient(data ...[]byte) *Client {
	return &Client{
		data: data,
	}
}

// NewStringClient splits the concatenated strings into parts of at most n bytes each.
// Non-positive n keeps the strings as separate chunks.
func NewStringClient(n int, data ...string) *Client {
	var chunks [][]byte
	if n <= 0 {
		for _, str := range data {
			chunks = append(chunks, []byte(str))
		}

		return NewMockClient(chunks...)
	}

	joined := []byte{}
	for _, str := range data {
		joined = append(joined, str...)
	}

	for len(joined) > n {
		chunks = append(chunks, joined[:n])
		joined = joined[n:]
	}

	if len(joined) > 0 {
		chunks = append(chunks, joined)
	}

	return NewMockClient(chunks...)
}

// LoopReads makes the client start over instead of returning io.EOF.
func (c *Client) LoopReads() *Client {
	c.loop = true
	return c
}

// FailWith makes the client return err instead of io.EOF once the chunks are over.
func (c *Client) FailWith(err error) *Client {
	c.failure = err
	return c
}

// WithRemote sets the address returned by Remote.
func (c *Client) WithRemote(addr net.Addr) *Client {
	c.remote = addr
	return c
}

func (c *Client) Read() (data []byte, err error) {
	if c.closed {
		return nil, io.EOF
	}

	if len(c.tmp) > 0 {
		data, c.tmp = c.tmp, nil

		return data, nil
	}

	if c.pointer >= len(c.data) {
		if !c.loop || len(c.data) == 0 {
			if c.failure != nil {
				return nil, c.failure
			}

			return nil, io.EOF
		}

		c.pointer = 0
	}

	piece := c.data[c.pointer]
	c.pointer++

	return piece, nil
}

func (c *Client) Pushback(takeback []byte) {
	c.tmp = takeback
}

func (c *Client) Write(p []byte) (int, error) {
	if c.closed {
		return 0, net.ErrClosed
	}

	return c.written.Write(p)
}

func (c *Client) ReadFrom(r io.Reader) (int64, error) {
	if c.closed {
		return 0, net.ErrClosed
	}

	return c.written.ReadFrom(r)
}

// Written returns everything written into the client so far.
func (c *Client) Written() string {
	return c.written.String()
}

func (c *Client) Conn() net.Conn {
	return nil
}

func (c *Client) Remote() net.Addr {
	return c.remote
}

func (c *Client) Close() error {
	c.closed = true
	return nil
}

// Closed reports whether Close was called.
func (c *Client) Closed() bool {
	return c.closed
}
