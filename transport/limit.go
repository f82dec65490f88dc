package transport

import (
	"net"

	"golang.org/x/net/netutil"
)

// limitedListener caps the number of simultaneously accepted connections. Deadlines are
// still set on the raw listener, as the limiting one doesn't expose them.
type limitedListener struct {
	*net.TCPListener
	limited net.Listener
}

func newLimitedListener(l *net.TCPListener, n int) limitedListener {
	return limitedListener{
		TCPListener: l,
		limited:     netutil.LimitListener(l, n),
	}
}

func (l limitedListener) Accept() (net.Conn, error) {
	return l.limited.Accept()
}

func (l limitedListener) Close() error {
	return l.limited.Close()
}
