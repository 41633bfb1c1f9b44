package session

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Listener is a host waiting for its guest.
type Listener struct {
	ln   net.Listener
	size int
	log  zerolog.Logger
}

// Listen binds the host address. Cancelling ctx stops any Accept.
func Listen(ctx context.Context, bindAddress string, port int, size int) (*Listener, error) {
	log := log.With().Str("gw", "tcp").Logger()

	ln, err := net.Listen("tcp", net.JoinHostPort(bindAddress, strconv.Itoa(port)))
	if err != nil {
		return nil, err
	}

	log.Info().Msgf("waiting for a guest on tcp:%v", ln.Addr())

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	return &Listener{
		ln:   ln,
		size: size,
		log:  log,
	}, nil
}

// Addr is where the host is listening.
func (l *Listener) Addr() net.Addr {
	return l.ln.Addr()
}

// Accept takes exactly one guest and stops listening.
func (l *Listener) Accept() (*Session, error) {
	defer l.ln.Close()

	conn, err := l.ln.Accept()
	if err != nil {
		return nil, err
	}
	l.log.Info().Msgf("guest connected from %v", conn.RemoteAddr())

	return New(conn, Host, l.size)
}

// Close stops listening.
func (l *Listener) Close() error {
	return l.ln.Close()
}

// HostSession listens on bindAddress and blocks until one guest connects.
func HostSession(ctx context.Context, bindAddress string, port int, size int) (*Session, error) {
	l, err := Listen(ctx, bindAddress, port, size)
	if err != nil {
		return nil, err
	}
	return l.Accept()
}

// ConnectSession connects to a host as the guest.
func ConnectSession(ctx context.Context, address string, port int, size int) (*Session, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", net.JoinHostPort(address, strconv.Itoa(port)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnClosed, err)
	}
	return New(conn, Guest, size)
}
