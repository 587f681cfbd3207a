package printer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"
)

// DefaultPort is the raw printing port used by network thermal printers.
const DefaultPort = 9100

// DefaultTimeout bounds the whole print job: dial, write and close-wait.
const DefaultTimeout = 10 * time.Second

var (
	// ErrTimeout means the printer did not complete the job in time.
	ErrTimeout = errors.New("printer: connection timeout")
	// ErrConnectionFailed means the printer refused or dropped the connection.
	ErrConnectionFailed = errors.New("printer: connection failed")
	// ErrUnsupportedConnection means the configuration is not a network printer.
	ErrUnsupportedConnection = errors.New("printer: only network printers are supported")
)

// Transport sends raw receipt bytes to a network printer over TCP.
// There is no handshake and no response: the full payload is written,
// the write side is closed, and a clean close by the printer is success.
type Transport struct {
	addr    string
	timeout time.Duration
}

// NewTransport creates a transport for the printer at host:port.
// A non-positive port falls back to DefaultPort, a non-positive timeout
// to DefaultTimeout.
func NewTransport(host string, port int, timeout time.Duration) *Transport {
	if port <= 0 {
		port = DefaultPort
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Transport{
		addr:    fmt.Sprintf("%s:%d", host, port),
		timeout: timeout,
	}
}

// Send writes the payload to the printer. It blocks for up to the
// configured timeout, so callers on a latency-sensitive path must issue
// it from its own goroutine.
func (t *Transport) Send(ctx context.Context, payload []byte) error {
	deadline := time.Now().Add(t.timeout)

	dialer := net.Dialer{Deadline: deadline}
	conn, err := dialer.DialContext(ctx, "tcp", t.addr)
	if err != nil {
		return t.classify(err)
	}
	defer conn.Close()

	_ = conn.SetDeadline(deadline)

	if _, err := conn.Write(payload); err != nil {
		return t.classify(err)
	}

	// Half-close so the printer sees EOF, then wait for it to drop the
	// connection. Anything it sends back is discarded.
	if tcp, ok := conn.(*net.TCPConn); ok {
		_ = tcp.CloseWrite()
	}
	if _, err := io.Copy(io.Discard, conn); err != nil {
		return t.classify(err)
	}

	return nil
}

func (t *Transport) classify(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %s: %v", ErrTimeout, t.addr, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s: %v", ErrTimeout, t.addr, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrConnectionFailed, t.addr, err)
}
