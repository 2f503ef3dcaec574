// internal/poller/source/tcp.go
package source

import (
	"errors"
	"net"
	"time"
)

// TCPConfig is minimal stream config.
type TCPConfig struct {
	Endpoint string
	Timeout  time.Duration
	MaxFrame int
}

// TCP reads frames from a TCP stream, e.g. a serial-to-Ethernet gateway.
type TCP struct {
	conn    net.Conn
	timeout time.Duration
	lr      *lineReader
}

// DialTCP connects to the endpoint. ONE attempt per call.
func DialTCP(cfg TCPConfig) (*TCP, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("source tcp: endpoint required")
	}

	conn, err := net.DialTimeout("tcp", cfg.Endpoint, cfg.Timeout)
	if err != nil {
		return nil, err
	}

	return newTCP(conn, cfg.Timeout, cfg.MaxFrame), nil
}

func newTCP(conn net.Conn, timeout time.Duration, maxFrame int) *TCP {
	return &TCP{
		conn:    conn,
		timeout: timeout,
		lr: newLineReader(conn, maxFrame, func(err error) bool {
			var ne net.Error
			return errors.As(err, &ne) && ne.Timeout()
		}),
	}
}

// ReadFrame reads one frame, waiting at most the configured timeout.
func (t *TCP) ReadFrame() ([]byte, error) {
	if t.timeout > 0 {
		_ = t.conn.SetReadDeadline(time.Now().Add(t.timeout))
	}
	return t.lr.ReadFrame()
}

// Close closes the TCP connection.
func (t *TCP) Close() error {
	if t == nil || t.conn == nil {
		return nil
	}
	return t.conn.Close()
}
