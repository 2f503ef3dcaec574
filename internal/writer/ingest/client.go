// internal/writer/ingest/client.go
package ingest

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"
	"time"
)

const (
	magicHi byte = 0x52 // 'R'
	magicLo byte = 0x49 // 'I'

	versionV1 byte = 0x01

	headerLen = 10

	respOK       byte = 0x00
	respRejected byte = 0x01
)

// ErrRejected is returned when the endpoint refuses a packet.
var ErrRejected = errors.New("writer ingest: rejected")

// Client speaks Raw Ingest v1: one packet per connection, one status byte back.
type Client struct {
	endpoint string
	timeout  time.Duration
}

type Config struct {
	Endpoint string
	Timeout  time.Duration
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("writer ingest: endpoint required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Second
	}
	return &Client{
		endpoint: cfg.Endpoint,
		timeout:  cfg.Timeout,
	}, nil
}

// Close is a no-op; connections do not outlive a packet.
func (c *Client) Close() error { return nil }

// WriteRegisters sends one register packet.
func (c *Client) WriteRegisters(area byte, unitID uint8, addr uint16, regs []uint16) error {
	if len(regs) == 0 {
		return nil
	}

	conn, err := net.DialTimeout("tcp", c.endpoint, c.timeout)
	if err != nil {
		return fmt.Errorf("writer ingest: dial: %w", err)
	}
	defer conn.Close()

	_ = conn.SetDeadline(time.Now().Add(c.timeout))

	if _, err := conn.Write(Packet(area, unitID, addr, regs)); err != nil {
		return fmt.Errorf("writer ingest: write: %w", err)
	}

	var resp [1]byte
	if _, err := io.ReadFull(conn, resp[:]); err != nil {
		return fmt.Errorf("writer ingest: read status: %w", err)
	}

	switch resp[0] {
	case respOK:
		return nil
	case respRejected:
		return ErrRejected
	default:
		return fmt.Errorf("writer ingest: unknown status 0x%02x", resp[0])
	}
}

// Packet builds a Raw Ingest v1 register packet.
//
// Layout (10 bytes header, big-endian):
//
//	0-1  magic "RI"
//	2    version (0x01)
//	3    area
//	4-5  unit id
//	6-7  address
//	8-9  count
//	10+  registers, two bytes each
func Packet(area byte, unitID uint8, addr uint16, regs []uint16) []byte {
	pkt := make([]byte, headerLen+2*len(regs))

	pkt[0] = magicHi
	pkt[1] = magicLo
	pkt[2] = versionV1
	pkt[3] = area

	binary.BigEndian.PutUint16(pkt[4:6], uint16(unitID))
	binary.BigEndian.PutUint16(pkt[6:8], addr)
	binary.BigEndian.PutUint16(pkt[8:10], uint16(len(regs)))

	for i, r := range regs {
		binary.BigEndian.PutUint16(pkt[headerLen+2*i:], r)
	}
	return pkt
}
