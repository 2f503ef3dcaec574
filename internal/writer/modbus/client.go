// internal/writer/modbus/client.go
package modbus

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goburrow/modbus"
)

// maxRegistersPerWrite is the FC16 quantity limit.
const maxRegistersPerWrite = 123

// Client is a single Modbus TCP connection to one status memory endpoint.
// It serializes requests because it mutates SlaveId per write.
type Client struct {
	mu      sync.Mutex
	handler *modbus.TCPClientHandler
	client  modbus.Client
}

type Config struct {
	Endpoint string
	Timeout  time.Duration
}

// NewClient connects once. A dropped connection is reopened by the
// handler on the next request.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("writer modbus: endpoint required")
	}

	h := modbus.NewTCPClientHandler(cfg.Endpoint)
	if cfg.Timeout > 0 {
		h.Timeout = cfg.Timeout
	}

	if err := h.Connect(); err != nil {
		return nil, fmt.Errorf("writer modbus: connect %s: %w", cfg.Endpoint, err)
	}

	return &Client{
		handler: h,
		client:  modbus.NewClient(h),
	}, nil
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handler.Close()
}

// WriteRegisters writes regs with FC16. Only holding registers (area 3)
// are writable over Modbus.
func (c *Client) WriteRegisters(area byte, unitID uint8, addr uint16, regs []uint16) error {
	if area != 3 {
		return fmt.Errorf("writer modbus: area %d is not writable", area)
	}
	if len(regs) == 0 {
		return nil
	}
	if len(regs) > maxRegistersPerWrite {
		return fmt.Errorf("writer modbus: %d registers exceed FC16 limit %d", len(regs), maxRegistersPerWrite)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.handler.SlaveId = unitID

	if _, err := c.client.WriteMultipleRegisters(addr, uint16(len(regs)), packRegisters(regs)); err != nil {
		return fmt.Errorf("writer modbus: unit=%d addr=%d qty=%d: %w", unitID, addr, len(regs), err)
	}
	return nil
}

// Modbus register memory order (BIG-ENDIAN)
func packRegisters(regs []uint16) []byte {
	out := make([]byte, len(regs)*2)
	for i, r := range regs {
		out[2*i] = byte(r >> 8)
		out[2*i+1] = byte(r)
	}
	return out
}
