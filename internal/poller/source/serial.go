// internal/poller/source/serial.go
package source

import (
	"errors"
	"fmt"
	"time"

	"github.com/goburrow/serial"
)

// SerialConfig is minimal serial link config.
type SerialConfig struct {
	Address  string
	BaudRate int
	DataBits int
	StopBits int
	Parity   string
	Timeout  time.Duration
	MaxFrame int
}

// Serial reads frames from a serial port.
type Serial struct {
	port serial.Port
	*lineReader
}

// OpenSerial opens the port. ONE attempt per call.
func OpenSerial(cfg SerialConfig) (*Serial, error) {
	if cfg.Address == "" {
		return nil, errors.New("source serial: address required")
	}

	port, err := serial.Open(&serial.Config{
		Address:  cfg.Address,
		BaudRate: cfg.BaudRate,
		DataBits: cfg.DataBits,
		StopBits: cfg.StopBits,
		Parity:   cfg.Parity,
		Timeout:  cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("source serial: open %s: %w", cfg.Address, err)
	}

	return &Serial{
		port: port,
		lineReader: newLineReader(port, cfg.MaxFrame, func(err error) bool {
			return errors.Is(err, serial.ErrTimeout)
		}),
	}, nil
}

// Close closes the port.
func (s *Serial) Close() error {
	if s == nil || s.port == nil {
		return nil
	}
	return s.port.Close()
}
