// internal/config/validate.go
package config

import (
	"fmt"
	"strings"

	"github.com/tamzrod/amp-bridge/internal/record"
	"github.com/tamzrod/amp-bridge/internal/status"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config: nil")
	}
	b := cfg.Bridge

	// ------------------------------------------------------------
	// SOURCE
	// ------------------------------------------------------------

	switch b.Source.Kind {
	case SourceSerial, SourceTCP, SourceFile:
	case "":
		return fmt.Errorf("source.kind is required (%s|%s|%s)", SourceSerial, SourceTCP, SourceFile)
	default:
		return fmt.Errorf("source.kind %q is not supported", b.Source.Kind)
	}

	if b.Source.Address == "" {
		return fmt.Errorf("source.address is required for kind %q", b.Source.Kind)
	}

	if b.Source.Kind == SourceSerial {
		if b.Source.BaudRate < 0 {
			return fmt.Errorf("source.baud_rate must not be negative, got %d", b.Source.BaudRate)
		}
		switch b.Source.DataBits {
		case 0, 5, 6, 7, 8:
		default:
			return fmt.Errorf("source.data_bits %d is not supported", b.Source.DataBits)
		}
		switch b.Source.StopBits {
		case 0, 1, 2:
		default:
			return fmt.Errorf("source.stop_bits %d is not supported", b.Source.StopBits)
		}
		switch strings.ToUpper(b.Source.Parity) {
		case "", "N", "E", "O":
		default:
			return fmt.Errorf("source.parity %q is not supported", b.Source.Parity)
		}
	}

	if b.Source.TimeoutMs < 0 || b.Source.MaxFrame < 0 {
		return fmt.Errorf("source.timeout_ms and source.max_frame must not be negative")
	}

	// ------------------------------------------------------------
	// POLL
	// ------------------------------------------------------------

	if b.Poll.IntervalMs < 0 {
		return fmt.Errorf("poll.interval_ms must not be negative, got %d", b.Poll.IntervalMs)
	}
	if b.Poll.StaleAfterMs < 0 {
		return fmt.Errorf("poll.stale_after_ms must not be negative, got %d", b.Poll.StaleAfterMs)
	}

	// ------------------------------------------------------------
	// SECTIONS
	// ------------------------------------------------------------

	seen := make(map[string]bool)
	for _, name := range b.Sections {
		if _, ok := record.ParseSection(name); !ok {
			return fmt.Errorf("sections: unknown section %q", name)
		}
		if seen[name] {
			return fmt.Errorf("sections: %q listed twice", name)
		}
		seen[name] = true
	}

	// ------------------------------------------------------------
	// OUTPUT
	// ------------------------------------------------------------

	switch b.Output.Kind {
	case "", OutputNone:
	case OutputModbus, OutputIngest:
		if b.Output.Endpoint == "" {
			return fmt.Errorf("output.endpoint is required for kind %q", b.Output.Kind)
		}
		if b.Output.TimeoutMs < 0 {
			return fmt.Errorf("output.timeout_ms must not be negative")
		}
		if (int(b.Output.BaseSlot)+1)*status.SlotsPerDevice > 0x10000 {
			return fmt.Errorf("output.base_slot %d exceeds the register address space", b.Output.BaseSlot)
		}
	default:
		return fmt.Errorf("output.kind %q is not supported", b.Output.Kind)
	}

	// device_name sanity (ASCII only)
	for i := 0; i < len(b.Output.DeviceName); i++ {
		if b.Output.DeviceName[i] > 0x7F {
			return fmt.Errorf("output.device_name must contain ASCII characters only")
		}
	}

	// ------------------------------------------------------------
	// CAPTURE / METRICS / LOG
	// ------------------------------------------------------------

	if b.Capture.Path != "" && b.Source.Kind == SourceFile && b.Capture.Path == b.Source.Address {
		return fmt.Errorf("capture.path must differ from the replayed source file")
	}

	if b.Metrics.Path != "" && !strings.HasPrefix(b.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with '/', got %q", b.Metrics.Path)
	}

	switch strings.ToLower(b.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q is not supported", b.Log.Level)
	}

	return nil
}
