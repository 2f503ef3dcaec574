// internal/config/normalize.go
package config

import (
	"strings"

	"github.com/tamzrod/amp-bridge/internal/record"
	"github.com/tamzrod/amp-bridge/internal/status"
)

// Defaults applied by Normalize.
const (
	DefaultBaudRate   = 115200
	DefaultTimeoutMs  = 1000
	DefaultIntervalMs = 200
	DefaultMaxFrame   = 4096
	DefaultMetricPath = "/metrics"
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}
	b := &cfg.Bridge

	// ---- source ----
	if b.Source.Kind == SourceSerial {
		if b.Source.BaudRate == 0 {
			b.Source.BaudRate = DefaultBaudRate
		}
		if b.Source.DataBits == 0 {
			b.Source.DataBits = 8
		}
		if b.Source.StopBits == 0 {
			b.Source.StopBits = 1
		}
		b.Source.Parity = strings.ToUpper(b.Source.Parity)
		if b.Source.Parity == "" {
			b.Source.Parity = "N"
		}
	}
	if b.Source.TimeoutMs == 0 {
		b.Source.TimeoutMs = DefaultTimeoutMs
	}
	if b.Source.MaxFrame == 0 {
		b.Source.MaxFrame = DefaultMaxFrame
	}

	// ---- poll ----
	if b.Poll.IntervalMs == 0 {
		b.Poll.IntervalMs = DefaultIntervalMs
	}

	// ---- sections ----
	if len(b.Sections) == 0 {
		b.Sections = []string{"status", "settings", "calibration"}
	}

	// ---- output ----
	if b.Output.Kind == "" {
		b.Output.Kind = OutputNone
	}
	if b.Output.TimeoutMs == 0 {
		b.Output.TimeoutMs = DefaultTimeoutMs
	}

	// Normalize device_name:
	// - ASCII already validated
	// - Truncate to the status block capacity
	if len(b.Output.DeviceName) > status.DeviceNameMaxChars {
		b.Output.DeviceName = b.Output.DeviceName[:status.DeviceNameMaxChars]
	}

	// ---- metrics ----
	if b.Metrics.Listen != "" && b.Metrics.Path == "" {
		b.Metrics.Path = DefaultMetricPath
	}

	// ---- log ----
	b.Log.Level = strings.ToLower(b.Log.Level)
	if b.Log.Level == "" {
		b.Log.Level = "info"
	}
}

// SectionSet returns the configured sections as a record.Section mask.
// Unknown names are ignored; Validate rejects them earlier.
func (b BridgeConfig) SectionSet() record.Section {
	var set record.Section
	for _, name := range b.Sections {
		if s, ok := record.ParseSection(name); ok {
			set |= s
		}
	}
	if set == 0 {
		return record.AllSections
	}
	return set
}
