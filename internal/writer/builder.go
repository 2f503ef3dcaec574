// internal/writer/builder.go
package writer

import (
	"fmt"
	"time"

	cfg "github.com/tamzrod/amp-bridge/internal/config"
	"github.com/tamzrod/amp-bridge/internal/writer/ingest"
	wmodbus "github.com/tamzrod/amp-bridge/internal/writer/modbus"
)

// BuildPlan converts the output config into a StatusPlan.
// The bool is false when output is disabled.
func BuildPlan(o cfg.OutputConfig) (StatusPlan, bool) {
	if o.Kind == "" || o.Kind == cfg.OutputNone {
		return StatusPlan{}, false
	}
	return StatusPlan{
		Endpoint:   o.Endpoint,
		UnitID:     o.UnitID,
		BaseSlot:   o.BaseSlot,
		DeviceName: o.DeviceName,
	}, true
}

// Build creates the status writer and its endpoint client.
// A nil writer with a nil error means output is disabled.
func Build(o cfg.OutputConfig) (StatusWriter, func() error, error) {
	noop := func() error { return nil }

	plan, enabled := BuildPlan(o)
	if !enabled {
		return nil, noop, nil
	}

	timeout := time.Duration(o.TimeoutMs) * time.Millisecond

	var (
		cli     endpointClient
		closeFn func() error
	)

	switch o.Kind {
	case cfg.OutputModbus:
		c, err := wmodbus.NewClient(wmodbus.Config{Endpoint: o.Endpoint, Timeout: timeout})
		if err != nil {
			return nil, noop, err
		}
		cli, closeFn = c, c.Close
	case cfg.OutputIngest:
		c, err := ingest.NewClient(ingest.Config{Endpoint: o.Endpoint, Timeout: timeout})
		if err != nil {
			return nil, noop, err
		}
		cli, closeFn = c, c.Close
	default:
		return nil, noop, fmt.Errorf("writer: unsupported output kind %q", o.Kind)
	}

	sw, err := NewDeviceStatusWriter(plan, cli)
	if err != nil {
		_ = closeFn()
		return nil, noop, err
	}
	return sw, closeFn, nil
}
