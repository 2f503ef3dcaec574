// internal/poller/builder.go
package poller

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	cfg "github.com/tamzrod/amp-bridge/internal/config"
	"github.com/tamzrod/amp-bridge/internal/parser"
	"github.com/tamzrod/amp-bridge/internal/poller/source"
)

// Build constructs a Poller and wires source lifecycle.
// The source is reused while healthy.
// On transport death, Poller discards the source and uses factory on a future tick.
// No retries, no loops.
func Build(b cfg.BridgeConfig, log *zap.SugaredLogger) (*Poller, func() error, error) {
	timeout := time.Duration(b.Source.TimeoutMs) * time.Millisecond

	// source factory: ONE attempt per call
	factory := func() (source.Source, error) {
		switch b.Source.Kind {
		case cfg.SourceSerial:
			return source.OpenSerial(source.SerialConfig{
				Address:  b.Source.Address,
				BaudRate: b.Source.BaudRate,
				DataBits: b.Source.DataBits,
				StopBits: b.Source.StopBits,
				Parity:   b.Source.Parity,
				Timeout:  timeout,
				MaxFrame: b.Source.MaxFrame,
			})
		case cfg.SourceTCP:
			return source.DialTCP(source.TCPConfig{
				Endpoint: b.Source.Address,
				Timeout:  timeout,
				MaxFrame: b.Source.MaxFrame,
			})
		case cfg.SourceFile:
			return source.OpenFile(b.Source.Address, b.Source.MaxFrame)
		}
		return nil, fmt.Errorf("poller: unsupported source kind %q", b.Source.Kind)
	}

	// initial source (fail fast at startup)
	src, err := factory()
	if err != nil {
		return nil, nil, err
	}

	var opts []parser.Option
	if b.Log.DebugPayloads {
		opts = append(opts, parser.WithLogger(log))
	}

	// a replayed file is read once; reopening would loop it
	if b.Source.Kind == cfg.SourceFile {
		factory = nil
	}

	p, err := New(
		Config{
			Name:     b.Source.Kind + ":" + b.Source.Address,
			Interval: time.Duration(b.Poll.IntervalMs) * time.Millisecond,
			Sections: b.SectionSet(),
		},
		src,
		factory,
		parser.NewDecoder(opts...),
		log,
	)
	if err != nil {
		_ = src.Close()
		return nil, nil, err
	}

	// No-op closer: poller handles source lifecycle internally
	return p, func() error { return nil }, nil
}
