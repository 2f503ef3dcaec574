// internal/config/config.go
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Bridge BridgeConfig `yaml:"bridge"`
}

type BridgeConfig struct {
	Source   SourceConfig  `yaml:"source"`
	Poll     PollConfig    `yaml:"poll"`
	Sections []string      `yaml:"sections"` // empty => all
	Output   OutputConfig  `yaml:"output"`
	Metrics  MetricsConfig `yaml:"metrics"`
	Capture  CaptureConfig `yaml:"capture"`
	Log      LogConfig     `yaml:"log"`
}

// ---- SOURCE ----

// Source kinds.
const (
	SourceSerial = "serial"
	SourceTCP    = "tcp"
	SourceFile   = "file"
)

type SourceConfig struct {
	Kind      string `yaml:"kind"`
	Address   string `yaml:"address"` // device path, host:port or file path
	BaudRate  int    `yaml:"baud_rate"`
	DataBits  int    `yaml:"data_bits"`
	StopBits  int    `yaml:"stop_bits"`
	Parity    string `yaml:"parity"` // N, E, O
	TimeoutMs int    `yaml:"timeout_ms"`
	MaxFrame  int    `yaml:"max_frame"` // bytes per newline-delimited frame
}

// ---- POLL ----

type PollConfig struct {
	IntervalMs int `yaml:"interval_ms"`
	// StaleAfterMs marks the feed stale when no new frame arrives in time.
	// 0 disables stale detection.
	StaleAfterMs int `yaml:"stale_after_ms"`
}

// ---- OUTPUT ----

// Output kinds.
const (
	OutputNone   = "none"
	OutputModbus = "modbus"
	OutputIngest = "ingest"
)

type OutputConfig struct {
	Kind       string `yaml:"kind"`
	Endpoint   string `yaml:"endpoint"`
	UnitID     uint8  `yaml:"unit_id"`
	BaseSlot   uint16 `yaml:"base_slot"` // block index; address = base_slot * block size
	TimeoutMs  int    `yaml:"timeout_ms"`
	DeviceName string `yaml:"device_name"`
}

// ---- METRICS ----

type MetricsConfig struct {
	Listen string `yaml:"listen"` // empty => disabled
	Path   string `yaml:"path"`
}

// ---- CAPTURE ----

type CaptureConfig struct {
	Path string `yaml:"path"` // .zst, .lz4 or plain; empty => disabled
}

// ---- LOG ----

type LogConfig struct {
	Level         string `yaml:"level"`
	DebugPayloads bool   `yaml:"debug_payloads"`
}

// Load reads and decodes a YAML config file.
// It does not validate.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes YAML config bytes. Unknown keys are rejected.
func Parse(raw []byte) (*Config, error) {
	var cfg Config

	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("config: empty document")
		}
		return nil, fmt.Errorf("config: decode: %w", err)
	}

	return &cfg, nil
}
