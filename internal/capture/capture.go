// internal/capture/capture.go
package capture

import (
	"path/filepath"
	"strings"
)

// Format is the on-disk encoding of a capture file.
// Frames are stored one per line in every format.
type Format uint8

const (
	FormatPlain Format = iota
	FormatZstd
	FormatLZ4
)

func (f Format) String() string {
	switch f {
	case FormatZstd:
		return "zstd"
	case FormatLZ4:
		return "lz4"
	}
	return "plain"
}

// FormatOf picks the format from the file extension.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst", ".zstd":
		return FormatZstd
	case ".lz4":
		return FormatLZ4
	}
	return FormatPlain
}
