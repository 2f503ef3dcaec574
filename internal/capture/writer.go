// internal/capture/writer.go
package capture

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Writer appends payload frames to a capture stream.
// Not safe for concurrent use.
type Writer struct {
	file *os.File       // nil when not opened by Create
	enc  io.WriteCloser // compressor; nil for plain
	bw   *bufio.Writer
	n    int
}

// Create creates (or truncates) a capture file at path.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("capture: create %s: %w", path, err)
	}

	w, err := NewWriter(f, FormatOf(path))
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	w.file = f
	return w, nil
}

// NewWriter wraps dst. Close flushes the compressor but does not close dst.
func NewWriter(dst io.Writer, format Format) (*Writer, error) {
	w := &Writer{}

	switch format {
	case FormatZstd:
		enc, err := zstd.NewWriter(dst, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, fmt.Errorf("capture: zstd writer: %w", err)
		}
		w.enc = enc
	case FormatLZ4:
		w.enc = lz4.NewWriter(dst)
	case FormatPlain:
	default:
		return nil, fmt.Errorf("capture: unknown format %d", format)
	}

	if w.enc != nil {
		w.bw = bufio.NewWriter(w.enc)
	} else {
		w.bw = bufio.NewWriter(dst)
	}
	return w, nil
}

// Write appends one frame. Line breaks inside the frame are replaced by
// spaces so the frame stays on one line.
func (w *Writer) Write(frame []byte) error {
	if w == nil || w.bw == nil {
		return errors.New("capture: writer closed")
	}

	frame = bytes.TrimRight(frame, "\r\n")
	if len(frame) == 0 {
		return nil
	}

	if bytes.ContainsAny(frame, "\r\n") {
		frame = bytes.Map(func(r rune) rune {
			if r == '\r' || r == '\n' {
				return ' '
			}
			return r
		}, frame)
	}

	if _, err := w.bw.Write(frame); err != nil {
		return fmt.Errorf("capture: write: %w", err)
	}
	if err := w.bw.WriteByte('\n'); err != nil {
		return fmt.Errorf("capture: write: %w", err)
	}
	w.n++
	return nil
}

// Frames returns the number of frames written.
func (w *Writer) Frames() int { return w.n }

// Flush pushes buffered frames through the compressor.
func (w *Writer) Flush() error {
	if w == nil || w.bw == nil {
		return nil
	}
	if err := w.bw.Flush(); err != nil {
		return fmt.Errorf("capture: flush: %w", err)
	}
	type flusher interface{ Flush() error }
	if f, ok := w.enc.(flusher); ok {
		if err := f.Flush(); err != nil {
			return fmt.Errorf("capture: flush: %w", err)
		}
	}
	return nil
}

// Close flushes and finalizes the stream, closing the file if Create opened it.
func (w *Writer) Close() error {
	if w == nil || w.bw == nil {
		return nil
	}

	var errs []error
	if err := w.bw.Flush(); err != nil {
		errs = append(errs, err)
	}
	if w.enc != nil {
		if err := w.enc.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if w.file != nil {
		if err := w.file.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	w.bw = nil

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("capture: close: %w", err)
	}
	return nil
}
