// internal/capture/reader.go
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

// DefaultMaxFrame bounds one frame when the caller passes 0.
const DefaultMaxFrame = 4096

// ErrFrameTooLong means a frame exceeded the limit and was skipped.
// The reader stays usable; the next call returns the following frame.
var ErrFrameTooLong = errors.New("capture: frame exceeds limit")

// Reader replays frames from a capture stream.
type Reader struct {
	br    *bufio.Reader
	max   int
	zdec  *zstd.Decoder
	file  *os.File
	frame []byte
}

// Open opens a capture file at path; the format follows the extension.
func Open(path string, maxFrame int) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("capture: open %s: %w", path, err)
	}

	r, err := NewReader(f, FormatOf(path), maxFrame)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	r.file = f
	return r, nil
}

// NewReader wraps src. Close releases the decompressor but does not close src.
func NewReader(src io.Reader, format Format, maxFrame int) (*Reader, error) {
	if maxFrame <= 0 {
		maxFrame = DefaultMaxFrame
	}

	r := &Reader{max: maxFrame}
	var in io.Reader

	switch format {
	case FormatZstd:
		dec, err := zstd.NewReader(src, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("capture: zstd reader: %w", err)
		}
		r.zdec = dec
		in = dec
	case FormatLZ4:
		in = lz4.NewReader(src)
	case FormatPlain:
		in = src
	default:
		return nil, fmt.Errorf("capture: unknown format %d", format)
	}

	r.br = bufio.NewReaderSize(in, min(maxFrame, 64*1024))
	return r, nil
}

// Next returns the next non-empty frame, or io.EOF at end of stream.
// A frame longer than the limit is consumed and reported as ErrFrameTooLong.
// The returned slice is valid until the next call.
func (r *Reader) Next() ([]byte, error) {
	for {
		line, tooLong, err := r.readLine()
		switch {
		case errors.Is(err, io.EOF):
			return nil, io.EOF
		case err != nil:
			return nil, fmt.Errorf("capture: read: %w", err)
		case tooLong:
			return nil, ErrFrameTooLong
		case len(line) == 0:
			continue
		}
		return line, nil
	}
}

// readLine reads one line without its terminator. Bytes past the limit are
// discarded and tooLong is set. A final line without '\n' still counts.
func (r *Reader) readLine() (line []byte, tooLong bool, err error) {
	r.frame = r.frame[:0]
	for {
		chunk, err := r.br.ReadSlice('\n')
		if !tooLong {
			r.frame = append(r.frame, chunk...)
			if len(bytes.TrimRight(r.frame, "\r\n")) > r.max {
				tooLong = true
				r.frame = r.frame[:0]
			}
		}

		switch {
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case err == nil, errors.Is(err, io.EOF) && (tooLong || len(r.frame) > 0):
			return bytes.TrimRight(r.frame, "\r\n"), tooLong, nil
		default:
			return nil, false, err
		}
	}
}

// Close releases the reader.
func (r *Reader) Close() error {
	if r.zdec != nil {
		r.zdec.Close()
		r.zdec = nil
	}
	if r.file != nil {
		err := r.file.Close()
		r.file = nil
		return err
	}
	return nil
}
