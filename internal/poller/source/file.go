// internal/poller/source/file.go
package source

import (
	"errors"
	"fmt"

	"github.com/tamzrod/amp-bridge/internal/capture"
)

// File replays frames from a capture file (plain, .zst or .lz4).
// ReadFrame returns io.EOF after the last frame. An oversized line is skipped
// and reported as ErrFrameTooLong; replay continues with the next one.
type File struct {
	r *capture.Reader
}

// OpenFile opens a capture file for replay.
func OpenFile(path string, maxFrame int) (*File, error) {
	r, err := capture.Open(path, maxFrame)
	if err != nil {
		return nil, err
	}
	return &File{r: r}, nil
}

func (f *File) ReadFrame() ([]byte, error) {
	frame, err := f.r.Next()
	if errors.Is(err, capture.ErrFrameTooLong) {
		return nil, fmt.Errorf("%w: %v", ErrFrameTooLong, err)
	}
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), frame...), nil
}

func (f *File) Close() error { return f.r.Close() }
