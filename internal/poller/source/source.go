// internal/poller/source/source.go
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Source delivers newline-delimited payload frames.
type Source interface {
	// ReadFrame returns the next non-empty frame without its line ending.
	// The returned slice is owned by the caller.
	ReadFrame() ([]byte, error)
	Close() error
}

var (
	// ErrTimeout means no complete frame arrived in time. The source stays usable.
	ErrTimeout = errors.New("source: no frame before timeout")
	// ErrFrameTooLong means a frame exceeded the limit and was discarded.
	// The source stays usable.
	ErrFrameTooLong = errors.New("source: frame too long")
)

// Recoverable reports whether err leaves the source usable.
func Recoverable(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, ErrFrameTooLong)
}

// lineReader splits a byte stream into frames.
// Partial lines survive read timeouts.
type lineReader struct {
	r         io.Reader
	isTimeout func(error) bool
	max       int
	buf       []byte
	chunk     []byte
	discard   bool // dropping the remainder of an oversized line
}

func newLineReader(r io.Reader, maxFrame int, isTimeout func(error) bool) *lineReader {
	if maxFrame <= 0 {
		maxFrame = 4096
	}
	if isTimeout == nil {
		isTimeout = func(error) bool { return false }
	}
	return &lineReader{
		r:         r,
		isTimeout: isTimeout,
		max:       maxFrame,
		chunk:     make([]byte, 512),
	}
}

func (l *lineReader) ReadFrame() ([]byte, error) {
	for {
		if i := bytes.IndexByte(l.buf, '\n'); i >= 0 {
			line := bytes.TrimRight(l.buf[:i], "\r")
			dropped := l.discard || len(line) > l.max

			var frame []byte
			if !dropped {
				frame = append([]byte(nil), line...)
			}
			l.buf = l.buf[:copy(l.buf, l.buf[i+1:])]
			l.discard = false

			if dropped {
				return nil, ErrFrameTooLong
			}
			if len(frame) == 0 {
				continue
			}
			return frame, nil
		}

		// no newline yet: an oversized partial line is dropped as it grows
		if len(l.buf) > l.max {
			l.buf = l.buf[:0]
			l.discard = true
		}

		n, err := l.r.Read(l.chunk)
		if n > 0 {
			l.buf = append(l.buf, l.chunk[:n]...)
		}
		if err != nil {
			if l.isTimeout(err) {
				return nil, fmt.Errorf("%w: %v", ErrTimeout, err)
			}
			if errors.Is(err, io.EOF) && len(l.buf) > 0 && !l.discard {
				// final frame without line ending
				frame := append([]byte(nil), bytes.TrimRight(l.buf, "\r")...)
				l.buf = l.buf[:0]
				if len(frame) > 0 && len(frame) <= l.max {
					return frame, nil
				}
			}
			return nil, err
		}
	}
}
