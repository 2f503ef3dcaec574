// internal/poller/types.go
package poller

import (
	"time"

	"github.com/tamzrod/amp-bridge/internal/parser"
	"github.com/tamzrod/amp-bridge/internal/record"
)

// PollResult is a snapshot produced by one poll cycle.
type PollResult struct {
	Name string
	At   time.Time

	// Frame is the raw payload read this cycle (nil when none was read).
	Frame []byte

	// Unchanged is set when Frame is identical to the last decoded frame;
	// decoding was skipped and Records repeats the previous state.
	Unchanged bool

	// Decoded lists the sections decoded from Frame.
	Decoded  record.Section
	Presence map[record.Section]parser.Presence

	// Records is the poller's record set after this cycle.
	// Sections absent from Frame keep their previous values.
	Records record.Set

	Err error // non-nil means the poll cycle failed
}

// EndOfStream reports whether the source is exhausted (file replay).
func (r PollResult) EndOfStream() bool { return isEOF(r.Err) }
