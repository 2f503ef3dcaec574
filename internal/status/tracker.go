// internal/status/tracker.go
package status

import (
	"errors"
	"math"
	"time"

	"github.com/tamzrod/amp-bridge/internal/record"
)

// Tracker owns the device status snapshot.
// It is driven by poll outcomes and a 1 Hz tick; every method reports
// whether the snapshot changed and must be written.
// Not safe for concurrent use: one orchestrator goroutine owns it.
type Tracker struct {
	snap       Snapshot
	staleAfter time.Duration
	lastFrame  time.Time
}

// NewTracker starts in HealthUnknown. staleAfter <= 0 disables stale detection.
func NewTracker(staleAfter time.Duration) *Tracker {
	return &Tracker{
		snap:       Snapshot{Health: HealthUnknown},
		staleAfter: staleAfter,
	}
}

// Snapshot returns the current snapshot.
func (t *Tracker) Snapshot() Snapshot { return t.snap }

// Healthy records a good frame carrying amp at time at.
func (t *Tracker) Healthy(amp record.Status, at time.Time) bool {
	t.lastFrame = at

	next := Snapshot{Health: HealthOK, Amp: amp}
	if next == t.snap {
		return false
	}
	t.snap = next
	return true
}

// Failed records a failed poll. Measurements keep their last values.
func (t *Tracker) Failed(err error) bool {
	code := ErrorCode(err)
	if t.snap.Health == HealthError && t.snap.LastErrorCode == code {
		return false
	}
	t.snap.Health = HealthError
	t.snap.LastErrorCode = code
	return true
}

// Tick advances time. A healthy feed without a frame for staleAfter turns
// stale; any non-OK state counts seconds_in_error, saturating at 65535.
func (t *Tracker) Tick(now time.Time) bool {
	changed := false

	if t.snap.Health == HealthOK && t.staleAfter > 0 && now.Sub(t.lastFrame) >= t.staleAfter {
		t.snap.Health = HealthStale
		t.snap.LastErrorCode = ErrorCodeStale
		changed = true
	}

	if t.snap.Health != HealthOK && t.snap.SecondsInError < math.MaxUint16 {
		t.snap.SecondsInError++
		changed = true
	}

	return changed
}

// ErrorCode extracts a best-effort uint16 code from an error without assuming concrete types.
// If the error does not expose a code, returns ErrorCodeGeneric.
func ErrorCode(err error) uint16 {
	if err == nil {
		return 0
	}

	type coder interface{ Code() uint16 }

	var c coder
	if errors.As(err, &c) {
		return c.Code()
	}
	return ErrorCodeGeneric
}
