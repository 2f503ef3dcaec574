// internal/bridge/bridge.go
package bridge

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/tamzrod/amp-bridge/internal/capture"
	"github.com/tamzrod/amp-bridge/internal/metrics"
	"github.com/tamzrod/amp-bridge/internal/poller"
	"github.com/tamzrod/amp-bridge/internal/poller/source"
	"github.com/tamzrod/amp-bridge/internal/record"
	"github.com/tamzrod/amp-bridge/internal/status"
	"github.com/tamzrod/amp-bridge/internal/writer"
)

// Bridge consumes poll results and fans them out: record store, status
// block, metrics and capture. It owns the status snapshot.
// Optional sinks may be nil.
type Bridge struct {
	Store    *record.Store
	Tracker  *status.Tracker
	Status   writer.StatusWriter
	Exporter *metrics.Exporter
	Capture  *capture.Writer
	Log      *zap.SugaredLogger

	// SecondTick overrides the 1 Hz seconds_in_error clock in tests.
	SecondTick <-chan time.Time
}

// Run processes results until ctx is done, in is closed, or the source
// reports end of stream.
func (b *Bridge) Run(ctx context.Context, in <-chan poller.PollResult) {
	b.defaults()

	ticks := b.SecondTick
	if ticks == nil {
		secTicker := time.NewTicker(time.Second)
		defer secTicker.Stop()
		ticks = secTicker.C
	}

	// Full block write on start (identity re-assert).
	b.publish()

	for {
		select {
		case <-ctx.Done():
			return

		case res, ok := <-in:
			if !ok {
				return
			}
			if !b.Handle(res) {
				return
			}

		case now := <-ticks:
			if b.Tracker.Tick(now) {
				b.publish()
			}
			if b.Capture != nil {
				if err := b.Capture.Flush(); err != nil {
					b.Log.Warnw("capture flush failed", "error", err)
				}
			}
		}
	}
}

// Handle applies one poll result. It returns false once the source is exhausted.
func (b *Bridge) Handle(res poller.PollResult) bool {
	b.defaults()

	if res.EndOfStream() {
		b.Log.Infow("source exhausted", "source", res.Name)
		return false
	}

	if b.Capture != nil && len(res.Frame) > 0 {
		if err := b.Capture.Write(res.Frame); err != nil {
			b.Log.Warnw("capture write failed", "error", err)
		}
	}

	if b.Exporter != nil {
		b.Exporter.Observe(res)
	}

	if res.Decoded != 0 && b.Store != nil {
		b.Store.Update(func(s *record.Set) { *s = res.Records })
	}

	var changed bool
	switch {
	case errors.Is(res.Err, source.ErrTimeout):
		// idle link; staleness is judged on the tick
		return true
	case res.Err != nil:
		b.Log.Warnw("poll failed", "source", res.Name, "code", status.ErrorCode(res.Err), "error", res.Err)
		changed = b.Tracker.Failed(res.Err)
	default:
		changed = b.Tracker.Healthy(res.Records.Status, res.At)
	}

	if changed {
		b.publish()
	}
	return true
}

func (b *Bridge) defaults() {
	if b.Log == nil {
		b.Log = zap.NewNop().Sugar()
	}
	if b.Tracker == nil {
		b.Tracker = status.NewTracker(0)
	}
}

func (b *Bridge) publish() {
	snap := b.Tracker.Snapshot()

	if b.Exporter != nil {
		b.Exporter.ObserveStatus(snap)
	}
	if b.Status == nil {
		return
	}
	if err := b.Status.WriteStatus(snap); err != nil {
		b.Log.Warnw("status write failed", "health", snap.Health, "error", err)
	}
}
