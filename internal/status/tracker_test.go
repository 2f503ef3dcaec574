// internal/status/tracker_test.go
package status

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tamzrod/amp-bridge/internal/record"
)

type codedErr uint16

func (e codedErr) Error() string { return fmt.Sprintf("coded %d", uint16(e)) }
func (e codedErr) Code() uint16 { return uint16(e) }

func TestErrorCode(t *testing.T) {
	require.Equal(t, uint16(0), ErrorCode(nil))
	require.Equal(t, ErrorCodeGeneric, ErrorCode(errors.New("plain")))
	require.Equal(t, uint16(12), ErrorCode(codedErr(12)))
	require.Equal(t, uint16(13), ErrorCode(fmt.Errorf("wrapped: %w", codedErr(13))))
	require.Equal(t, uint16(14), ErrorCode(errors.Join(errors.New("x"), codedErr(14))))
}

func TestTracker_StartsUnknownAndCountsSeconds(t *testing.T) {
	tr := NewTracker(0)
	require.Equal(t, HealthUnknown, tr.Snapshot().Health)

	now := time.Now()
	require.True(t, tr.Tick(now))
	require.True(t, tr.Tick(now.Add(time.Second)))
	require.Equal(t, uint16(2), tr.Snapshot().SecondsInError)
}

func TestTracker_ErrorThenRecovery(t *testing.T) {
	tr := NewTracker(0)
	now := time.Now()

	require.True(t, tr.Healthy(record.Status{Fwd: 50}, now))
	require.False(t, tr.Healthy(record.Status{Fwd: 50}, now), "identical frame")
	require.False(t, tr.Tick(now), "healthy feed does not count seconds")

	require.True(t, tr.Failed(codedErr(11)))
	require.False(t, tr.Failed(codedErr(11)), "same code is not a change")
	require.True(t, tr.Failed(codedErr(12)))

	snap := tr.Snapshot()
	require.Equal(t, HealthError, snap.Health)
	require.Equal(t, uint16(12), snap.LastErrorCode)
	require.Equal(t, float32(50), snap.Amp.Fwd, "measurements survive failures")

	tr.Tick(now)
	tr.Tick(now)
	require.Equal(t, uint16(2), tr.Snapshot().SecondsInError)

	require.True(t, tr.Healthy(record.Status{Fwd: 60}, now))
	snap = tr.Snapshot()
	require.Equal(t, HealthOK, snap.Health)
	require.Zero(t, snap.LastErrorCode)
	require.Zero(t, snap.SecondsInError)
}

func TestTracker_Stale(t *testing.T) {
	tr := NewTracker(3 * time.Second)
	t0 := time.Now()

	tr.Healthy(record.Status{}, t0)
	require.False(t, tr.Tick(t0.Add(2*time.Second)))

	require.True(t, tr.Tick(t0.Add(3*time.Second)))
	snap := tr.Snapshot()
	require.Equal(t, HealthStale, snap.Health)
	require.Equal(t, ErrorCodeStale, snap.LastErrorCode)
	require.Equal(t, uint16(1), snap.SecondsInError)

	require.True(t, tr.Healthy(record.Status{}, t0.Add(4*time.Second)))
	require.Equal(t, HealthOK, tr.Snapshot().Health)
}

func TestTracker_SecondsSaturate(t *testing.T) {
	tr := NewTracker(0)
	tr.snap.SecondsInError = math.MaxUint16 - 1

	require.True(t, tr.Tick(time.Now()))
	require.False(t, tr.Tick(time.Now()))
	require.Equal(t, uint16(math.MaxUint16), tr.Snapshot().SecondsInError)
}
