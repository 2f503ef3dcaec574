// internal/bridge/bridge_test.go
package bridge

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/tamzrod/amp-bridge/internal/capture"
	"github.com/tamzrod/amp-bridge/internal/metrics"
	"github.com/tamzrod/amp-bridge/internal/parser"
	"github.com/tamzrod/amp-bridge/internal/poller"
	"github.com/tamzrod/amp-bridge/internal/poller/source"
	"github.com/tamzrod/amp-bridge/internal/record"
	"github.com/tamzrod/amp-bridge/internal/status"
)

type fakeStatusWriter struct {
	snaps []status.Snapshot
	err   error
}

func (f *fakeStatusWriter) WriteStatus(s status.Snapshot) error {
	f.snaps = append(f.snaps, s)
	return f.err
}

func (f *fakeStatusWriter) last() status.Snapshot { return f.snaps[len(f.snaps)-1] }

func okResult(fwd float32) poller.PollResult {
	frame := []byte(`{"status":{"fwd":1}}`)
	return poller.PollResult{
		Name:    "tcp:amp:4001",
		At:      time.Now(),
		Frame:   frame,
		Decoded: record.SectionStatus,
		Records: record.Set{
			Status:    record.Status{Fwd: fwd},
			Valid:     record.SectionStatus,
			UpdatedAt: time.Now(),
		},
	}
}

func TestHandle_HealthyUpdatesStoreAndStatus(t *testing.T) {
	store := &record.Store{}
	sw := &fakeStatusWriter{}
	b := &Bridge{Store: store, Status: sw}

	require.True(t, b.Handle(okResult(42)))

	require.Equal(t, float32(42), store.Snapshot().Status.Fwd)
	require.Len(t, sw.snaps, 1)
	require.Equal(t, status.HealthOK, sw.last().Health)
	require.Equal(t, float32(42), sw.last().Amp.Fwd)

	// same content, no write
	require.True(t, b.Handle(okResult(42)))
	require.Len(t, sw.snaps, 1)
}

func TestHandle_ErrorCarriesParserCode(t *testing.T) {
	sw := &fakeStatusWriter{}
	b := &Bridge{Status: sw}

	b.Handle(poller.PollResult{Err: errors.Join(parser.ErrNestedObject)})

	require.Equal(t, status.HealthError, sw.last().Health)
	require.Equal(t, parser.ErrNestedObject.Code(), sw.last().LastErrorCode)
}

func TestHandle_TimeoutIsIdle(t *testing.T) {
	sw := &fakeStatusWriter{}
	b := &Bridge{Status: sw}

	b.Handle(okResult(1))
	n := len(sw.snaps)

	require.True(t, b.Handle(poller.PollResult{Err: source.ErrTimeout}))
	require.Len(t, sw.snaps, n)
	require.Equal(t, status.HealthOK, b.Tracker.Snapshot().Health)
}

func TestHandle_EndOfStream(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	b := &Bridge{Log: zap.New(core).Sugar()}

	require.False(t, b.Handle(poller.PollResult{Name: "file:x", Err: io.EOF}))
	require.Equal(t, 1, logs.FilterMessage("source exhausted").Len())
}

func TestHandle_CaptureAndMetrics(t *testing.T) {
	var buf bytes.Buffer
	cw, err := capture.NewWriter(&buf, capture.FormatPlain)
	require.NoError(t, err)

	store := &record.Store{}
	b := &Bridge{Store: store, Capture: cw, Exporter: metrics.NewExporter(store)}

	b.Handle(okResult(1))
	b.Handle(poller.PollResult{Frame: []byte(`{"status":{"fwd":1}}`), Unchanged: true})
	b.Handle(poller.PollResult{Err: source.ErrTimeout})

	require.NoError(t, cw.Close())
	require.Equal(t, 2, cw.Frames())
	require.Equal(t, "{\"status\":{\"fwd\":1}}\n{\"status\":{\"fwd\":1}}\n", buf.String())
}

func TestHandle_WriteFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	sw := &fakeStatusWriter{err: errors.New("link down")}
	b := &Bridge{Status: sw, Log: zap.New(core).Sugar()}

	b.Handle(okResult(1))
	require.Equal(t, 1, logs.FilterMessage("status write failed").Len())
}

func TestRun_TicksSecondsInError(t *testing.T) {
	sw := &fakeStatusWriter{}
	ticks := make(chan time.Time)
	in := make(chan poller.PollResult)

	b := &Bridge{Status: sw, SecondTick: ticks}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		b.Run(ctx, in)
		close(done)
	}()

	in <- poller.PollResult{Err: errors.New("boom")}
	ticks <- time.Now()
	ticks <- time.Now()
	cancel()
	<-done

	// start, failure, two ticks
	require.Len(t, sw.snaps, 4)
	require.Equal(t, status.HealthUnknown, sw.snaps[0].Health)
	require.Equal(t, status.ErrorCodeGeneric, sw.snaps[1].LastErrorCode)
	require.Equal(t, uint16(2), sw.last().SecondsInError)
}

func TestRun_StopsOnClosedInput(t *testing.T) {
	in := make(chan poller.PollResult)
	close(in)

	done := make(chan struct{})
	go func() {
		(&Bridge{SecondTick: make(chan time.Time)}).Run(context.Background(), in)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return on closed input")
	}
}
