// internal/metrics/exporter_test.go
package metrics

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/amp-bridge/internal/parser"
	"github.com/tamzrod/amp-bridge/internal/poller"
	"github.com/tamzrod/amp-bridge/internal/record"
	"github.com/tamzrod/amp-bridge/internal/status"
)

func newRegistry(t *testing.T, store *record.Store) (*prometheus.Registry, *Exporter) {
	t.Helper()
	registry := prometheus.NewRegistry()
	exporter := NewExporter(store)
	registry.MustRegister(exporter)
	return registry, exporter
}

func TestExporter_EmptyStoreOnlyLinkGauges(t *testing.T) {
	registry, _ := newRegistry(t, &record.Store{})

	count, err := testutil.GatherAndCount(registry)
	require.NoError(t, err)
	// frame_bytes_total, link_health, link_seconds_in_error
	assert.Equal(t, 3, count)
}

func TestExporter_StatusValues(t *testing.T) {
	store := &record.Store{}
	store.Update(func(s *record.Set) {
		s.Status = record.Status{
			Fwd:         812.5,
			SWR:         1.25,
			PTT:         true,
			Alarm:       true,
			AlertReason: "HIGH SWR",
			Band:        "20m",
			PWMPump:     180,
		}
		s.Valid = record.SectionStatus
		s.UpdatedAt = time.Unix(1700000000, 0)
	})
	registry, exporter := newRegistry(t, store)

	expected := `
		# HELP ampbridge_status_fwd Forward power
		# TYPE ampbridge_status_fwd gauge
		ampbridge_status_fwd 812.5
		# HELP ampbridge_status_swr Standing wave ratio
		# TYPE ampbridge_status_swr gauge
		ampbridge_status_swr 1.25
		# HELP ampbridge_state_ptt Push-to-talk asserted (1=on, 0=off)
		# TYPE ampbridge_state_ptt gauge
		ampbridge_state_ptt 1
		# HELP ampbridge_state_pwm_pump Pump duty cycle
		# TYPE ampbridge_state_pwm_pump gauge
		ampbridge_state_pwm_pump 180
		# HELP ampbridge_status_alert_info Current alert reason; value is the alarm flag
		# TYPE ampbridge_status_alert_info gauge
		ampbridge_status_alert_info{reason="HIGH SWR"} 1
		# HELP ampbridge_state_band_info Selected band
		# TYPE ampbridge_state_band_info gauge
		ampbridge_state_band_info{band="20m"} 1
		# HELP ampbridge_last_update_timestamp_seconds Unix time of the last successful section decode
		# TYPE ampbridge_last_update_timestamp_seconds gauge
		ampbridge_last_update_timestamp_seconds 1.7e+09
	`
	err := testutil.CollectAndCompare(exporter, strings.NewReader(expected),
		"ampbridge_status_fwd",
		"ampbridge_status_swr",
		"ampbridge_state_ptt",
		"ampbridge_state_pwm_pump",
		"ampbridge_status_alert_info",
		"ampbridge_state_band_info",
		"ampbridge_last_update_timestamp_seconds",
	)
	require.NoError(t, err)

	// no settings or calibration until decoded
	count, err := testutil.GatherAndCount(registry, "ampbridge_settings_max_swr", "ampbridge_calibration_fwd_low")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestExporter_AllSectionsCount(t *testing.T) {
	store := &record.Store{}
	store.Update(func(s *record.Set) {
		s.Valid = record.AllSections
		s.UpdatedAt = time.Now()
	})
	registry, _ := newRegistry(t, store)

	count, err := testutil.GatherAndCount(registry)
	require.NoError(t, err)
	// 9 status + 7 state + 11 settings + 14 calibration
	// + alert, band, default band, last update + 3 link gauges
	assert.Equal(t, 9+7+11+14+4+3, count)

	problems, err := testutil.GatherAndLint(registry)
	require.NoError(t, err)
	assert.Empty(t, problems, "metrics have lint problems: %v", problems)
}

func TestExporter_ObservePollResults(t *testing.T) {
	store := &record.Store{}
	registry, exporter := newRegistry(t, store)

	frame := []byte(`{"status":{"fwd":1,"band":"40m"}}`)

	var st record.Status
	pres, err := parser.DecodeStatus(frame, &st)
	require.NoError(t, err)

	exporter.Observe(poller.PollResult{
		Frame:    frame,
		Decoded:  record.SectionStatus,
		Presence: map[record.Section]parser.Presence{record.SectionStatus: pres},
	})
	exporter.Observe(poller.PollResult{Frame: frame, Unchanged: true})
	exporter.Observe(poller.PollResult{Err: parser.ErrUnterminated})
	exporter.Observe(poller.PollResult{Err: errors.New("link down")})

	assert.Equal(t, 1.0, testutil.ToFloat64(exporter.polls.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(exporter.polls.WithLabelValues("unchanged")))
	assert.Equal(t, 2.0, testutil.ToFloat64(exporter.polls.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(exporter.pollErrors.WithLabelValues("12")))
	assert.Equal(t, 1.0, testutil.ToFloat64(exporter.pollErrors.WithLabelValues("1")))
	assert.Equal(t, float64(2*len(frame)), testutil.ToFloat64(exporter.frameBytes))

	count, err := testutil.GatherAndCount(registry, "ampbridge_field_present")
	require.NoError(t, err)
	assert.Equal(t, len(parser.Keys(record.SectionStatus)), count)

	require.True(t, pres.Has("fwd"))
	require.True(t, pres.Has("band"))
	assert.Len(t, pres.Missing(), count-2)
}

func TestExporter_ObserveStatus(t *testing.T) {
	_, exporter := newRegistry(t, &record.Store{})

	exporter.ObserveStatus(status.Snapshot{Health: status.HealthError, SecondsInError: 9})

	assert.Equal(t, float64(status.HealthError), testutil.ToFloat64(exporter.health))
	assert.Equal(t, 9.0, testutil.ToFloat64(exporter.inError))
}
