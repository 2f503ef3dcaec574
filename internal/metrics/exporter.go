// internal/metrics/exporter.go
package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tamzrod/amp-bridge/internal/parser"
	"github.com/tamzrod/amp-bridge/internal/poller"
	"github.com/tamzrod/amp-bridge/internal/record"
	"github.com/tamzrod/amp-bridge/internal/status"
)

const namespace = "ampbridge"

// gauge maps one record field onto a metric.
type gauge[T any] struct {
	desc  *prometheus.Desc
	value func(T) float64
}

func newGauge[T any](subsystem, name, help string, value func(T) float64) gauge[T] {
	return gauge[T]{
		desc:  prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystem, name), help, nil, nil),
		value: value,
	}
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Exporter is a prometheus.Collector over the record store.
// Record gauges are read from the store at scrape time; poll outcomes and
// link health are pushed by the bridge through Observe and ObserveStatus.
type Exporter struct {
	store *record.Store

	status      []gauge[record.Status]
	state       []gauge[record.State]
	settings    []gauge[record.Settings]
	calibration []gauge[record.Calibration]

	alertInfo       *prometheus.Desc
	bandInfo        *prometheus.Desc
	defaultBandInfo *prometheus.Desc
	fieldPresent    *prometheus.Desc
	lastUpdate      *prometheus.Desc

	polls      *prometheus.CounterVec
	pollErrors *prometheus.CounterVec
	frameBytes prometheus.Counter
	health     prometheus.Gauge
	inError    prometheus.Gauge

	mu       sync.Mutex
	presence map[record.Section]parser.Presence
}

// NewExporter builds an exporter reading from store.
func NewExporter(store *record.Store) *Exporter {
	return &Exporter{
		store: store,

		status: []gauge[record.Status]{
			newGauge("status", "fwd", "Forward power", func(s record.Status) float64 { return float64(s.Fwd) }),
			newGauge("status", "ref", "Reflected power", func(s record.Status) float64 { return float64(s.Ref) }),
			newGauge("status", "trxfwd", "Transceiver forward power", func(s record.Status) float64 { return float64(s.TrxFwd) }),
			newGauge("status", "swr", "Standing wave ratio", func(s record.Status) float64 { return float64(s.SWR) }),
			newGauge("status", "current", "Amplifier current", func(s record.Status) float64 { return float64(s.Current) }),
			newGauge("status", "voltage", "Amplifier voltage", func(s record.Status) float64 { return float64(s.Voltage) }),
			newGauge("status", "water_temp", "Coolant temperature", func(s record.Status) float64 { return float64(s.WaterTemp) }),
			newGauge("status", "plate_temp", "Plate temperature", func(s record.Status) float64 { return float64(s.PlateTemp) }),
			newGauge("status", "protection_enabled", "Protection enabled (1=on, 0=off)", func(s record.Status) float64 { return boolValue(s.ProtectionEnabled) }),
		},

		state: []gauge[record.State]{
			newGauge("state", "ptt", "Push-to-talk asserted (1=on, 0=off)", func(s record.State) float64 { return boolValue(s.PTT) }),
			newGauge("state", "transmitting", "Transmit state (1=on, 0=off)", func(s record.State) float64 { return boolValue(s.State) }),
			newGauge("state", "alarm", "Alarm raised (1=on, 0=off)", func(s record.State) float64 { return boolValue(s.Alarm) }),
			newGauge("state", "pwm_pump", "Pump duty cycle", func(s record.State) float64 { return float64(s.PWMPump) }),
			newGauge("state", "pwm_cooler", "Cooler duty cycle", func(s record.State) float64 { return float64(s.PWMCooler) }),
			newGauge("state", "auto_pwm_pump", "Automatic pump control (1=on, 0=off)", func(s record.State) float64 { return boolValue(s.AutoPWMPump) }),
			newGauge("state", "auto_pwm_fan", "Automatic fan control (1=on, 0=off)", func(s record.State) float64 { return boolValue(s.AutoPWMFan) }),
		},

		settings: []gauge[record.Settings]{
			newGauge("settings", "max_swr", "SWR protection limit", func(s record.Settings) float64 { return float64(s.MaxSWR) }),
			newGauge("settings", "max_current", "Current protection limit", func(s record.Settings) float64 { return float64(s.MaxCurrent) }),
			newGauge("settings", "max_voltage", "Voltage protection limit", func(s record.Settings) float64 { return float64(s.MaxVoltage) }),
			newGauge("settings", "max_water_temp", "Coolant temperature limit", func(s record.Settings) float64 { return float64(s.MaxWaterTemp) }),
			newGauge("settings", "max_plate_temp", "Plate temperature limit", func(s record.Settings) float64 { return float64(s.MaxPlateTemp) }),
			newGauge("settings", "max_pump_speed_temp", "Temperature at full pump speed", func(s record.Settings) float64 { return float64(s.MaxPumpSpeedTemp) }),
			newGauge("settings", "min_pump_speed_temp", "Temperature at minimum pump speed", func(s record.Settings) float64 { return float64(s.MinPumpSpeedTemp) }),
			newGauge("settings", "max_fan_speed_temp", "Temperature at full fan speed", func(s record.Settings) float64 { return float64(s.MaxFanSpeedTemp) }),
			newGauge("settings", "min_fan_speed_temp", "Temperature at minimum fan speed", func(s record.Settings) float64 { return float64(s.MinFanSpeedTemp) }),
			newGauge("settings", "max_input_power", "Input power limit", func(s record.Settings) float64 { return float64(s.MaxInputPower) }),
			newGauge("settings", "autoband", "Automatic band selection (1=on, 0=off)", func(s record.Settings) float64 { return boolValue(s.AutoBand) }),
		},

		calibration: calibrationGauges(),

		alertInfo: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "status", "alert_info"),
			"Current alert reason; value is the alarm flag",
			[]string{"reason"},
			nil,
		),
		bandInfo: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "state", "band_info"),
			"Selected band",
			[]string{"band"},
			nil,
		),
		defaultBandInfo: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "settings", "default_band_info"),
			"Configured default band",
			[]string{"band"},
			nil,
		),
		fieldPresent: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "field_present"),
			"Whether the key was present in the last decoded section (1=present, 0=absent)",
			[]string{"section", "key"},
			nil,
		),
		lastUpdate: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "last_update_timestamp_seconds"),
			"Unix time of the last successful section decode",
			nil,
			nil,
		),

		polls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "polls_total",
			Help:      "Poll cycles by outcome",
		}, []string{"result"}),
		pollErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "poll_errors_total",
			Help:      "Failed poll cycles by status error code",
		}, []string{"code"}),
		frameBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frame_bytes_total",
			Help:      "Bytes of payload frames read",
		}),
		health: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "link",
			Name:      "health",
			Help:      "Link health code as written to the status block",
		}),
		inError: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "link",
			Name:      "seconds_in_error",
			Help:      "Seconds the link has been unhealthy",
		}),

		presence: make(map[record.Section]parser.Presence),
	}
}

func calibrationGauges() []gauge[record.Calibration] {
	fields := []struct {
		name  string
		value func(record.Calibration) float64
	}{
		{"fwd_low", func(c record.Calibration) float64 { return float64(c.FwdLow) }},
		{"fwd_mid", func(c record.Calibration) float64 { return float64(c.FwdMid) }},
		{"fwd_high", func(c record.Calibration) float64 { return float64(c.FwdHigh) }},
		{"ref_low", func(c record.Calibration) float64 { return float64(c.RefLow) }},
		{"ref_mid", func(c record.Calibration) float64 { return float64(c.RefMid) }},
		{"ref_high", func(c record.Calibration) float64 { return float64(c.RefHigh) }},
		{"trxfwd_low", func(c record.Calibration) float64 { return float64(c.TrxFwdLow) }},
		{"trxfwd_mid", func(c record.Calibration) float64 { return float64(c.TrxFwdMid) }},
		{"trxfwd_high", func(c record.Calibration) float64 { return float64(c.TrxFwdHigh) }},
		{"voltage_coef", func(c record.Calibration) float64 { return float64(c.VoltageCoef) }},
		{"current_coef", func(c record.Calibration) float64 { return float64(c.CurrentCoef) }},
		{"reserve_coef", func(c record.Calibration) float64 { return float64(c.ReserveCoef) }},
		{"current_zero", func(c record.Calibration) float64 { return float64(c.CurrentZero) }},
		{"current_sens", func(c record.Calibration) float64 { return float64(c.CurrentSens) }},
	}

	out := make([]gauge[record.Calibration], 0, len(fields))
	for _, f := range fields {
		out = append(out, newGauge("calibration", f.name, "Calibration coefficient "+f.name, f.value))
	}
	return out
}

// Observe accounts one poll result.
func (e *Exporter) Observe(res poller.PollResult) {
	e.frameBytes.Add(float64(len(res.Frame)))

	switch {
	case res.Err != nil:
		e.polls.WithLabelValues("error").Inc()
		e.pollErrors.WithLabelValues(strconv.Itoa(int(status.ErrorCode(res.Err)))).Inc()
	case res.Unchanged:
		e.polls.WithLabelValues("unchanged").Inc()
	default:
		e.polls.WithLabelValues("ok").Inc()
	}

	if len(res.Presence) == 0 {
		return
	}
	e.mu.Lock()
	for sec, p := range res.Presence {
		e.presence[sec] = p
	}
	e.mu.Unlock()
}

// ObserveStatus mirrors the link part of the status block.
func (e *Exporter) ObserveStatus(s status.Snapshot) {
	e.health.Set(float64(s.Health))
	e.inError.Set(float64(s.SecondsInError))
}

func (e *Exporter) Describe(ch chan<- *prometheus.Desc) {
	for _, g := range e.status {
		ch <- g.desc
	}
	for _, g := range e.state {
		ch <- g.desc
	}
	for _, g := range e.settings {
		ch <- g.desc
	}
	for _, g := range e.calibration {
		ch <- g.desc
	}
	ch <- e.alertInfo
	ch <- e.bandInfo
	ch <- e.defaultBandInfo
	ch <- e.fieldPresent
	ch <- e.lastUpdate

	e.polls.Describe(ch)
	e.pollErrors.Describe(ch)
	ch <- e.frameBytes.Desc()
	ch <- e.health.Desc()
	ch <- e.inError.Desc()
}

func (e *Exporter) Collect(ch chan<- prometheus.Metric) {
	set := e.store.Snapshot()

	if set.Valid.Has(record.SectionStatus) {
		collect(ch, e.status, set.Status)

		st := record.StateOf(set.Status)
		collect(ch, e.state, st)

		ch <- prometheus.MustNewConstMetric(e.alertInfo, prometheus.GaugeValue, boolValue(st.Alarm), set.Status.AlertReason)
		ch <- prometheus.MustNewConstMetric(e.bandInfo, prometheus.GaugeValue, 1, st.Band)
	}

	if set.Valid.Has(record.SectionSettings) {
		collect(ch, e.settings, set.Settings)
		ch <- prometheus.MustNewConstMetric(e.defaultBandInfo, prometheus.GaugeValue, 1, set.Settings.DefaultBand)
	}

	if set.Valid.Has(record.SectionCalibration) {
		collect(ch, e.calibration, set.Calibration)
	}

	if !set.UpdatedAt.IsZero() {
		ch <- prometheus.MustNewConstMetric(e.lastUpdate, prometheus.GaugeValue, float64(set.UpdatedAt.UnixNano())/1e9)
	}

	e.mu.Lock()
	for sec, p := range e.presence {
		for _, k := range p.Found() {
			ch <- prometheus.MustNewConstMetric(e.fieldPresent, prometheus.GaugeValue, 1, sec.Name(), k)
		}
		for _, k := range p.Missing() {
			ch <- prometheus.MustNewConstMetric(e.fieldPresent, prometheus.GaugeValue, 0, sec.Name(), k)
		}
	}
	e.mu.Unlock()

	e.polls.Collect(ch)
	e.pollErrors.Collect(ch)
	ch <- e.frameBytes
	ch <- e.health
	ch <- e.inError
}

func collect[T any](ch chan<- prometheus.Metric, gauges []gauge[T], v T) {
	for _, g := range gauges {
		ch <- prometheus.MustNewConstMetric(g.desc, prometheus.GaugeValue, g.value(v))
	}
}
