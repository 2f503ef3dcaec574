// internal/record/record.go
package record

// Text field capacities, in bytes.
// Values longer than the capacity are truncated on assignment.
const (
	AlertReasonCap = 19
	BandCap        = 9
)

// ---- STATUS ----

// Status is the amplifier telemetry snapshot.
type Status struct {
	Fwd       float32 // forward power
	Ref       float32 // reflected power
	TrxFwd    float32 // through power from the transceiver
	SWR       float32
	Current   float32
	Voltage   float32
	WaterTemp float32
	PlateTemp float32

	Alarm       bool
	AlertReason string // <= AlertReasonCap
	State       bool   // transmit state
	PTT         bool
	Band        string // <= BandCap

	PWMPump   int
	PWMCooler int

	AutoPWMPump       bool
	AutoPWMFan        bool
	ProtectionEnabled bool
}

// ---- SETTINGS ----

// Settings holds operator-configured thresholds.
type Settings struct {
	MaxSWR       float32
	MaxCurrent   float32
	MaxVoltage   float32
	MaxWaterTemp float32
	MaxPlateTemp float32

	// Pump and fan speed-curve breakpoints.
	MaxPumpSpeedTemp float32
	MinPumpSpeedTemp float32
	MaxFanSpeedTemp  float32
	MinFanSpeedTemp  float32

	MaxInputPower int
	AutoBand      bool
	DefaultBand   string // <= BandCap
}

// ---- CALIBRATION ----

// Calibration holds per-power-range linear correction coefficients.
type Calibration struct {
	FwdLow  float32
	FwdMid  float32
	FwdHigh float32

	RefLow  float32
	RefMid  float32
	RefHigh float32

	TrxFwdLow  float32
	TrxFwdMid  float32
	TrxFwdHigh float32

	VoltageCoef float32
	CurrentCoef float32
	ReserveCoef float32

	// Current sense zero offset and sensitivity.
	CurrentZero float32
	CurrentSens float32
}

// ---- STATE ----

// State is the control-relevant subset of Status.
// No decoder fills it; use StateOf.
type State struct {
	PTT         bool
	PWMPump     int
	PWMCooler   int
	Band        string // <= BandCap
	AutoPWMPump bool
	AutoPWMFan  bool
	State       bool
	Alarm       bool
}

// StateOf projects s onto the control state.
func StateOf(s Status) State {
	return State{
		PTT:         s.PTT,
		PWMPump:     s.PWMPump,
		PWMCooler:   s.PWMCooler,
		Band:        Truncate(s.Band, BandCap),
		AutoPWMPump: s.AutoPWMPump,
		AutoPWMFan:  s.AutoPWMFan,
		State:       s.State,
		Alarm:       s.Alarm,
	}
}

// Truncate returns at most n leading bytes of s.
func Truncate(s string, n int) string {
	if n < 0 {
		n = 0
	}
	if len(s) > n {
		return s[:n]
	}
	return s
}
