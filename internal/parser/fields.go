// internal/parser/fields.go
package parser

import "github.com/tamzrod/amp-bridge/internal/record"

// field binds one payload key to one record attribute.
type field[T any] struct {
	key string
	set func(dst *T, v string)
}

func keysOf[T any](fields []field[T]) []string {
	keys := make([]string, len(fields))
	for i, f := range fields {
		keys[i] = f.key
	}
	return keys
}

// Keys returns the payload keys a section decoder reads, in decode order.
func Keys(s record.Section) []string {
	switch s {
	case record.SectionStatus:
		return keysOf(statusFields)
	case record.SectionSettings:
		return keysOf(settingsFields)
	case record.SectionCalibration:
		return keysOf(calibrationFields)
	}
	return nil
}

// ---- STATUS ----

var statusFields = []field[record.Status]{
	{"fwd", func(r *record.Status, v string) { r.Fwd = toFloat(v) }},
	{"ref", func(r *record.Status, v string) { r.Ref = toFloat(v) }},
	{"trxfwd", func(r *record.Status, v string) { r.TrxFwd = toFloat(v) }},
	{"swr", func(r *record.Status, v string) { r.SWR = toFloat(v) }},
	{"current", func(r *record.Status, v string) { r.Current = toFloat(v) }},
	{"voltage", func(r *record.Status, v string) { r.Voltage = toFloat(v) }},
	{"water_temp", func(r *record.Status, v string) { r.WaterTemp = toFloat(v) }},
	{"plate_temp", func(r *record.Status, v string) { r.PlateTemp = toFloat(v) }},
	{"alarm", func(r *record.Status, v string) { r.Alarm = toBool(v) }},
	{"alert_reason", func(r *record.Status, v string) { r.AlertReason = toText(v, record.AlertReasonCap) }},
	{"state", func(r *record.Status, v string) { r.State = toBool(v) }},
	{"ptt", func(r *record.Status, v string) { r.PTT = toBool(v) }},
	{"band", func(r *record.Status, v string) { r.Band = toText(v, record.BandCap) }},
	{"pwm_pump", func(r *record.Status, v string) { r.PWMPump = toInt(v) }},
	{"pwm_cooler", func(r *record.Status, v string) { r.PWMCooler = toInt(v) }},
	{"auto_pwm_pump", func(r *record.Status, v string) { r.AutoPWMPump = toBool(v) }},
	{"auto_pwm_fan", func(r *record.Status, v string) { r.AutoPWMFan = toBool(v) }},
	{"protection_enabled", func(r *record.Status, v string) { r.ProtectionEnabled = toBool(v) }},
}

// ---- SETTINGS ----

var settingsFields = []field[record.Settings]{
	{"max_swr", func(r *record.Settings, v string) { r.MaxSWR = toFloat(v) }},
	{"max_current", func(r *record.Settings, v string) { r.MaxCurrent = toFloat(v) }},
	{"max_voltage", func(r *record.Settings, v string) { r.MaxVoltage = toFloat(v) }},
	{"max_water_temp", func(r *record.Settings, v string) { r.MaxWaterTemp = toFloat(v) }},
	{"max_plate_temp", func(r *record.Settings, v string) { r.MaxPlateTemp = toFloat(v) }},
	{"max_pump_speed_temp", func(r *record.Settings, v string) { r.MaxPumpSpeedTemp = toFloat(v) }},
	{"min_pump_speed_temp", func(r *record.Settings, v string) { r.MinPumpSpeedTemp = toFloat(v) }},
	{"max_fan_speed_temp", func(r *record.Settings, v string) { r.MaxFanSpeedTemp = toFloat(v) }},
	{"min_fan_speed_temp", func(r *record.Settings, v string) { r.MinFanSpeedTemp = toFloat(v) }},
	{"max_input_power", func(r *record.Settings, v string) { r.MaxInputPower = toInt(v) }},
	{"autoband", func(r *record.Settings, v string) { r.AutoBand = toBool(v) }},
	{"default_band", func(r *record.Settings, v string) { r.DefaultBand = toText(v, record.BandCap) }},
}

// ---- CALIBRATION ----

var calibrationFields = []field[record.Calibration]{
	{"fwd_low", func(r *record.Calibration, v string) { r.FwdLow = toFloat(v) }},
	{"fwd_mid", func(r *record.Calibration, v string) { r.FwdMid = toFloat(v) }},
	{"fwd_high", func(r *record.Calibration, v string) { r.FwdHigh = toFloat(v) }},
	{"ref_low", func(r *record.Calibration, v string) { r.RefLow = toFloat(v) }},
	{"ref_mid", func(r *record.Calibration, v string) { r.RefMid = toFloat(v) }},
	{"ref_high", func(r *record.Calibration, v string) { r.RefHigh = toFloat(v) }},
	{"trxfwd_low", func(r *record.Calibration, v string) { r.TrxFwdLow = toFloat(v) }},
	{"trxfwd_mid", func(r *record.Calibration, v string) { r.TrxFwdMid = toFloat(v) }},
	{"trxfwd_high", func(r *record.Calibration, v string) { r.TrxFwdHigh = toFloat(v) }},
	{"voltage_coef", func(r *record.Calibration, v string) { r.VoltageCoef = toFloat(v) }},
	{"current_coef", func(r *record.Calibration, v string) { r.CurrentCoef = toFloat(v) }},
	{"reserve_coef", func(r *record.Calibration, v string) { r.ReserveCoef = toFloat(v) }},
	{"current_zero", func(r *record.Calibration, v string) { r.CurrentZero = toFloat(v) }},
	{"current_sens", func(r *record.Calibration, v string) { r.CurrentSens = toFloat(v) }},
}
