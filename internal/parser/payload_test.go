// internal/parser/payload_test.go
package parser

import (
	"testing"

	"github.com/Jeffail/gabs/v2"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/amp-bridge/internal/record"
)

// Test-only encoders: they render records into the flat section grammar.
// Product code never encodes.

func set(t *testing.T, c *gabs.Container, v any, path ...string) {
	t.Helper()
	_, err := c.Set(v, path...)
	require.NoError(t, err)
}

func putStatus(t *testing.T, c *gabs.Container, s record.Status) {
	t.Helper()
	set(t, c, s.Fwd, "status", "fwd")
	set(t, c, s.Ref, "status", "ref")
	set(t, c, s.TrxFwd, "status", "trxfwd")
	set(t, c, s.SWR, "status", "swr")
	set(t, c, s.Current, "status", "current")
	set(t, c, s.Voltage, "status", "voltage")
	set(t, c, s.WaterTemp, "status", "water_temp")
	set(t, c, s.PlateTemp, "status", "plate_temp")
	set(t, c, s.Alarm, "status", "alarm")
	set(t, c, s.AlertReason, "status", "alert_reason")
	set(t, c, s.State, "status", "state")
	set(t, c, s.PTT, "status", "ptt")
	set(t, c, s.Band, "status", "band")
	set(t, c, s.PWMPump, "status", "pwm_pump")
	set(t, c, s.PWMCooler, "status", "pwm_cooler")
	set(t, c, s.AutoPWMPump, "status", "auto_pwm_pump")
	set(t, c, s.AutoPWMFan, "status", "auto_pwm_fan")
	set(t, c, s.ProtectionEnabled, "status", "protection_enabled")
}

func putSettings(t *testing.T, c *gabs.Container, s record.Settings) {
	t.Helper()
	set(t, c, s.MaxSWR, "settings", "max_swr")
	set(t, c, s.MaxCurrent, "settings", "max_current")
	set(t, c, s.MaxVoltage, "settings", "max_voltage")
	set(t, c, s.MaxWaterTemp, "settings", "max_water_temp")
	set(t, c, s.MaxPlateTemp, "settings", "max_plate_temp")
	set(t, c, s.MaxPumpSpeedTemp, "settings", "max_pump_speed_temp")
	set(t, c, s.MinPumpSpeedTemp, "settings", "min_pump_speed_temp")
	set(t, c, s.MaxFanSpeedTemp, "settings", "max_fan_speed_temp")
	set(t, c, s.MinFanSpeedTemp, "settings", "min_fan_speed_temp")
	set(t, c, s.MaxInputPower, "settings", "max_input_power")
	set(t, c, s.AutoBand, "settings", "autoband")
	set(t, c, s.DefaultBand, "settings", "default_band")
}

func putCalibration(t *testing.T, c *gabs.Container, k record.Calibration) {
	t.Helper()
	set(t, c, k.FwdLow, "calibration", "fwd_low")
	set(t, c, k.FwdMid, "calibration", "fwd_mid")
	set(t, c, k.FwdHigh, "calibration", "fwd_high")
	set(t, c, k.RefLow, "calibration", "ref_low")
	set(t, c, k.RefMid, "calibration", "ref_mid")
	set(t, c, k.RefHigh, "calibration", "ref_high")
	set(t, c, k.TrxFwdLow, "calibration", "trxfwd_low")
	set(t, c, k.TrxFwdMid, "calibration", "trxfwd_mid")
	set(t, c, k.TrxFwdHigh, "calibration", "trxfwd_high")
	set(t, c, k.VoltageCoef, "calibration", "voltage_coef")
	set(t, c, k.CurrentCoef, "calibration", "current_coef")
	set(t, c, k.ReserveCoef, "calibration", "reserve_coef")
	set(t, c, k.CurrentZero, "calibration", "current_zero")
	set(t, c, k.CurrentSens, "calibration", "current_sens")
}

func sampleStatus() record.Status {
	return record.Status{
		Fwd:               812.5,
		Ref:               14.25,
		TrxFwd:            37.75,
		SWR:               1.3,
		Current:           21.6,
		Voltage:           48.2,
		WaterTemp:         31.5,
		PlateTemp:         -2.125,
		Alarm:             true,
		AlertReason:       "HIGH SWR ON 20m",
		State:             true,
		PTT:               true,
		Band:              "20m",
		PWMPump:           180,
		PWMCooler:         -7,
		AutoPWMPump:       true,
		AutoPWMFan:        false,
		ProtectionEnabled: true,
	}
}

func sampleSettings() record.Settings {
	return record.Settings{
		MaxSWR:           2.5,
		MaxCurrent:       30,
		MaxVoltage:       52.5,
		MaxWaterTemp:     55,
		MaxPlateTemp:     80.75,
		MaxPumpSpeedTemp: 45,
		MinPumpSpeedTemp: 25,
		MaxFanSpeedTemp:  50.5,
		MinFanSpeedTemp:  28,
		MaxInputPower:    100,
		AutoBand:         true,
		DefaultBand:      "160m",
	}
}

func sampleCalibration() record.Calibration {
	return record.Calibration{
		FwdLow:      1.02,
		FwdMid:      0.987,
		FwdHigh:     1.1125,
		RefLow:      0.5,
		RefMid:      0.625,
		RefHigh:     0.71,
		TrxFwdLow:   2.2,
		TrxFwdMid:   2.05,
		TrxFwdHigh:  1.95,
		VoltageCoef: 0.0161,
		CurrentCoef: 0.0244,
		ReserveCoef: 1,
		CurrentZero: 2.5,
		CurrentSens: 0.066,
	}
}
