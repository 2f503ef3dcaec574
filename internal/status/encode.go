// internal/status/encode.go
package status

import "math"

// Encode converts a Snapshot into a full device status block.
// Layout is protocol-locked. The device name slots are left zero;
// the writer owns identity.
// No IO. No side effects.
func Encode(s Snapshot) []uint16 {
	regs := make([]uint16, SlotsPerDevice)

	regs[SlotHealthCode] = s.Health
	regs[SlotLastErrorCode] = s.LastErrorCode
	regs[SlotSecondsInError] = s.SecondsInError

	a := s.Amp
	putFloat(regs, SlotFwd, a.Fwd)
	putFloat(regs, SlotRef, a.Ref)
	putFloat(regs, SlotTrxFwd, a.TrxFwd)
	putFloat(regs, SlotSWR, a.SWR)
	putFloat(regs, SlotCurrent, a.Current)
	putFloat(regs, SlotVoltage, a.Voltage)
	putFloat(regs, SlotWaterTemp, a.WaterTemp)
	putFloat(regs, SlotPlateTemp, a.PlateTemp)

	var flags uint16
	if a.Alarm {
		flags |= FlagAlarm
	}
	if a.State {
		flags |= FlagState
	}
	if a.PTT {
		flags |= FlagPTT
	}
	if a.AutoPWMPump {
		flags |= FlagAutoPWMPump
	}
	if a.AutoPWMFan {
		flags |= FlagAutoPWMFan
	}
	if a.ProtectionEnabled {
		flags |= FlagProtectionEnabled
	}
	regs[SlotFlags] = flags

	regs[SlotPWMPump] = clampU16(a.PWMPump)
	regs[SlotPWMCooler] = clampU16(a.PWMCooler)

	copy(regs[SlotBandStart:SlotBandStart+SlotBandSlots], EncodeASCII(a.Band, SlotBandSlots))
	copy(regs[SlotAlertStart:SlotAlertStart+SlotAlertSlots], EncodeASCII(a.AlertReason, SlotAlertSlots))

	return regs
}

// Float reads back the float32 stored at slot.
func Float(regs []uint16, slot int) float32 {
	if slot < 0 || slot+1 >= len(regs) {
		return 0
	}
	return math.Float32frombits(uint32(regs[slot])<<16 | uint32(regs[slot+1]))
}

// EncodeASCII packs up to 2*slots ASCII characters into slots registers.
// Each register stores two bytes in big-endian order; non-printable bytes
// become '?', unused bytes are zero.
func EncodeASCII(s string, slots int) []uint16 {
	out := make([]uint16, slots)

	b := []byte(s)
	if len(b) > slots*2 {
		b = b[:slots*2]
	}

	// sanitize to printable ASCII
	for i := 0; i < len(b); i++ {
		if b[i] < 0x20 || b[i] > 0x7E {
			b[i] = '?'
		}
	}

	for i := 0; i < slots*2; i += 2 {
		var hi, lo byte
		if i < len(b) {
			hi = b[i]
		}
		if i+1 < len(b) {
			lo = b[i+1]
		}
		out[i/2] = uint16(hi)<<8 | uint16(lo)
	}

	return out
}

func putFloat(regs []uint16, slot int, v float32) {
	bits := math.Float32bits(v)
	regs[slot] = uint16(bits >> 16)
	regs[slot+1] = uint16(bits)
}

func clampU16(v int) uint16 {
	switch {
	case v < 0:
		return 0
	case v > math.MaxUint16:
		return math.MaxUint16
	}
	return uint16(v)
}
