// internal/writer/status_writer.go
package writer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tamzrod/amp-bridge/internal/status"
)

// deviceStatusWriter delivers the amplifier status block.
//
// The first successful call writes the whole block, device name included.
// Later calls write only the contiguous register runs that changed.
// Any failure forces a full re-assert on the next call.
type deviceStatusWriter struct {
	plan StatusPlan
	cli  endpointClient

	needFull bool
	last     []uint16
	nameRegs []uint16
}

// NewDeviceStatusWriter builds a status writer for one block.
func NewDeviceStatusWriter(plan StatusPlan, cli endpointClient) (*deviceStatusWriter, error) {
	if cli == nil {
		return nil, fmt.Errorf("status writer: missing client for endpoint %s", plan.Endpoint)
	}
	if (uint32(plan.BaseSlot)+1)*status.SlotsPerDevice > 0x10000 {
		return nil, fmt.Errorf("status writer: base slot %d out of address range", plan.BaseSlot)
	}

	return &deviceStatusWriter{
		plan:     plan,
		cli:      cli,
		needFull: true,
		nameRegs: status.EncodeASCII(plan.DeviceName, status.SlotDeviceNameSlots),
	}, nil
}

// WriteStatus delivers a device status snapshot into status memory.
func (sw *deviceStatusWriter) WriteStatus(s status.Snapshot) error {
	if sw == nil {
		return errors.New("status writer: disabled")
	}

	regs := sw.blockRegs(s)
	base := sw.baseAddr()

	// ---- full block write (identity re-assert) ----
	if sw.needFull {
		if err := sw.cli.WriteRegisters(areaHoldingRegisters, sw.plan.UnitID, base, regs); err != nil {
			return fmt.Errorf("status writer: full block write failed: %w", err)
		}
		sw.needFull = false
		sw.last = regs
		return nil
	}

	// ---- incremental runs ----
	var errs []string
	for _, r := range changedRuns(sw.last, regs) {
		run := regs[r.start:r.end]
		if err := sw.cli.WriteRegisters(areaHoldingRegisters, sw.plan.UnitID, base+uint16(r.start), run); err != nil {
			errs = append(errs, fmt.Sprintf("slots %d-%d write failed: %v", r.start, r.end-1, err))
			continue
		}
		copy(sw.last[r.start:r.end], run)
	}

	if len(errs) > 0 {
		// partial failure: the target may hold anything now
		sw.needFull = true
		return errors.New("status writer: " + strings.Join(errs, " | "))
	}

	return nil
}

// Invalidate forces a full block write on the next call.
func (sw *deviceStatusWriter) Invalidate() {
	if sw != nil {
		sw.needFull = true
	}
}

func (sw *deviceStatusWriter) baseAddr() uint16 {
	// Each device owns a fixed SlotsPerDevice block.
	return sw.plan.BaseSlot * status.SlotsPerDevice
}

func (sw *deviceStatusWriter) blockRegs(s status.Snapshot) []uint16 {
	regs := status.Encode(s)
	copy(regs[status.SlotDeviceNameStart:status.SlotDeviceNameEnd+1], sw.nameRegs)
	return regs
}

// run is a half-open slot range [start, end).
type run struct{ start, end int }

// changedRuns returns the maximal runs of slots where prev and next differ.
func changedRuns(prev, next []uint16) []run {
	var out []run
	start := -1
	for i := range next {
		same := i < len(prev) && prev[i] == next[i]
		switch {
		case !same && start < 0:
			start = i
		case same && start >= 0:
			out = append(out, run{start, i})
			start = -1
		}
	}
	if start >= 0 {
		out = append(out, run{start, len(next)})
	}
	return out
}
