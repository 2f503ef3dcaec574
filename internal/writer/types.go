// internal/writer/types.go
package writer

import "github.com/tamzrod/amp-bridge/internal/status"

// areaHoldingRegisters is the only memory area the status block lives in.
const areaHoldingRegisters byte = 3

// endpointClient is the exact contract the writer uses.
// Both the Modbus and the Raw Ingest clients satisfy it.
type endpointClient interface {
	WriteRegisters(area byte, unitID uint8, addr uint16, regs []uint16) error
}

// StatusPlan says where one device status block is delivered.
type StatusPlan struct {
	Endpoint   string
	UnitID     uint8
	BaseSlot   uint16 // block index; address = BaseSlot * SlotsPerDevice
	DeviceName string
}

// StatusWriter is the delivery-only contract for device status.
// It receives a snapshot and writes it verbatim.
type StatusWriter interface {
	WriteStatus(s status.Snapshot) error
}
