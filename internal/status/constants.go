// internal/status/constants.go
package status

// Amplifier Status Block layout constants.
// These values define the protocol and MUST NOT be configurable.

// ---- BLOCK GEOMETRY ----

// SlotsPerDevice is the fixed number of registers per device block.
const SlotsPerDevice = 48

// ---- LINK HEALTH ----

// SlotHealthCode holds the feed health state.
const SlotHealthCode = 0

// SlotLastErrorCode holds the last error code.
const SlotLastErrorCode = 1

// SlotSecondsInError holds the duration (in seconds) the feed has been in error.
const SlotSecondsInError = 2

// ---- MEASUREMENTS ----

// Measurements are float32 values spread over two registers, high word first.
const (
	SlotFwd       = 3
	SlotRef       = 5
	SlotTrxFwd    = 7
	SlotSWR       = 9
	SlotCurrent   = 11
	SlotVoltage   = 13
	SlotWaterTemp = 15
	SlotPlateTemp = 17
)

// ---- CONTROL ----

// SlotFlags holds one bit per boolean status field.
const SlotFlags = 19

// Flag bits inside SlotFlags.
const (
	FlagAlarm uint16 = 1 << iota
	FlagState
	FlagPTT
	FlagAutoPWMPump
	FlagAutoPWMFan
	FlagProtectionEnabled
)

// SlotPWMPump and SlotPWMCooler hold duty cycles clamped to 0..65535.
const SlotPWMPump = 20
const SlotPWMCooler = 21

// ---- TEXT ----

// Text fields pack two ASCII bytes per register, big-endian.

// SlotBandStart is the first band register.
const SlotBandStart = 22

// SlotBandSlots holds BandCap (9) characters.
const SlotBandSlots = 5

// SlotAlertStart is the first alert_reason register.
const SlotAlertStart = 27

// SlotAlertSlots holds AlertReasonCap (19) characters.
const SlotAlertSlots = 10

// ---- RESERVED RANGE ----

// Slots 37–39 are reserved for future use.
const SlotReservedStart = 37
const SlotReservedEnd = 39

// ---- DEVICE NAME ----

// SlotDeviceNameStart is the first slot used for the device name.
// Device name is always placed at the END of the status block.
const SlotDeviceNameStart = 40

// SlotDeviceNameSlots is the number of slots reserved for the device name.
const SlotDeviceNameSlots = 8

// SlotDeviceNameEnd is the last slot used for the device name (inclusive).
const SlotDeviceNameEnd = SlotDeviceNameStart + SlotDeviceNameSlots - 1

// ---- LIMITS ----

// DeviceNameMaxChars is the maximum number of ASCII characters stored for device name.
const DeviceNameMaxChars = 16

// ---- HEALTH CODES ----

// HealthUnknown represents an unknown or boot state.
const HealthUnknown uint16 = 0

// HealthOK represents a healthy feed.
const HealthOK uint16 = 1

// HealthError represents a feed error state.
const HealthError uint16 = 2

// HealthStale represents a feed that delivered no new frame within the stale window.
const HealthStale uint16 = 3

// HealthDisabled represents a disabled device state.
const HealthDisabled uint16 = 4

// ---- ERROR CODES ----

// ErrorCodeGeneric is written when a failure carries no code of its own.
const ErrorCodeGeneric uint16 = 1

// ErrorCodeStale is written while the feed is stale.
const ErrorCodeStale uint16 = 2
