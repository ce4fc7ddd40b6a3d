package nitroup

// Request registers probed on the NitroUp serial protocol. Only the
// telemetry range is fully mapped; the others return one small value each.
const (
	RegisterTelemetry       uint16 = 0x0080
	RegisterCalibration     uint16 = 0x00F3
	RegisterBatteryCapacity uint16 = 0x0136
	RegisterLED             uint16 = 0x0171

	TelemetryRangeLength = 0x1E

	// ResponseBufferSize is how much the device may send back for one
	// request; telemetry frames are padded up to this.
	ResponseBufferSize = 64
)

// BuildRequest frames a read command: AA 04 <reg hi> <reg lo> <len> <sum>.
// The checksum is the low register byte plus the length, truncated to a byte
// (verified against all four known-good commands).
func BuildRequest(register uint16, length uint8) []byte {
	regHi := uint8(register >> 8)
	regLo := uint8(register)
	return []byte{0xAA, 0x04, regHi, regLo, length, regLo + length}
}

// TelemetryRequest is the standard 30-byte range read the vendor tool issues.
func TelemetryRequest() []byte {
	return BuildRequest(RegisterTelemetry, TelemetryRangeLength)
}

// TelemetryReader is the transport boundary: something that can exchange one
// request/response cycle with the UPS and hand back decoded structures.
type TelemetryReader interface {
	Open() error
	Close() error
	GetDeviceInfo() (*DeviceInfo, error)
	GetTelemetry() (*Telemetry, error)
	GetBatteryCapacity() (uint8, error)
}
