package nitroup

import "fmt"

// Telemetry is the decoder output: one frame converted to physical units,
// fused status and diagnostics. Built fresh per decode, immutable afterwards.
type Telemetry struct {
	BatteryCharge  int
	BatteryVoltage float64
	// BatteryCurrent is signed: positive discharging, negative charging.
	BatteryCurrent float64
	RuntimeMinutes int

	InputVoltage    int
	InputVoltageAlt int
	InputCurrent    float64
	Frequency       float64

	OutputVoltage int
	OutputCurrent float64
	ApparentPower float64
	RealPower     float64

	Load        int
	Temperature int

	State         OperatingState
	Transitioning bool
	Status        StatusSet

	Diagnostics Diagnostics
}

// Diagnostics exposes the per-layer detection state and value provenance for
// debugging the reverse-engineered protocol. Not meant for control decisions.
type Diagnostics struct {
	Indicators        Indicators
	CurrentSource     CurrentSource
	BatteryCurrentRaw uint8
	NetworkQuality    uint8
	ControllerState   uint8
	OffsetsRevision   string
	FusionPolicy      string
}

func (t *Telemetry) OnBattery() bool {
	return t.State == OnBattery
}

// DeviceInfo is the static identity carried in the frame header region.
type DeviceInfo struct {
	Manufacturer    string
	Model           string
	ModelID         uint8
	BatteryCells    uint8
	FirmwareVersion string
}

func deviceInfoFromFields(fields RawFields, profile DeviceProfile) *DeviceInfo {
	return &DeviceInfo{
		Manufacturer:    profile.Manufacturer,
		Model:           profile.Model,
		ModelID:         fields[FieldModelID],
		BatteryCells:    fields[FieldBatteryCells],
		FirmwareVersion: fmt.Sprintf("%d.%d", fields[FieldFirmwareMajor], fields[FieldFirmwareMinor]),
	}
}
