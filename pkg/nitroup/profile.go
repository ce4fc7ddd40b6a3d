package nitroup

// DeviceProfile carries the nominal ratings and detection thresholds of one
// UPS model. The decoder only reads it; swapping profiles is how tests and
// future models get different calibrations without touching decode logic.
type DeviceProfile struct {
	Manufacturer string
	Model        string

	NominalPowerVA        float64
	NominalRealPowerWatt  float64
	NominalVoltage        float64
	NominalFrequency      float64
	NominalBatteryVoltage float64
	BatteryCapacityAh     float64

	PowerFactor        float64
	InverterEfficiency float64
	// DeratedEfficiency applies above HighLoadPercent (discharge-rate derating).
	DeratedEfficiency float64
	HighLoadPercent   int

	// OnBatteryInputRaw is the raw input-voltage threshold of the primary
	// (instantaneous) on-battery indicator.
	OnBatteryInputRaw uint8
	// NetworkAbsent is the network-quality sentinel meaning "mains gone"
	// (~27s latency). 0xE7 is the observed "mains present" value.
	NetworkAbsent  uint8
	NetworkPresent uint8
	// OnBatteryFlagMask is the on-battery bit of status flags byte 2
	// (~60-90s latency, most reliable once settled).
	OnBatteryFlagMask uint8

	LowBatteryPercent     int
	ReplaceBatteryPercent int
	ReplaceBatteryVoltage float64
	ChargingBelowPercent  int
	OverloadAbovePercent  int
}

// NitroUp2000 is the only profile validated against hardware: a NitroUp
// 2000VA behind a Microchip PIC USB-serial bridge (04d8:000a).
func NitroUp2000() DeviceProfile {
	return DeviceProfile{
		Manufacturer: "Ragtech",
		Model:        "NitroUp 2000VA",

		NominalPowerVA:        2000,
		NominalRealPowerWatt:  1540,
		NominalVoltage:        115,
		NominalFrequency:      60,
		NominalBatteryVoltage: 24,
		BatteryCapacityAh:     40,

		PowerFactor:        0.77,
		InverterEfficiency: 0.85,
		DeratedEfficiency:  0.75,
		HighLoadPercent:    50,

		OnBatteryInputRaw: 90,
		NetworkAbsent:     0x00,
		NetworkPresent:    0xE7,
		OnBatteryFlagMask: 0x80,

		LowBatteryPercent:     45,
		ReplaceBatteryPercent: 5,
		ReplaceBatteryVoltage: 20,
		ChargingBelowPercent:  95,
		OverloadAbovePercent:  90,
	}
}
