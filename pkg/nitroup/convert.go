package nitroup

import "math"

// Empirically fitted scale factors. These are regression fits against the
// vendor monitoring tool, not datasheet values.
const (
	batteryChargeScale  = 0.393
	batteryVoltageScale = 0.1342
	inputVoltageScale   = 1.009
	outputVoltageScale  = 0.545
	outputCurrentScale  = 0.120
	frequencyScale      = -0.1152
	frequencyOffset     = 65
)

// inputCurrentMinVoltage gates the calculated input current: below mains
// voltage there is no input current worth reporting.
const inputCurrentMinVoltage = 90

// Measurements is the physical-unit view of one frame, before status fusion.
type Measurements struct {
	BatteryCharge   int
	BatteryVoltage  float64
	InputVoltage    int
	InputVoltageAlt int
	OutputVoltage   int
	OutputCurrent   float64
	Load            int
	Temperature     int
	Frequency       float64

	ApparentPower float64
	RealPower     float64
	InputCurrent  float64
}

func convertMeasurements(fields RawFields, profile DeviceProfile) Measurements {
	m := Measurements{
		BatteryCharge:   min(100, int(math.Round(float64(fields[FieldBatteryCharge])*batteryChargeScale))),
		BatteryVoltage:  round2(float64(fields[FieldBatteryVoltage]) * batteryVoltageScale),
		InputVoltage:    int(math.Round(float64(fields[FieldInputVoltage]) * inputVoltageScale)),
		InputVoltageAlt: int(fields[FieldInputVoltageAlt]),
		OutputVoltage:   int(math.Round(float64(fields[FieldOutputVoltage]) * outputVoltageScale)),
		OutputCurrent:   round2(float64(fields[FieldOutputCurrent]) * outputCurrentScale),
		Load:            int(fields[FieldLoad]),
		Temperature:     int(fields[FieldTemperature]),
		Frequency:       round2(float64(fields[FieldFrequency])*frequencyScale + frequencyOffset),
	}

	m.ApparentPower = round1(float64(m.OutputVoltage) * m.OutputCurrent)
	m.RealPower = round1(m.ApparentPower * profile.PowerFactor)

	// Input current is not measured by an offline UPS, so it is derived from
	// the output side whenever mains are present.
	if m.InputVoltage > inputCurrentMinVoltage && m.ApparentPower > 0 {
		m.InputCurrent = round2(m.ApparentPower / (float64(m.InputVoltage) * profile.InverterEfficiency))
	}

	return m
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
