package nitroup

// CurrentSource records where the reported battery current came from.
type CurrentSource string

const (
	CurrentFromProtocol   CurrentSource = "protocol"
	CurrentFromCalculated CurrentSource = "calculated"
)

// CurrentCalibration holds the empirical regime boundaries of the
// bidirectional battery-current byte. Fitted from a small sample (~25
// measurements); keep overridable so recalibration needs no code change.
type CurrentCalibration struct {
	// FallbackBelow: on battery, raw values under this are indistinguishable
	// from transformer magnetization current or sampling artifacts, so the
	// physics-based fallback is used instead.
	FallbackBelow uint8
	// CompressedBelow: on battery, raw values in [FallbackBelow,
	// CompressedBelow) are inverter current on a compressed scale.
	CompressedBelow uint8
	CompressedScale float64
	LinearScale     float64

	// ChargeScale applies on line below FallbackBelow (bulk charge);
	// anything higher is float/trickle charge at a fixed estimate.
	ChargeScale     float64
	FloatChargeAmps float64

	// BulkChargeEstimateAmps is the calculated-fallback charge current when
	// no usable direct reading exists.
	BulkChargeEstimateAmps float64
}

// DefaultCurrentCalibration matches the validated NitroUp 2000VA fit.
func DefaultCurrentCalibration() CurrentCalibration {
	return CurrentCalibration{
		FallbackBelow:          10,
		CompressedBelow:        20,
		CompressedScale:        1.44,
		LinearScale:            1.0,
		ChargeScale:            2.0,
		FloatChargeAmps:        -0.5,
		BulkChargeEstimateAmps: -5.0,
	}
}

// ResolveBatteryCurrent interprets the bidirectional current byte. Positive
// is discharge, negative is charge (NUT convention). The source return says
// whether the direct reading was trusted.
func (c CurrentCalibration) ResolveBatteryCurrent(raw uint8, calculatedFallback float64, onBattery bool) (float64, CurrentSource) {
	if onBattery {
		switch {
		case raw < c.FallbackBelow:
			return calculatedFallback, CurrentFromCalculated
		case raw < c.CompressedBelow:
			return round1(float64(raw) * c.CompressedScale), CurrentFromProtocol
		default:
			return round1(float64(raw) * c.LinearScale), CurrentFromProtocol
		}
	}
	if raw < c.FallbackBelow {
		return -round1(float64(raw) * c.ChargeScale), CurrentFromProtocol
	}
	return c.FloatChargeAmps, CurrentFromProtocol
}

// CalculatedFallback derives battery current from the power balance when the
// direct reading cannot be trusted.
func (c CurrentCalibration) CalculatedFallback(m Measurements, profile DeviceProfile, onBattery bool) float64 {
	switch {
	case m.BatteryVoltage > 0 && onBattery && m.RealPower > 0:
		return round1(m.RealPower / (m.BatteryVoltage * profile.InverterEfficiency))
	case m.BatteryVoltage > 0 && !onBattery:
		return c.BulkChargeEstimateAmps
	default:
		return 0
	}
}
