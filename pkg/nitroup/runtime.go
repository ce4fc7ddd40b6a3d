package nitroup

// RuntimeIndefinite is the sentinel returned when no load is drawn. It is a
// "longer than we can estimate" marker, not an error.
const RuntimeIndefinite = 999

// EstimateRuntime projects remaining minutes of battery operation from the
// charge level and the current load, using a simplified Peukert model:
// efficiency drops at high discharge rates. Clamped to [0, RuntimeIndefinite].
func EstimateRuntime(chargePercent, loadPercent int, profile DeviceProfile) int {
	if loadPercent == 0 {
		return RuntimeIndefinite
	}

	effectiveAh := float64(chargePercent) / 100 * profile.BatteryCapacityAh
	powerWatts := float64(loadPercent) / 100 * profile.NominalPowerVA * profile.PowerFactor

	efficiency := profile.InverterEfficiency
	if loadPercent >= profile.HighLoadPercent {
		efficiency = profile.DeratedEfficiency
	}

	minutes := int(effectiveAh * profile.NominalBatteryVoltage * efficiency / powerWatts * 60)
	if minutes < 0 {
		return 0
	}
	if minutes > RuntimeIndefinite {
		return RuntimeIndefinite
	}
	return minutes
}
