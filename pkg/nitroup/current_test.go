package nitroup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveBatteryCurrentRegimes(t *testing.T) {
	assert := assert.New(t)

	cal := DefaultCurrentCalibration()

	tests := []struct {
		raw       uint8
		onBattery bool
		want      float64
		source    CurrentSource
	}{
		// discharging: fallback under 10, compressed 10-19, linear from 20
		{9, true, 11.0, CurrentFromCalculated},
		{10, true, 14.4, CurrentFromProtocol},
		{19, true, 27.4, CurrentFromProtocol},
		{20, true, 20.0, CurrentFromProtocol},
		{26, true, 26.0, CurrentFromProtocol},
		// charging: bulk under 10, float otherwise
		{0, false, 0.0, CurrentFromProtocol},
		{3, false, -6.0, CurrentFromProtocol},
		{9, false, -18.0, CurrentFromProtocol},
		{10, false, -0.5, CurrentFromProtocol},
		{200, false, -0.5, CurrentFromProtocol},
	}
	for _, tc := range tests {
		got, source := cal.ResolveBatteryCurrent(tc.raw, 11.0, tc.onBattery)
		assert.Equal(tc.want, got, "raw=%d onBattery=%v", tc.raw, tc.onBattery)
		assert.Equal(tc.source, source, "raw=%d onBattery=%v", tc.raw, tc.onBattery)
	}
}

func TestCalculatedFallback(t *testing.T) {
	assert := assert.New(t)

	cal := DefaultCurrentCalibration()
	profile := NitroUp2000()

	m := Measurements{BatteryVoltage: 27.24, RealPower: 254.1}
	assert.Equal(11.0, cal.CalculatedFallback(m, profile, true))
	assert.Equal(-5.0, cal.CalculatedFallback(m, profile, false))

	// no usable battery voltage means no estimate at all
	assert.Equal(0.0, cal.CalculatedFallback(Measurements{}, profile, true))
	assert.Equal(0.0, cal.CalculatedFallback(Measurements{}, profile, false))

	// on battery with zero output power there is nothing to divide
	assert.Equal(0.0, cal.CalculatedFallback(Measurements{BatteryVoltage: 27.24}, profile, true))
}
