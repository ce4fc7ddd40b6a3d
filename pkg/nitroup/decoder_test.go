package nitroup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeOnLineFrame(t *testing.T) {
	assert := assert.New(t)

	decoder, err := NewDecoder(NitroUp2000())
	assert.NoError(err)

	tm, err := decoder.Decode(BuildTestFrame(nil))
	assert.NoError(err)

	assert.Equal(98, tm.BatteryCharge)
	assert.Equal(27.24, tm.BatteryVoltage)
	assert.Equal(106, tm.InputVoltage)
	assert.Equal(106, tm.InputVoltageAlt)
	assert.Equal(110, tm.OutputVoltage)
	assert.Equal(3.0, tm.OutputCurrent)
	assert.Equal(30, tm.Load)
	assert.Equal(25, tm.Temperature)

	assert.Equal(330.0, tm.ApparentPower)
	assert.Equal(254.1, tm.RealPower)
	assert.Equal(3.66, tm.InputCurrent)

	assert.Equal(OnLine, tm.State)
	assert.False(tm.OnBattery())
	assert.False(tm.Transitioning)
	assert.Equal("OL", tm.Status.String())

	// raw 3 while on line reads as bulk charge
	assert.Equal(-6.0, tm.BatteryCurrent)
	assert.Equal(CurrentFromProtocol, tm.Diagnostics.CurrentSource)
	assert.Equal("rev3", tm.Diagnostics.OffsetsRevision)
	assert.Equal("fast_or", tm.Diagnostics.FusionPolicy)
}

func TestDecodeOnBatteryFrame(t *testing.T) {
	assert := assert.New(t)

	decoder, err := NewDecoder(NitroUp2000())
	assert.NoError(err)

	tm, err := decoder.Decode(OnBatteryTestFrame())
	assert.NoError(err)

	assert.Equal(59, tm.BatteryCharge)
	assert.Equal(5, tm.InputVoltage)
	assert.Equal(0.0, tm.InputCurrent, "no input current without mains")

	assert.Equal(OnBattery, tm.State)
	assert.True(tm.OnBattery())
	assert.False(tm.Transitioning, "both fast layers agree")
	assert.Equal("OB DISCHRG", tm.Status.String())

	// raw 26 is on the linear inverter-current scale
	assert.Equal(26.0, tm.BatteryCurrent)
	assert.Equal(CurrentFromProtocol, tm.Diagnostics.CurrentSource)

	assert.True(tm.Diagnostics.Indicators.Primary)
	assert.True(tm.Diagnostics.Indicators.Secondary)
	assert.True(tm.Diagnostics.Indicators.Tertiary)
}

func TestDecodeLowBatteryFrame(t *testing.T) {
	assert := assert.New(t)

	decoder, err := NewDecoder(NitroUp2000())
	assert.NoError(err)

	tm, err := decoder.Decode(BuildTestFrame(map[FieldID]uint8{
		FieldBatteryCharge:  100, // 39%
		FieldInputVoltage:   50,
		FieldNetworkQuality: 0x00,
		FieldBatteryCurrent: 12,
	}))
	assert.NoError(err)

	assert.Equal(39, tm.BatteryCharge)
	assert.Equal(OnBattery, tm.State)
	assert.True(tm.Status.Contains(StatusLowBattery))
	assert.False(tm.Status.Contains(StatusOnBattery), "LB replaces OB")
	assert.Equal("LB DISCHRG", tm.Status.String())

	// raw 12 is on the compressed scale
	assert.Equal(17.3, tm.BatteryCurrent)
}

func TestDecodeOverloadFrame(t *testing.T) {
	assert := assert.New(t)

	decoder, err := NewDecoder(NitroUp2000())
	assert.NoError(err)

	tm, err := decoder.Decode(BuildTestFrame(map[FieldID]uint8{FieldLoad: 95}))
	assert.NoError(err)

	assert.Equal(OnLine, tm.State)
	assert.Equal("OL OVER", tm.Status.String())
}

func TestDecodeChargeSaturatesAt100(t *testing.T) {
	assert := assert.New(t)

	decoder, err := NewDecoder(NitroUp2000())
	assert.NoError(err)

	tm, err := decoder.Decode(BuildTestFrame(map[FieldID]uint8{FieldBatteryCharge: 255}))
	assert.NoError(err)

	assert.Equal(100, tm.BatteryCharge)
}

func TestDecodeIsDeterministic(t *testing.T) {
	assert := assert.New(t)

	decoder, err := NewDecoder(NitroUp2000())
	assert.NoError(err)

	buf := OnBatteryTestFrame()
	first, err := decoder.Decode(buf)
	assert.NoError(err)
	second, err := decoder.Decode(buf)
	assert.NoError(err)

	assert.Equal(first, second)
}

func TestDecodeFaultFlags(t *testing.T) {
	assert := assert.New(t)

	decoder, err := NewDecoder(NitroUp2000(), WithOffsets(OffsetsRev3Flags))
	assert.NoError(err)

	// 0x90: overheat bit set, charge reads 57%
	tm, err := decoder.Decode(BuildTestFrame(map[FieldID]uint8{FieldBatteryCharge: 0x90}))
	assert.NoError(err)

	assert.Equal(57, tm.BatteryCharge)
	assert.Equal("OL CHRG OVERHEAT", tm.Status.String())

	// same frame under plain rev3 reports no fault tags
	plain, err := NewDecoder(NitroUp2000())
	assert.NoError(err)
	tm, err = plain.Decode(BuildTestFrame(map[FieldID]uint8{FieldBatteryCharge: 0x90}))
	assert.NoError(err)
	assert.False(tm.Status.Contains(StatusOverheat))
}

func TestDecodeDeviceInfo(t *testing.T) {
	assert := assert.New(t)

	decoder, err := NewDecoder(NitroUp2000())
	assert.NoError(err)

	info, err := decoder.DecodeDeviceInfo(BuildTestFrame(nil))
	assert.NoError(err)

	assert.Equal("Ragtech", info.Manufacturer)
	assert.Equal("NitroUp 2000VA", info.Model)
	assert.Equal(uint8(89), info.ModelID)
	assert.Equal(uint8(12), info.BatteryCells)
	assert.Equal("0.9", info.FirmwareVersion)
}

func TestTestTelemetryReaderSequence(t *testing.T) {
	assert := assert.New(t)

	reader, err := CreateTestTelemetryReader()
	assert.NoError(err)

	reader.Sequence = [][]byte{BuildTestFrame(nil), OnBatteryTestFrame()}

	tm, err := reader.GetTelemetry()
	assert.NoError(err)
	assert.Equal(OnLine, tm.State)

	tm, err = reader.GetTelemetry()
	assert.NoError(err)
	assert.Equal(OnBattery, tm.State)

	// sticks on the last entry
	tm, err = reader.GetTelemetry()
	assert.NoError(err)
	assert.Equal(OnBattery, tm.State)
}
