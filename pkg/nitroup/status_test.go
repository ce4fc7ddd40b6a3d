package nitroup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFuseStatusTransition(t *testing.T) {
	assert := assert.New(t)

	decoder, err := NewDecoder(NitroUp2000())
	assert.NoError(err)

	// primary tripped, secondary still settling: a mains-loss front edge
	tm, err := decoder.Decode(BuildTestFrame(map[FieldID]uint8{
		FieldInputVoltage:   50,
		FieldNetworkQuality: 0xE7,
	}))
	assert.NoError(err)

	assert.Equal(OnBattery, tm.State)
	assert.True(tm.Transitioning)
	assert.Equal("OB TRANSITION DISCHRG", tm.Status.String())

	// mains back, secondary lagging: on line again but still transitioning
	// under the tie-break policy; FastOr stays on battery
	tm, err = decoder.Decode(BuildTestFrame(map[FieldID]uint8{
		FieldInputVoltage:   105,
		FieldNetworkQuality: 0x00,
	}))
	assert.NoError(err)
	assert.Equal(OnBattery, tm.State)
	assert.True(tm.Transitioning)
}

func TestFusionPolicies(t *testing.T) {
	assert := assert.New(t)

	fastOr := FastOrPolicy{}
	tieBreak := TertiaryTieBreakPolicy{}

	tests := []struct {
		ind      Indicators
		fastOr   bool
		tieBreak bool
	}{
		{Indicators{false, false, false}, false, false},
		{Indicators{true, true, true}, true, true},
		{Indicators{true, false, false}, true, false},
		{Indicators{false, true, true}, true, true},
		{Indicators{true, true, false}, true, true},
		{Indicators{false, false, true}, false, false},
	}
	for _, tc := range tests {
		assert.Equal(tc.fastOr, fastOr.OnBattery(tc.ind), "fast_or %+v", tc.ind)
		assert.Equal(tc.tieBreak, tieBreak.OnBattery(tc.ind), "tertiary %+v", tc.ind)
	}
}

func TestFusionPolicyByName(t *testing.T) {
	assert := assert.New(t)

	p, ok := FusionPolicyByName("")
	assert.True(ok)
	assert.Equal("fast_or", p.Name())

	p, ok = FusionPolicyByName("tertiary")
	assert.True(ok)
	assert.Equal("tertiary", p.Name())

	_, ok = FusionPolicyByName("majority")
	assert.False(ok)
}

func TestStatusSetDedupAndOrder(t *testing.T) {
	assert := assert.New(t)

	var s StatusSet
	s = s.append(StatusOnBattery)
	s = s.append(StatusDischarging)
	s = s.append(StatusOnBattery)

	assert.Equal("OB DISCHRG", s.String())
	assert.True(s.Contains(StatusOnBattery))
	assert.False(s.Contains(StatusOverload))
}

func TestReplaceBatteryIndependentOfState(t *testing.T) {
	assert := assert.New(t)

	decoder, err := NewDecoder(NitroUp2000())
	assert.NoError(err)

	// battery voltage below the replace floor while on line
	tm, err := decoder.Decode(BuildTestFrame(map[FieldID]uint8{
		FieldBatteryVoltage: 100, // 13.42 V
	}))
	assert.NoError(err)

	assert.Equal(OnLine, tm.State)
	assert.True(tm.Status.Contains(StatusReplaceBattery))
	assert.Equal(StatusOnLine, tm.Status[0], "state tag stays first")
}
