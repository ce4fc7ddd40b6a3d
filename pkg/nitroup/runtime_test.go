package nitroup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateRuntime(t *testing.T) {
	assert := assert.New(t)

	profile := NitroUp2000()

	assert.Equal(RuntimeIndefinite, EstimateRuntime(100, 0, profile), "no load")
	assert.Equal(0, EstimateRuntime(0, 30, profile), "empty battery")

	// 98% charge at 30% load, nominal efficiency
	assert.Equal(103, EstimateRuntime(98, 30, profile))

	// derated efficiency kicks in at the high-load threshold
	assert.Equal(53, EstimateRuntime(59, 35, profile))
	nominal := EstimateRuntime(60, profile.HighLoadPercent-1, profile)
	derated := EstimateRuntime(60, profile.HighLoadPercent, profile)
	assert.True(derated < nominal, "derating shortens the estimate")

	// tiny loads clamp at the sentinel instead of overflowing it
	assert.Equal(RuntimeIndefinite, EstimateRuntime(100, 1, profile))
}
