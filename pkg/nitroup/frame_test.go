package nitroup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateFrameAcceptsPaddedResponse(t *testing.T) {
	assert := assert.New(t)

	// device pads responses up to 64 bytes; extra bytes must be ignored
	buf := make([]byte, ResponseBufferSize)
	copy(buf, BuildTestFrame(nil))

	frame, err := ValidateFrame(buf)
	assert.NoError(err)
	assert.Len(frame, MinFrameLength)
}

func TestValidateFrameRejectsBadHeader(t *testing.T) {
	assert := assert.New(t)

	buf := BuildTestFrame(nil)
	buf[1] = 0x26

	_, err := ValidateFrame(buf)
	assert.ErrorIs(err, ErrInvalidHeader)
}

func TestValidateFrameRejectsTruncated(t *testing.T) {
	assert := assert.New(t)

	buf := BuildTestFrame(nil)

	_, err := ValidateFrame(buf[:MinFrameLength-1])
	assert.ErrorIs(err, ErrTruncated)

	// a single byte cannot even prove the header wrong
	_, err = ValidateFrame(buf[:1])
	assert.ErrorIs(err, ErrTruncated)

	// bad header wins over bad length once both header bytes are there
	bad := []byte{0x55, 0x00, 0x00}
	_, err = ValidateFrame(bad)
	assert.ErrorIs(err, ErrInvalidHeader)
}

func TestBuildRequestChecksum(t *testing.T) {
	assert := assert.New(t)

	// the four commands captured from the vendor tool
	assert.Equal([]byte{0xAA, 0x04, 0x00, 0x80, 0x1E, 0x9E}, TelemetryRequest())
	assert.Equal([]byte{0xAA, 0x04, 0x00, 0xF3, 0x01, 0xF4}, BuildRequest(RegisterCalibration, 1))
	assert.Equal([]byte{0xAA, 0x04, 0x01, 0x36, 0x01, 0x37}, BuildRequest(RegisterBatteryCapacity, 1))
	assert.Equal([]byte{0xAA, 0x04, 0x01, 0x71, 0x01, 0x72}, BuildRequest(RegisterLED, 1))
}
