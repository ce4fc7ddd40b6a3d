package nitroup

import (
	"errors"
	"fmt"
)

// frame geometry
const (
	HeaderByte0 = 0xAA
	HeaderByte1 = 0x25

	HeaderLength   = 2
	MinFrameLength = 31
)

var (
	ErrInvalidHeader = errors.New("nitroup: invalid frame header")
	ErrTruncated     = errors.New("nitroup: truncated frame")
)

// RawFrame is a validated telemetry response. It aliases the caller's buffer
// and is never retained beyond the decode call that consumed it.
type RawFrame []byte

// ValidateFrame checks the aa25 signature and the minimum length before any
// field extraction happens. Anything past MinFrameLength is ignored (the
// device pads responses up to 64 bytes).
func ValidateFrame(buf []byte) (RawFrame, error) {
	if len(buf) >= HeaderLength && (buf[0] != HeaderByte0 || buf[1] != HeaderByte1) {
		return nil, fmt.Errorf("%w: got %02x%02x, want %02x%02x",
			ErrInvalidHeader, buf[0], buf[1], HeaderByte0, HeaderByte1)
	}
	if len(buf) < MinFrameLength {
		return nil, fmt.Errorf("%w: got %d bytes, need %d", ErrTruncated, len(buf), MinFrameLength)
	}
	return RawFrame(buf[:MinFrameLength]), nil
}
