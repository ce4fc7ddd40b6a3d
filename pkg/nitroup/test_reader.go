package nitroup

// BuildTestFrame assembles a frame with the Rev3 layout from per-field raw
// values, defaulting to a healthy on-line device. Used by tests and the fake
// reader.
func BuildTestFrame(values map[FieldID]uint8) []byte {
	buf := make([]byte, MinFrameLength)
	buf[0] = HeaderByte0
	buf[1] = HeaderByte1

	defaults := map[FieldID]uint8{
		FieldBatteryCells:    12,
		FieldModelID:         89,
		FieldFirmwareMajor:   0,
		FieldFirmwareMinor:   9,
		FieldBatteryCharge:   250, // 98%
		FieldStatusFlags2:    0x00,
		FieldControllerState: 0x8C,
		FieldBatteryVoltage:  203, // 27.24 V
		FieldInputVoltageAlt: 106,
		FieldOutputCurrent:   25, // 3.0 A
		FieldLoad:            30,
		FieldTemperature:     25,
		FieldBatteryCurrent:  3,    // -6.0 A, bulk charge
		FieldNetworkQuality:  0xE7, // mains present
		FieldInputVoltage:    105,  // ~106 V
		FieldOutputVoltage:   202,  // ~110 V
	}
	for id, v := range defaults {
		buf[OffsetsRev3.Offsets[id]] = v
	}
	for id, v := range values {
		buf[OffsetsRev3.Offsets[id]] = v
	}
	return buf
}

// OnBatteryTestFrame is a mid-discharge capture shape: mains gone on both
// fast layers, linear-scale inverter current.
func OnBatteryTestFrame() []byte {
	return BuildTestFrame(map[FieldID]uint8{
		FieldBatteryCharge:  150, // 59%
		FieldInputVoltage:   5,
		FieldNetworkQuality: 0x00,
		FieldStatusFlags2:   0x80,
		FieldBatteryCurrent: 26,
		FieldLoad:           35,
	})
}

func CreateTestTelemetryReader() (*TestTelemetryReader, error) {
	decoder, err := NewDecoder(NitroUp2000())
	if err != nil {
		return nil, err
	}
	return &TestTelemetryReader{decoder: decoder, Frame: BuildTestFrame(nil)}, nil
}

// TestTelemetryReader serves canned frames through the real decoder. When
// Sequence is set, each GetTelemetry call steps through it and sticks on the
// last entry.
type TestTelemetryReader struct {
	Frame    []byte
	Sequence [][]byte
	Err      error

	decoder *Decoder
	step    int
}

func (r *TestTelemetryReader) Open() error {
	return nil
}

func (r *TestTelemetryReader) Close() error {
	return nil
}

func (r *TestTelemetryReader) GetDeviceInfo() (*DeviceInfo, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	return r.decoder.DecodeDeviceInfo(r.currentFrame())
}

func (r *TestTelemetryReader) GetTelemetry() (*Telemetry, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	t, err := r.decoder.Decode(r.currentFrame())
	if err != nil {
		return nil, err
	}
	if len(r.Sequence) > 0 && r.step < len(r.Sequence)-1 {
		r.step++
	}
	return t, nil
}

func (r *TestTelemetryReader) GetBatteryCapacity() (uint8, error) {
	if r.Err != nil {
		return 0, r.Err
	}
	return 40, nil
}

func (r *TestTelemetryReader) currentFrame() []byte {
	if len(r.Sequence) > 0 {
		return r.Sequence[r.step]
	}
	return r.Frame
}
