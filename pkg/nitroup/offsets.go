package nitroup

import (
	"fmt"
	"sort"
)

// FieldID names a logical field of the telemetry frame. Offsets map these to
// byte positions; everything downstream of the extractor works on FieldIDs
// and never on literal indexes.
type FieldID string

const (
	FieldBatteryCharge   FieldID = "battery_charge_raw"
	FieldStatusFlags1    FieldID = "status_flags_1"
	FieldStatusFlags2    FieldID = "status_flags_2"
	FieldControllerState FieldID = "controller_state"
	FieldBatteryVoltage  FieldID = "battery_voltage_raw"
	FieldInputVoltageAlt FieldID = "input_voltage_alt_raw"
	FieldOutputCurrent   FieldID = "output_current_raw"
	FieldLoad            FieldID = "load_raw"
	FieldTemperature     FieldID = "temperature_raw"
	FieldBatteryCurrent  FieldID = "battery_current_raw"
	FieldNetworkQuality  FieldID = "network_quality"
	FieldFrequency       FieldID = "frequency_raw"
	FieldInputVoltage    FieldID = "input_voltage_raw"
	FieldOutputVoltage   FieldID = "output_voltage_raw"
	FieldBatteryCells    FieldID = "battery_cells"
	FieldModelID         FieldID = "model_id"
	FieldFirmwareMajor   FieldID = "firmware_major"
	FieldFirmwareMinor   FieldID = "firmware_minor"
)

// FieldOffsets is one reverse-engineering hypothesis of the frame layout.
// Values are immutable after construction and shared freely between decoders.
// Protocol revision churn lands here and only here.
type FieldOffsets struct {
	Revision string
	Offsets  map[FieldID]int

	// Fault-bit hypothesis on status flags byte 1. Only Rev3Flags enables it;
	// the bits have not been confirmed against hardware.
	FaultFlags        bool
	OverheatMask      uint8
	InverterFaultMask uint8
	ShortCircuitMask  uint8
}

// ConfigurationError reports an offset table that does not fit the validated
// frame. It is raised at decoder construction, never per frame.
type ConfigurationError struct {
	Revision string
	Field    FieldID
	Offset   int
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("nitroup: offsets %s: field %s at byte %d outside [%d, %d)",
		e.Revision, e.Field, e.Offset, HeaderLength, MinFrameLength)
}

// Validate checks that every offset lands in the field region of a minimum
// length frame. Offsets inside the 2-byte header are as wrong as offsets past
// the end.
func (fo FieldOffsets) Validate() error {
	for _, id := range fo.fieldIDs() {
		off := fo.Offsets[id]
		if off < HeaderLength || off >= MinFrameLength {
			return &ConfigurationError{Revision: fo.Revision, Field: id, Offset: off}
		}
	}
	return nil
}

func (fo FieldOffsets) fieldIDs() []FieldID {
	ids := make([]FieldID, 0, len(fo.Offsets))
	for id := range fo.Offsets {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// OffsetsRev2 is the earlier layout hypothesis: input voltage was believed to
// live at byte 12 (the position Rev3 demoted to "alternate"). Kept selectable
// because a handful of firmware revisions matched it better.
var OffsetsRev2 = FieldOffsets{
	Revision: "rev2",
	Offsets: map[FieldID]int{
		FieldBatteryCells:    3,
		FieldModelID:         4,
		FieldFirmwareMajor:   6,
		FieldFirmwareMinor:   7,
		FieldBatteryCharge:   8,
		FieldStatusFlags1:    8,
		FieldStatusFlags2:    9,
		FieldControllerState: 10,
		FieldBatteryVoltage:  11,
		FieldInputVoltage:    12,
		FieldInputVoltageAlt: 12,
		FieldOutputCurrent:   13,
		FieldLoad:            14,
		FieldTemperature:     15,
		FieldBatteryCurrent:  22,
		FieldNetworkQuality:  24,
		FieldFrequency:       24,
		FieldOutputVoltage:   30,
	},
}

// OffsetsRev3 is the validated layout (97% match against the vendor tool over
// 25+ measurements). Default for new decoders.
var OffsetsRev3 = FieldOffsets{
	Revision: "rev3",
	Offsets: map[FieldID]int{
		FieldBatteryCells:    3,
		FieldModelID:         4,
		FieldFirmwareMajor:   6,
		FieldFirmwareMinor:   7,
		FieldBatteryCharge:   8,
		FieldStatusFlags1:    8,
		FieldStatusFlags2:    9,
		FieldControllerState: 10,
		FieldBatteryVoltage:  11,
		FieldInputVoltageAlt: 12,
		FieldOutputCurrent:   13,
		FieldLoad:            14,
		FieldTemperature:     15,
		FieldBatteryCurrent:  22,
		FieldNetworkQuality:  24,
		FieldFrequency:       24,
		FieldInputVoltage:    26,
		FieldOutputVoltage:   30,
	},
}

// OffsetsRev3Flags is Rev3 plus the unconfirmed fault bits on status flags
// byte 1. Enables the OVERHEAT/FAULT/SHORT status tags.
var OffsetsRev3Flags = func() FieldOffsets {
	fo := OffsetsRev3
	fo.Revision = "rev3+flags"
	fo.FaultFlags = true
	fo.OverheatMask = 0x10
	fo.InverterFaultMask = 0x20
	fo.ShortCircuitMask = 0x40
	return fo
}()

// OffsetsByRevision resolves a config string to a table.
func OffsetsByRevision(rev string) (FieldOffsets, error) {
	switch rev {
	case "", "rev3":
		return OffsetsRev3, nil
	case "rev2":
		return OffsetsRev2, nil
	case "rev3+flags":
		return OffsetsRev3Flags, nil
	default:
		return FieldOffsets{}, fmt.Errorf("nitroup: unknown offsets revision %q", rev)
	}
}
