package nitroup

// RawFields holds the unconverted byte value of every configured field,
// produced once per decode and read-only afterwards.
type RawFields map[FieldID]uint8

func extractFields(frame RawFrame, offsets FieldOffsets) RawFields {
	fields := make(RawFields, len(offsets.Offsets))
	for id, off := range offsets.Offsets {
		fields[id] = frame[off]
	}
	return fields
}
