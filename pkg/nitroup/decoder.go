package nitroup

// Decoder turns raw frames into Telemetry. It is stateless across calls and
// safe for concurrent use; all configuration is fixed at construction.
type Decoder struct {
	profile DeviceProfile
	offsets FieldOffsets
	policy  FusionPolicy
	current CurrentCalibration
}

// Option customizes a Decoder at construction time.
type Option func(*Decoder)

// WithOffsets selects a frame-layout hypothesis. Default: OffsetsRev3.
func WithOffsets(offsets FieldOffsets) Option {
	return func(d *Decoder) { d.offsets = offsets }
}

// WithFusionPolicy overrides the status fusion strategy. Default: FastOrPolicy.
func WithFusionPolicy(policy FusionPolicy) Option {
	return func(d *Decoder) { d.policy = policy }
}

// WithCurrentCalibration overrides the battery-current regime boundaries.
func WithCurrentCalibration(cal CurrentCalibration) Option {
	return func(d *Decoder) { d.current = cal }
}

// NewDecoder validates the configuration and builds a decoder. An offset
// table referencing bytes outside the validated minimum frame is a fatal
// ConfigurationError here, never a per-frame failure.
func NewDecoder(profile DeviceProfile, opts ...Option) (*Decoder, error) {
	d := &Decoder{
		profile: profile,
		offsets: OffsetsRev3,
		policy:  FastOrPolicy{},
		current: DefaultCurrentCalibration(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if err := d.offsets.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Decoder) Profile() DeviceProfile { return d.profile }

// Decode runs the full pipeline on one raw buffer: validate, extract,
// convert, fuse, resolve current, estimate runtime. Pure function of the
// frame and the decoder configuration.
func (d *Decoder) Decode(buf []byte) (*Telemetry, error) {
	frame, err := ValidateFrame(buf)
	if err != nil {
		return nil, err
	}

	fields := extractFields(frame, d.offsets)
	m := convertMeasurements(fields, d.profile)
	state, transitioning, status := fuseStatus(fields, m, d.profile, d.offsets, d.policy)

	onBattery := state == OnBattery
	fallback := d.current.CalculatedFallback(m, d.profile, onBattery)
	batteryCurrent, source := d.current.ResolveBatteryCurrent(fields[FieldBatteryCurrent], fallback, onBattery)

	return &Telemetry{
		BatteryCharge:  m.BatteryCharge,
		BatteryVoltage: m.BatteryVoltage,
		BatteryCurrent: batteryCurrent,
		RuntimeMinutes: EstimateRuntime(m.BatteryCharge, m.Load, d.profile),

		InputVoltage:    m.InputVoltage,
		InputVoltageAlt: m.InputVoltageAlt,
		InputCurrent:    m.InputCurrent,
		Frequency:       m.Frequency,

		OutputVoltage: m.OutputVoltage,
		OutputCurrent: m.OutputCurrent,
		ApparentPower: m.ApparentPower,
		RealPower:     m.RealPower,

		Load:        m.Load,
		Temperature: m.Temperature,

		State:         state,
		Transitioning: transitioning,
		Status:        status,

		Diagnostics: Diagnostics{
			Indicators:        readIndicators(fields, d.profile),
			CurrentSource:     source,
			BatteryCurrentRaw: fields[FieldBatteryCurrent],
			NetworkQuality:    fields[FieldNetworkQuality],
			ControllerState:   fields[FieldControllerState],
			OffsetsRevision:   d.offsets.Revision,
			FusionPolicy:      d.policy.Name(),
		},
	}, nil
}

// DecodeDeviceInfo reads the static identity fields from a frame.
func (d *Decoder) DecodeDeviceInfo(buf []byte) (*DeviceInfo, error) {
	frame, err := ValidateFrame(buf)
	if err != nil {
		return nil, err
	}
	return deviceInfoFromFields(extractFields(frame, d.offsets), d.profile), nil
}
