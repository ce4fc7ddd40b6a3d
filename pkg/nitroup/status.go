package nitroup

import "strings"

// OperatingState is the fused on-line/on-battery decision.
type OperatingState int

const (
	OnLine OperatingState = iota
	OnBattery
)

func (s OperatingState) String() string {
	if s == OnBattery {
		return "on_battery"
	}
	return "on_line"
}

// StatusTag values follow the NUT ups.status vocabulary so the status file
// can join them verbatim.
type StatusTag string

const (
	StatusOnLine         StatusTag = "OL"
	StatusOnBattery      StatusTag = "OB"
	StatusLowBattery     StatusTag = "LB"
	StatusReplaceBattery StatusTag = "RB"
	StatusCharging       StatusTag = "CHRG"
	StatusDischarging    StatusTag = "DISCHRG"
	StatusOverload       StatusTag = "OVER"
	StatusTransition     StatusTag = "TRANSITION"
	StatusOverheat       StatusTag = "OVERHEAT"
	StatusInverterFault  StatusTag = "FAULT"
	StatusShortCircuit   StatusTag = "SHORT"
)

// StatusSet is an ordered, deduplicated list of status tags. Order is the
// evaluation order of the rules, which NUT consumers rely on (primary state
// tag first).
type StatusSet []StatusTag

func (s StatusSet) Contains(tag StatusTag) bool {
	for _, t := range s {
		if t == tag {
			return true
		}
	}
	return false
}

func (s StatusSet) append(tag StatusTag) StatusSet {
	if s.Contains(tag) {
		return s
	}
	return append(s, tag)
}

func (s StatusSet) String() string {
	parts := make([]string, len(s))
	for i, t := range s {
		parts[i] = string(t)
	}
	return strings.Join(parts, " ")
}

// Indicators are the three independent on-battery signals, each read from a
// different byte and settling at a different speed.
type Indicators struct {
	// Primary: input voltage collapse, instantaneous.
	Primary bool
	// Secondary: network-quality byte at the absent sentinel, ~27s.
	Secondary bool
	// Tertiary: on-battery bit of status flags byte 2, ~60-90s, most
	// authoritative once settled.
	Tertiary bool
}

// FusionPolicy reduces the three indicators to one decision. The default
// trades occasional false on-battery transients for near-zero detection
// latency; do not "fix" it without new hardware captures.
type FusionPolicy interface {
	Name() string
	OnBattery(ind Indicators) bool
}

// FastOrPolicy: on battery when either fast layer says so. The tertiary
// indicator is diagnostics-only under this policy.
type FastOrPolicy struct{}

func (FastOrPolicy) Name() string                  { return "fast_or" }
func (FastOrPolicy) OnBattery(ind Indicators) bool { return ind.Primary || ind.Secondary }

// TertiaryTieBreakPolicy lets the slow flag decide when the fast layers
// disagree. Not validated against hardware; kept for recalibration runs.
type TertiaryTieBreakPolicy struct{}

func (TertiaryTieBreakPolicy) Name() string { return "tertiary" }
func (TertiaryTieBreakPolicy) OnBattery(ind Indicators) bool {
	if ind.Primary == ind.Secondary {
		return ind.Primary
	}
	return ind.Tertiary
}

// FusionPolicyByName resolves a config string to a policy.
func FusionPolicyByName(name string) (FusionPolicy, bool) {
	switch name {
	case "", "fast_or":
		return FastOrPolicy{}, true
	case "tertiary":
		return TertiaryTieBreakPolicy{}, true
	default:
		return nil, false
	}
}

func readIndicators(fields RawFields, profile DeviceProfile) Indicators {
	return Indicators{
		Primary:   fields[FieldInputVoltage] < profile.OnBatteryInputRaw,
		Secondary: fields[FieldNetworkQuality] == profile.NetworkAbsent,
		Tertiary:  fields[FieldStatusFlags2]&profile.OnBatteryFlagMask != 0,
	}
}

// fuseStatus runs the fusion rule and builds the ordered tag set.
// Transitioning reports disagreement between the two fast layers regardless
// of the final decision.
func fuseStatus(fields RawFields, m Measurements, profile DeviceProfile, offsets FieldOffsets, policy FusionPolicy) (OperatingState, bool, StatusSet) {
	ind := readIndicators(fields, profile)
	transitioning := ind.Primary != ind.Secondary

	state := OnLine
	if policy.OnBattery(ind) {
		state = OnBattery
	}

	var status StatusSet
	if state == OnBattery {
		if m.BatteryCharge < profile.LowBatteryPercent {
			status = status.append(StatusLowBattery)
		} else {
			status = status.append(StatusOnBattery)
		}
		if transitioning {
			status = status.append(StatusTransition)
		}
	} else {
		status = status.append(StatusOnLine)
	}

	// Battery health fails independently of state.
	if m.BatteryCharge < profile.ReplaceBatteryPercent || m.BatteryVoltage < profile.ReplaceBatteryVoltage {
		status = status.append(StatusReplaceBattery)
	}

	if state == OnBattery {
		status = status.append(StatusDischarging)
	} else if m.BatteryCharge < profile.ChargingBelowPercent {
		status = status.append(StatusCharging)
	}

	if m.Load > profile.OverloadAbovePercent {
		status = status.append(StatusOverload)
	}

	if offsets.FaultFlags {
		flags := fields[FieldStatusFlags1]
		if flags&offsets.OverheatMask != 0 {
			status = status.append(StatusOverheat)
		}
		if flags&offsets.InverterFaultMask != 0 {
			status = status.append(StatusInverterFault)
		}
		if flags&offsets.ShortCircuitMask != 0 {
			status = status.append(StatusShortCircuit)
		}
	}

	return state, transitioning, status
}
