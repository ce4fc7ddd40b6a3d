// Package nut renders telemetry as a NUT-compatible variable file, the
// upsc-style "name: value" format external monitors scrape.
package nut

import (
	"fmt"
	"strconv"

	"github.com/marcosviniciusi/ragtech2mqtt/pkg/nitroup"

	"github.com/carlmjohnson/versioninfo"
)

const (
	driverName = "ragtech2mqtt"

	// battery.runtime.low threshold, seconds
	runtimeLowSeconds = 300
)

// Variable is one NUT name/value pair. Order matters for diffability of the
// output file, so variables travel as a slice, never a map.
type Variable struct {
	Name  string
	Value string
}

// Variables flattens one telemetry snapshot into the NUT vocabulary. Runtime
// converts to seconds; the ups.debug.* block carries the protocol diagnostics.
func Variables(t *nitroup.Telemetry, info *nitroup.DeviceInfo, profile nitroup.DeviceProfile) []Variable {
	vars := []Variable{
		{"device.mfr", info.Manufacturer},
		{"device.model", info.Model},
		{"device.type", "ups"},
		{"device.serial", fmt.Sprintf("Microchip-04d8:000a-%d", info.ModelID)},

		{"driver.name", driverName},
		{"driver.version", versioninfo.Short()},
		{"driver.version.internal", info.FirmwareVersion},

		{"battery.charge", strconv.Itoa(t.BatteryCharge)},
		{"battery.voltage", formatFloat(t.BatteryVoltage)},
		{"battery.voltage.nominal", formatFloat(profile.NominalBatteryVoltage)},
		{"battery.current", formatFloat(t.BatteryCurrent)},
		{"battery.runtime", strconv.Itoa(t.RuntimeMinutes * 60)},
		{"battery.runtime.low", strconv.Itoa(runtimeLowSeconds)},

		{"input.voltage", strconv.Itoa(t.InputVoltage)},
		{"input.voltage.nominal", formatFloat(profile.NominalVoltage)},
		{"input.current", formatFloat(t.InputCurrent)},
		{"input.frequency", formatFloat(t.Frequency)},
		{"input.frequency.nominal", formatFloat(profile.NominalFrequency)},

		{"output.voltage", strconv.Itoa(t.OutputVoltage)},
		{"output.voltage.nominal", formatFloat(profile.NominalVoltage)},
		{"output.current", formatFloat(t.OutputCurrent)},
		{"output.power", formatFloat(t.ApparentPower)},
		{"output.realpower", formatFloat(t.RealPower)},
		{"output.frequency", formatFloat(t.Frequency)},

		{"ups.load", strconv.Itoa(t.Load)},
		{"ups.power.nominal", formatFloat(profile.NominalPowerVA)},
		{"ups.realpower.nominal", formatFloat(profile.NominalRealPowerWatt)},
		{"ups.temperature", strconv.Itoa(t.Temperature)},
		{"ups.status", t.Status.String()},
		{"ups.beeper.status", "enabled"},
		{"ups.type", "offline"},

		{"ups.debug.network_quality", fmt.Sprintf("0x%02x", t.Diagnostics.NetworkQuality)},
		{"ups.debug.controller_state", strconv.Itoa(int(t.Diagnostics.ControllerState))},
		{"ups.debug.transition_mode", yesNo(t.Transitioning)},
		{"ups.debug.battery_current_raw", strconv.Itoa(int(t.Diagnostics.BatteryCurrentRaw))},
		{"ups.debug.battery_current_source", string(t.Diagnostics.CurrentSource)},
		{"ups.debug.input_voltage_alt", strconv.Itoa(t.InputVoltageAlt)},
		{"ups.debug.offsets_revision", t.Diagnostics.OffsetsRevision},
		{"ups.debug.fusion_policy", t.Diagnostics.FusionPolicy},
	}
	return vars
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
