package nut

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/marcosviniciusi/ragtech2mqtt/pkg/nitroup"

	"github.com/stretchr/testify/assert"
)

func testTelemetry(t *testing.T) (*nitroup.Telemetry, *nitroup.DeviceInfo) {
	decoder, err := nitroup.NewDecoder(nitroup.NitroUp2000())
	if err != nil {
		t.Fatal(err)
	}
	tm, err := decoder.Decode(nitroup.OnBatteryTestFrame())
	if err != nil {
		t.Fatal(err)
	}
	info, err := decoder.DecodeDeviceInfo(nitroup.OnBatteryTestFrame())
	if err != nil {
		t.Fatal(err)
	}
	return tm, info
}

func varMap(vars []Variable) map[string]string {
	m := make(map[string]string, len(vars))
	for _, v := range vars {
		m[v.Name] = v.Value
	}
	return m
}

func TestVariables(t *testing.T) {
	assert := assert.New(t)

	tm, info := testTelemetry(t)
	vars := Variables(tm, info, nitroup.NitroUp2000())
	m := varMap(vars)

	assert.Equal("Ragtech", m["device.mfr"])
	assert.Equal("NitroUp 2000VA", m["device.model"])
	assert.Equal("59", m["battery.charge"])
	assert.Equal("OB DISCHRG", m["ups.status"])
	assert.Equal("26", m["battery.current"])
	assert.Equal("5", m["input.voltage"])
	assert.Equal("35", m["ups.load"])
	assert.Equal("0x00", m["ups.debug.network_quality"])
	assert.Equal("no", m["ups.debug.transition_mode"])
	assert.Equal("protocol", m["ups.debug.battery_current_source"])
	assert.Equal("rev3", m["ups.debug.offsets_revision"])

	// runtime in seconds
	assert.Equal("24", m["battery.voltage.nominal"])
	runtimeSeconds := tm.RuntimeMinutes * 60
	assert.Equal(runtimeSeconds, atoiOrFail(t, m["battery.runtime"]))

	// device info comes first, status block later
	assert.Equal("device.mfr", vars[0].Name)
}

func atoiOrFail(t *testing.T, s string) int {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			t.Fatalf("not a number: %q", s)
		}
		n = n*10 + int(c-'0')
	}
	return n
}

func TestWriteFile(t *testing.T) {
	assert := assert.New(t)

	tm, info := testTelemetry(t)
	vars := Variables(tm, info, nitroup.NitroUp2000())

	path := filepath.Join(t.TempDir(), "ragtech-ups.data")
	err := WriteFile(path, vars)
	assert.NoError(err)

	content, err := os.ReadFile(path)
	assert.NoError(err)

	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	assert.Len(lines, len(vars))
	assert.Equal("device.mfr: Ragtech", lines[0])
	assert.Contains(string(content), "ups.status: OB DISCHRG\n")

	// overwrite keeps a single consistent snapshot
	err = WriteFile(path, vars[:3])
	assert.NoError(err)
	content, err = os.ReadFile(path)
	assert.NoError(err)
	assert.Len(strings.Split(strings.TrimRight(string(content), "\n"), "\n"), 3)
}
