package actor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	adactor "github.com/marcosviniciusi/ragtech2mqtt/internal/adapter/actor"
	"github.com/marcosviniciusi/ragtech2mqtt/internal/core/domain"
	"github.com/marcosviniciusi/ragtech2mqtt/internal/util"
	"github.com/marcosviniciusi/ragtech2mqtt/pkg/nitroup"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/eventstream"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestStatusFileActorWritesOnTelemetry(t *testing.T) {

	assert := assert.New(t)

	reader, err := nitroup.CreateTestTelemetryReader()
	if err != nil {
		t.Error(err)
		return
	}

	cfg := util.LoadTestConfig()
	cfg.NUTConfig.Enable = true
	cfg.NUTConfig.DataFile = filepath.Join(t.TempDir(), "ragtech-ups.data")

	logger := zap.Must(zap.NewDevelopment())

	as := actor.NewActorSystem()
	context := as.Root

	serialProps := actor.PropsFromProducer(func() actor.Actor { return adactor.NewSerialActor(reader, logger) })
	serialPID := context.Spawn(serialProps)

	es := &eventstream.EventStream{}

	statusProps := actor.PropsFromProducer(func() actor.Actor {
		return NewStatusFileActor(&cfg, nitroup.NitroUp2000(), serialPID, es, logger)
	})
	statusPID := context.Spawn(statusProps)

	// wait for the device info handshake and stream subscription
	time.Sleep(1 * time.Second)

	decoder, err := nitroup.NewDecoder(nitroup.NitroUp2000())
	if err != nil {
		t.Fatal(err)
	}
	tm, err := decoder.Decode(nitroup.OnBatteryTestFrame())
	if err != nil {
		t.Fatal(err)
	}
	es.Publish(domain.TelemetryUpdated{Telemetry: tm})

	time.Sleep(500 * time.Millisecond)

	content, err := os.ReadFile(cfg.NUTConfig.DataFile)
	if err != nil {
		t.Fatal(err)
	}
	text := string(content)

	assert.True(strings.HasPrefix(text, "device.mfr: Ragtech\n"))
	assert.Contains(text, "device.model: NitroUp 2000VA\n")
	assert.Contains(text, "ups.status: OB DISCHRG\n")
	assert.Contains(text, "battery.charge: 59\n")

	// next snapshot replaces the file
	tm2, err := decoder.Decode(nitroup.BuildTestFrame(nil))
	if err != nil {
		t.Fatal(err)
	}
	es.Publish(domain.TelemetryUpdated{Telemetry: tm2})

	time.Sleep(500 * time.Millisecond)

	content, err = os.ReadFile(cfg.NUTConfig.DataFile)
	if err != nil {
		t.Fatal(err)
	}
	assert.Contains(string(content), "ups.status: OL")
	assert.Contains(string(content), "battery.charge: 98\n")

	context.Stop(statusPID)
	context.Stop(serialPID)

	as.Shutdown()
}
