package actor

import (
	"testing"
	"time"

	"github.com/marcosviniciusi/ragtech2mqtt/internal/core/domain"
	"github.com/marcosviniciusi/ragtech2mqtt/internal/util/actorutil"
	"github.com/marcosviniciusi/ragtech2mqtt/pkg/nitroup"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestGetDeviceInfoSerialActor(t *testing.T) {

	assert := assert.New(t)

	reader, err := nitroup.CreateTestTelemetryReader()
	if err != nil {
		t.Error(err)
		return
	}

	logger := zap.Must(zap.NewDevelopment())

	as := actorutil.NewActorSystemWithZapLogger(logger)

	context := as.Root

	props := actor.PropsFromProducer(func() actor.Actor { return NewSerialActor(reader, logger) })
	pid := context.Spawn(props)

	time.Sleep(1 * time.Second)

	msg := domain.GetDeviceInfoRequest{}
	result, err := context.RequestFuture(pid, msg, 15*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	resp := result.(domain.GetDeviceInfoResponse)

	assert.Equal(resp.Device.Manufacturer, "Ragtech", "UPS manufacturer")
	assert.Equal(resp.Device.Model, "NitroUp 2000VA", "UPS model")
	assert.Equal(resp.Device.FirmwareVersion, "0.9", "UPS firmware version")
	assert.Equal(resp.BatteryCapacityAh, uint8(40), "battery capacity")

	context.Stop(pid)

	as.Shutdown()
}

func TestGetTelemetrySerialActor(t *testing.T) {

	assert := assert.New(t)

	reader, err := nitroup.CreateTestTelemetryReader()
	if err != nil {
		t.Error(err)
		return
	}

	logger := zap.Must(zap.NewDevelopment())

	as := actorutil.NewActorSystemWithZapLogger(logger)
	context := as.Root

	props := actor.PropsFromProducer(func() actor.Actor { return NewSerialActor(reader, logger) })
	pid := context.Spawn(props)

	time.Sleep(1 * time.Second)

	msg := domain.GetTelemetryRequest{}

	result, err := context.RequestFuture(pid, msg, 15*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	resp := result.(domain.GetTelemetryResponse)

	assert.Equal(98, resp.Telemetry.BatteryCharge, "battery charge")
	assert.False(resp.Telemetry.OnBattery(), "on line")
	assert.True(resp.Telemetry.ApparentPower > 0, "apparent power bounds")
	assert.True(resp.Telemetry.RealPower < resp.Telemetry.ApparentPower, "real power below apparent")

	context.Stop(pid)

	as.Shutdown()
}
