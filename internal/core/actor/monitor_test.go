package actor

import (
	"sync"
	"testing"
	"time"

	adactor "github.com/marcosviniciusi/ragtech2mqtt/internal/adapter/actor"
	"github.com/marcosviniciusi/ragtech2mqtt/internal/core/domain"
	"github.com/marcosviniciusi/ragtech2mqtt/internal/core/events"
	"github.com/marcosviniciusi/ragtech2mqtt/internal/util"
	"github.com/marcosviniciusi/ragtech2mqtt/pkg/nitroup"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/eventstream"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestMonitorActorPublishesTelemetry(t *testing.T) {

	assert := assert.New(t)

	reader, err := nitroup.CreateTestTelemetryReader()
	if err != nil {
		t.Error(err)
		return
	}
	// first poll on line, subsequent polls on battery
	reader.Sequence = [][]byte{
		nitroup.BuildTestFrame(nil),
		nitroup.OnBatteryTestFrame(),
	}

	cfg := util.LoadTestConfig()
	cfg.MonitorConfig.PollIntervalMillis = 300

	logger := zap.Must(zap.NewDevelopment())

	as := actor.NewActorSystem()
	context := as.Root

	serialProps := actor.PropsFromProducer(func() actor.Actor { return adactor.NewSerialActor(reader, logger) })
	serialPID := context.Spawn(serialProps)

	es := &eventstream.EventStream{}

	var mu sync.Mutex
	var snapshots []*nitroup.Telemetry
	var sensorEvents []domain.SensorUpdateEvent
	sub := es.Subscribe(func(evt any) {
		mu.Lock()
		defer mu.Unlock()
		switch ev := evt.(type) {
		case domain.TelemetryUpdated:
			snapshots = append(snapshots, ev.Telemetry)
		case domain.SensorUpdateEvent:
			sensorEvents = append(sensorEvents, ev)
		}
	})
	defer es.Unsubscribe(sub)

	monitorProps := actor.PropsFromProducer(func() actor.Actor {
		return NewMonitorActor(&cfg, serialPID, es, logger)
	})
	monitorPID := context.Spawn(monitorProps)

	// enough for at least two poll cycles
	time.Sleep(1 * time.Second)

	mu.Lock()
	defer mu.Unlock()

	assert.GreaterOrEqual(len(snapshots), 2, "at least two snapshots")
	assert.False(snapshots[0].OnBattery(), "first poll on line")
	assert.True(snapshots[len(snapshots)-1].OnBattery(), "later polls on battery")

	// every snapshot fans out one event per sensor
	assert.GreaterOrEqual(len(sensorEvents), len(snapshots)*10)

	var statusValues []string
	for _, ev := range sensorEvents {
		if ev.SensorId() == events.SENSOR_ID_UPS_STATUS {
			if tev, ok := ev.(domain.TextSensorUpdateEvent); ok {
				statusValues = append(statusValues, tev.Value)
			}
		}
	}
	assert.Contains(statusValues, "OL")
	assert.Contains(statusValues, "OB DISCHRG")

	context.Stop(monitorPID)
	context.Stop(serialPID)

	as.Shutdown()
}

func TestMonitorActorHealth(t *testing.T) {

	assert := assert.New(t)

	reader, err := nitroup.CreateTestTelemetryReader()
	if err != nil {
		t.Error(err)
		return
	}

	cfg := util.LoadTestConfig()
	// no scheduled polls, health only
	cfg.MonitorConfig.PollIntervalMillis = 0

	logger := zap.Must(zap.NewDevelopment())

	as := actor.NewActorSystem()
	context := as.Root

	serialProps := actor.PropsFromProducer(func() actor.Actor { return adactor.NewSerialActor(reader, logger) })
	serialPID := context.Spawn(serialProps)

	es := &eventstream.EventStream{}
	monitorProps := actor.PropsFromProducer(func() actor.Actor {
		return NewMonitorActor(&cfg, serialPID, es, logger)
	})
	monitorPID := context.Spawn(monitorProps)

	time.Sleep(200 * time.Millisecond)

	result, err := context.RequestFuture(monitorPID, domain.ActorHealthRequest{}, 5*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	resp := result.(domain.ActorHealthResponse)
	assert.True(resp.Healthy)
	assert.Equal(domain.ACTOR_ID_MONITOR, resp.Id)

	context.Stop(monitorPID)
	context.Stop(serialPID)

	as.Shutdown()
}
