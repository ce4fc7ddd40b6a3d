package actor

import (
	"fmt"
	"time"

	"github.com/marcosviniciusi/ragtech2mqtt/internal/config"
	"github.com/marcosviniciusi/ragtech2mqtt/internal/core/domain"
	"github.com/marcosviniciusi/ragtech2mqtt/internal/core/events"
	. "github.com/marcosviniciusi/ragtech2mqtt/internal/util/actorutil"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/eventstream"
	"github.com/asynkron/protoactor-go/scheduler"
	"go.uber.org/zap"
)

// MonitorActor drives the poll loop: every tick it asks the serial actor for
// one telemetry frame, fans the decoded values out as sensor events and
// broadcasts the raw snapshot for passive consumers.
type MonitorActor struct {
	behavior  actor.Behavior
	stash     *Stash
	scheduler *scheduler.TimerScheduler

	serialActor *actor.PID
	config      *config.Config
	eventStream *eventstream.EventStream

	logger *zap.Logger
}

type monitorTick struct {
}

func NewMonitorActor(config *config.Config, serialActor *actor.PID, eventStream *eventstream.EventStream, logger *zap.Logger) *MonitorActor {
	act := &MonitorActor{
		config:      config,
		serialActor: serialActor,
		behavior:    actor.NewBehavior(),
		stash:       &Stash{},
		logger:      ActorLogger(domain.ACTOR_ID_MONITOR, logger),
		eventStream: eventStream,
	}
	act.behavior.Become(act.StartingReceive)
	return act
}

func (state *MonitorActor) Receive(context actor.Context) {
	state.behavior.Receive(context)
}

func (state *MonitorActor) StartingReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.logger.Debug("monitor@starting started")

		if state.config.MonitorConfig.PollIntervalMillis > 0 {
			state.scheduler = scheduler.NewTimerScheduler(ctx)
			state.scheduler.RequestOnce(time.Duration(state.config.MonitorConfig.PollIntervalMillis)*time.Millisecond, ctx.Self(), monitorTick{})
		}

		state.behavior.Become(state.DefaultReceive)
		state.stash.UnstashAll(ctx)
	case *actor.Restarting:
	default:
		state.logger.Debug("monitor@starting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *MonitorActor) DefaultReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthRequest:
		state.logger.Debug("monitor@default: ActorHealthRequest")
		ctx.Respond(domain.ActorHealthResponse{
			Id:      domain.ACTOR_ID_MONITOR,
			Healthy: true,
			State:   "idle",
		})
	case monitorTick:
		state.logger.Debug("monitor@default tick")
		// get telemetry; the timeout covers a full serial exchange
		PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.serialActor, domain.GetTelemetryRequest{}, 10*time.Second), func(err error) any {
			return domain.GetTelemetryResponse{
				ActorResponseMixIn: domain.ActorResponseMixIn{
					ResponseError: err,
				},
			}
		})

		// schedule next tick
		state.scheduler.RequestOnce(time.Duration(state.config.MonitorConfig.PollIntervalMillis)*time.Millisecond, ctx.Self(), monitorTick{})
		state.behavior.BecomeStacked(state.WaitingTelemetryReceive)
	default:
		state.logger.Debug("monitor@default: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *MonitorActor) WaitingTelemetryReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.GetTelemetryResponse:
		if msg.HasResponseError() {
			state.logger.Error("monitor@waiting GetTelemetryResponse error", zap.Error(msg.GetResponseError()))
			state.behavior.UnbecomeStacked()
			state.stash.UnstashAll(ctx)
			return
		}
		state.logger.Debug("monitor@waiting GetTelemetryResponse",
			zap.String("status", msg.Telemetry.Status.String()),
			zap.Bool("on_battery", msg.Telemetry.OnBattery()))

		evs := events.TelemetryToUpdateEvents(msg.Telemetry)
		for _, ev := range evs {
			state.eventStream.Publish(ev)
		}
		// full snapshot for the status file and any other passive consumer
		state.eventStream.Publish(domain.TelemetryUpdated{Telemetry: msg.Telemetry})

		state.behavior.UnbecomeStacked()
		state.stash.UnstashAll(ctx)
	default:
		state.logger.Debug("monitor@waiting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}
