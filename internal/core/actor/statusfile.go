package actor

import (
	"fmt"
	"time"

	"github.com/marcosviniciusi/ragtech2mqtt/internal/config"
	"github.com/marcosviniciusi/ragtech2mqtt/internal/core/domain"
	"github.com/marcosviniciusi/ragtech2mqtt/internal/nut"
	. "github.com/marcosviniciusi/ragtech2mqtt/internal/util/actorutil"
	"github.com/marcosviniciusi/ragtech2mqtt/pkg/nitroup"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/eventstream"
	"go.uber.org/zap"
)

// StatusFileActor maintains the NUT-style variable file. It listens for
// telemetry snapshots on the event stream and rewrites the file on each one,
// so upsmon-style pollers always read a complete, current snapshot.
type StatusFileActor struct {
	behavior actor.Behavior
	stash    *Stash
	config   *config.Config

	serialActor *actor.PID

	eventStream    *eventstream.EventStream
	eventStreamSub *eventstream.Subscription

	deviceInfo *nitroup.DeviceInfo
	profile    nitroup.DeviceProfile

	logger *zap.Logger
}

func NewStatusFileActor(config *config.Config, profile nitroup.DeviceProfile, serialActor *actor.PID, eventStream *eventstream.EventStream, logger *zap.Logger) *StatusFileActor {
	act := &StatusFileActor{
		config:      config,
		profile:     profile,
		serialActor: serialActor,
		eventStream: eventStream,
		behavior:    actor.NewBehavior(),
		stash:       &Stash{},
		logger:      ActorLogger(domain.ACTOR_ID_STATUS_FILE, logger),
	}
	act.behavior.Become(act.StartingReceive)
	return act
}

func (state *StatusFileActor) Receive(context actor.Context) {
	state.behavior.Receive(context)
}

func (state *StatusFileActor) StartingReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.logger.Debug("statusfile@starting started")

		PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.serialActor, domain.GetDeviceInfoRequest{}, 10*time.Second), func(err error) any {
			return domain.GetDeviceInfoResponse{
				ActorResponseMixIn: domain.ActorResponseMixIn{
					ResponseError: err,
				},
			}
		})
		state.behavior.Become(state.WaitingInfoReceive)
	case *actor.Restarting:
		state.unsubscribe()
	default:
		state.logger.Debug("statusfile@starting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *StatusFileActor) WaitingInfoReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.GetDeviceInfoResponse:
		if msg.HasResponseError() {
			panic(msg.GetResponseError())
		}
		state.logger.Debug("statusfile@waitingInfo GetDeviceInfoResponse",
			zap.String("model", msg.Device.Model))
		state.deviceInfo = msg.Device

		self := ctx.Self()
		system := ctx.ActorSystem()
		state.eventStreamSub = state.eventStream.Subscribe(func(evt any) {
			if up, ok := evt.(domain.TelemetryUpdated); ok {
				system.Root.Send(self, up)
			}
		})

		state.behavior.Become(state.DefaultReceive)
		state.stash.UnstashAll(ctx)
	case *actor.Restarting:
		state.unsubscribe()
	default:
		state.logger.Debug("statusfile@waitingInfo: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *StatusFileActor) DefaultReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthRequest:
		state.logger.Debug("statusfile@default: ActorHealthRequest")
		ctx.Respond(domain.ActorHealthResponse{
			Id:      domain.ACTOR_ID_STATUS_FILE,
			Healthy: true,
			State:   "idle",
		})
	case domain.TelemetryUpdated:
		state.logger.Debug("statusfile@default: TelemetryUpdated",
			zap.String("status", msg.Telemetry.Status.String()))
		vars := nut.Variables(msg.Telemetry, state.deviceInfo, state.profile)
		if err := nut.WriteFile(state.config.NUTConfig.DataFile, vars); err != nil {
			state.logger.Error("statusfile@default write error", zap.Error(err))
		}
	case *actor.Stopping:
		state.unsubscribe()
	case *actor.Restarting:
		state.unsubscribe()
	default:
		state.logger.Debug("statusfile@default recv", zap.String("type", fmt.Sprintf("%T", msg)))
	}
}

func (state *StatusFileActor) unsubscribe() {
	if state.eventStreamSub != nil {
		state.eventStream.Unsubscribe(state.eventStreamSub)
		state.eventStreamSub = nil
	}
}
