package actor

import (
	"fmt"
	"time"

	"github.com/marcosviniciusi/ragtech2mqtt/internal/core/domain"
	"github.com/marcosviniciusi/ragtech2mqtt/internal/util/actorutil"
	"github.com/marcosviniciusi/ragtech2mqtt/pkg/nitroup"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/reugn/go-quartz/logger"
	"go.uber.org/zap"
)

const (
	SERIAL_ACTOR_ID = "serial"

	// one request/response cycle includes the 2s settle delay of the PIC
	// bridge, so the task timeout has to sit well above it
	serialTaskTimeout = 8 * time.Second
)

// SerialActor owns the serial port. Requests are serialized through the
// WaitingSerial state because the UPS answers exactly one request at a time.
type SerialActor struct {
	behavior actor.Behavior
	stash    *actorutil.Stash
	reader   nitroup.TelemetryReader
	logger   *zap.Logger
}

type backgroundTaskResult struct {
	message any
	replyTo *actor.PID
}

func NewSerialActor(reader nitroup.TelemetryReader, logger *zap.Logger) *SerialActor {
	act := &SerialActor{
		reader:   reader,
		behavior: actor.NewBehavior(),
		stash:    &actorutil.Stash{},
		logger:   actorutil.ActorLogger("serial", logger),
	}
	act.behavior.Become(act.StartingReceive)
	return act
}

func (state *SerialActor) Receive(context actor.Context) {
	state.behavior.Receive(context)
}

func (state *SerialActor) StartingReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.logger.Debug("serial@starting started")
		if err := state.reader.Open(); err != nil {
			panic(err)
		}
		state.behavior.Become(state.DefaultReceive)
		state.stash.UnstashAll(ctx)
	case *actor.Restarting:
		state.reader.Close()
	default:
		state.logger.Debug("serial@starting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *SerialActor) DefaultReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthRequest:
		state.logger.Debug("serial@default: ActorHealthRequest")
		ctx.Respond(domain.ActorHealthResponse{
			Id:      SERIAL_ACTOR_ID,
			Healthy: true,
			State:   "idle",
		})
	case domain.GetDeviceInfoRequest:
		state.logger.Debug("serial@default: GetDeviceInfoRequest")
		sender := actorutil.ForRequest(msg).ReplyTo(ctx)

		actorutil.MapBackgroundTask(actorutil.NewBackgroundTask(ctx, state.getDeviceInfo),
			mapTaskResult[domain.GetDeviceInfoResponse](sender)).Recover(func(err error) backgroundTaskResult {
			return backgroundTaskResult{
				message: domain.GetDeviceInfoResponse{
					ActorResponseMixIn: domain.ActorResponseMixIn{
						ResponseError: err,
					},
				},
				replyTo: sender,
			}
		}).WithTimeout(serialTaskTimeout).PipeTo(ctx.Self())
		state.behavior.BecomeStacked(state.WaitingSerial)
	case domain.GetTelemetryRequest:
		state.logger.Debug("serial@default: GetTelemetryRequest")
		sender := ctx.Sender()
		actorutil.MapBackgroundTask(actorutil.NewBackgroundTask(ctx, state.getTelemetry),
			mapTaskResult[domain.GetTelemetryResponse](sender)).Recover(func(err error) backgroundTaskResult {
			return backgroundTaskResult{
				message: domain.GetTelemetryResponse{
					ActorResponseMixIn: domain.ActorResponseMixIn{
						ResponseError: err,
					},
				},
				replyTo: sender,
			}
		}).WithTimeout(serialTaskTimeout).PipeTo(ctx.Self())
		state.behavior.BecomeStacked(state.WaitingSerial)
	case *actor.Stopping:
		state.reader.Close()
	default:
		state.logger.Debug("serial@default default recv", zap.String("type", fmt.Sprintf("%T", msg)))
	}
}

func (state *SerialActor) WaitingSerial(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case backgroundTaskResult:
		state.logger.Debug("serial@WaitingSerial backgroundTaskResult", zap.String("type", fmt.Sprintf("%T", msg.message)))
		ctx.Send(msg.replyTo, msg.message)
		state.behavior.UnbecomeStacked()
		state.stash.UnstashAll(ctx)
	case *actor.Stopping:
		state.reader.Close()
	default:
		state.logger.Debug("serial@WaitingSerial stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (a *SerialActor) getDeviceInfo() (*domain.GetDeviceInfoResponse, error) {
	info, err := a.reader.GetDeviceInfo()
	if err != nil {
		logger.Error(err)
		return nil, err
	}
	capacity, err := a.reader.GetBatteryCapacity()
	if err != nil {
		logger.Error(err)
		return nil, err
	}
	return &domain.GetDeviceInfoResponse{
		Device:            info,
		BatteryCapacityAh: capacity,
	}, nil
}

func (a *SerialActor) getTelemetry() (*domain.GetTelemetryResponse, error) {
	telemetry, err := a.reader.GetTelemetry()
	if err != nil {
		logger.Error(err)
		return nil, err
	}
	return &domain.GetTelemetryResponse{
		Telemetry: telemetry,
	}, nil
}

func mapTaskResult[T any](sender *actor.PID) func(t *T) *backgroundTaskResult {
	return func(t *T) *backgroundTaskResult {
		return &backgroundTaskResult{
			message: *t,
			replyTo: sender,
		}
	}
}
