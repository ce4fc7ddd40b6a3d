package domain

import "github.com/marcosviniciusi/ragtech2mqtt/pkg/nitroup"

const (
	ACTOR_ID_MASTER       = "master"
	ACTOR_ID_SERIAL       = "serial"
	ACTOR_ID_MONITOR      = "monitor"
	ACTOR_ID_MQTT         = "mqtt"
	ACTOR_ID_STATUS_FILE  = "statusfile"
	ACTOR_ID_HA_DISCOVERY = "hadiscovery"
)

type GetDeviceInfoRequest struct {
	ActorRequestMixIn
}

type GetDeviceInfoResponse struct {
	ActorResponseMixIn
	Device            *nitroup.DeviceInfo
	BatteryCapacityAh uint8
}

type GetTelemetryRequest struct {
	ActorRequestMixIn
}

type GetTelemetryResponse struct {
	ActorResponseMixIn
	Telemetry *nitroup.Telemetry
}

// TelemetryUpdated is broadcast by the monitor after each successful poll so
// passive consumers (status file, diagnostics) see the same snapshot the
// sensor events were derived from.
type TelemetryUpdated struct {
	Telemetry *nitroup.Telemetry
}

type PublishMessageRequest struct {
	ActorRequestMixIn
	Topic   string
	Payload string
	Retain  bool
}

type PublishMessageResponse struct {
	ActorResponseMixIn
}

type PublishSensorUpdateRequest struct {
	ActorRequestMixIn
	Retain bool
	Event  SensorUpdateEvent
}

type PublishSensorUpdateResponse struct {
	ActorResponseMixIn
}

type PublishDiscoveryRequest struct {
	ActorRequestMixIn
	Sensors []GenericSensor
}

type PublishDiscoveryResponse struct {
	ActorResponseMixIn
}

type ActorHealthRequest struct {
	ActorRequestMixIn
}

type ActorHealthResponse struct {
	ActorResponseMixIn
	Id      string
	Healthy bool
	State   string
}
