package mqtt

import (
	"testing"

	"github.com/marcosviniciusi/ragtech2mqtt/internal/config"
	"github.com/marcosviniciusi/ragtech2mqtt/internal/core/domain"

	"github.com/stretchr/testify/assert"
)

func testClient() *MQTTClient {
	cfg := &config.Config{
		MQTT: config.MQTTConfig{
			Host:      "localhost",
			Port:      1883,
			BaseTopic: "ragtech2mqtt",
		},
	}
	return CreateMQTTClient(cfg, OptsFromConfig(cfg), nil, nil)
}

func TestTopicScheme(t *testing.T) {

	assert := assert.New(t)

	client := testClient()

	assert.Equal("ragtech2mqtt/bridge/state", client.BridgeStateTopic())
	assert.Equal("ragtech2mqtt/sensor/battery_charge/state", client.SensorStateTopic("battery_charge"))
	assert.Equal("ragtech2mqtt/binary_sensor/on_battery/state", client.BinarySensorStateTopic("on_battery"))
}

func TestLastWillOnBridgeTopic(t *testing.T) {

	assert := assert.New(t)

	cfg := &config.Config{
		MQTT: config.MQTTConfig{
			Host:      "localhost",
			Port:      1883,
			BaseTopic: "ragtech2mqtt",
		},
	}
	opts := OptsFromConfig(cfg)

	assert.True(opts.WillEnabled)
	assert.True(opts.WillRetained)
	assert.Equal("ragtech2mqtt/bridge/state", opts.WillTopic)
	assert.Equal(MQTT_PAYLOAD_OFFLINE, string(opts.WillPayload))
}

func TestHADiscoveryMessage(t *testing.T) {

	assert := assert.New(t)

	client := testClient()

	sensor := domain.GenericSensor{
		Device: domain.Device{
			Id:   "rag_ups_12345678",
			Name: "Ragtech NitroUp 2000VA",
		},
		Id:                "battery_voltage",
		SensorType:        "sensor",
		Name:              "Battery voltage",
		StateClass:        "measurement",
		DeviceClass:       "voltage",
		UnitOfMeasurement: "V",
		UniqueId:          "uid_rag_ups_12345678_battery_voltage",
	}

	msg := GenericSensorToHADiscoveryMessage(client, sensor)

	assert.Equal("ragtech2mqtt/sensor/battery_voltage/state", msg.StateTopic)
	assert.Equal("ragtech2mqtt/bridge/state", msg.AvTopic)
	assert.Equal("mqtt", msg.Platform)
	assert.Equal([]string{"rag_ups_12345678"}, msg.Device.Id)

	topic := HADiscoverySensorTopic("homeassistant", sensor)
	assert.Equal("homeassistant/sensor/rag_ups_12345678/battery_voltage/config", topic)
}

func TestHADiscoveryBinarySensorPayloads(t *testing.T) {

	assert := assert.New(t)

	client := testClient()

	sensor := domain.GenericSensor{
		Device:     domain.Device{Id: "rag_ups_12345678"},
		Id:         "on_battery",
		SensorType: "binary_sensor",
		Name:       "On battery",
		UniqueId:   "uid_rag_ups_12345678_on_battery",
	}

	msg := GenericSensorToHADiscoveryMessage(client, sensor)

	assert.Equal("ragtech2mqtt/binary_sensor/on_battery/state", msg.StateTopic)
	assert.Equal(MQTT_PAYLOAD_ON, msg.PayloadOn)
	assert.Equal(MQTT_PAYLOAD_OFF, msg.PayloadOff)
}
