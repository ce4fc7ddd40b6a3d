package events

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"

	. "github.com/marcosviniciusi/ragtech2mqtt/internal/core/domain"
	"github.com/marcosviniciusi/ragtech2mqtt/pkg/nitroup"

	"github.com/carlmjohnson/versioninfo"
)

const (
	SENSOR_ID_BRIDGE_STATE          = "bridge"
	SENSOR_ID_BATTERY_CHARGE        = "battery_charge"
	SENSOR_ID_BATTERY_VOLTAGE       = "battery_voltage"
	SENSOR_ID_BATTERY_CURRENT       = "battery_current"
	SENSOR_ID_BATTERY_RUNTIME       = "battery_runtime"
	SENSOR_ID_INPUT_VOLTAGE         = "input_voltage"
	SENSOR_ID_INPUT_CURRENT         = "input_current"
	SENSOR_ID_INPUT_FREQUENCY       = "input_frequency"
	SENSOR_ID_OUTPUT_VOLTAGE        = "output_voltage"
	SENSOR_ID_OUTPUT_CURRENT        = "output_current"
	SENSOR_ID_OUTPUT_APPARENT_POWER = "output_apparent_power"
	SENSOR_ID_OUTPUT_REAL_POWER     = "output_real_power"
	SENSOR_ID_UPS_LOAD              = "ups_load"
	SENSOR_ID_UPS_TEMPERATURE       = "ups_temperature"
	SENSOR_ID_UPS_STATUS            = "ups_status"
	SENSOR_ID_ON_BATTERY            = "on_battery"
	SENSOR_ID_TRANSITIONING         = "transitioning"
	STATE_CLASS_DURATION            = "duration"
	STATE_CLASS_MEASUREMENT         = "measurement"
	DEVICE_CLASS_BATTERY            = "battery"
	DEVICE_CLASS_CURRENT            = "current"
	DEVICE_CLASS_DURATION           = "duration"
	DEVICE_CLASS_FREQUENCY          = "frequency"
	DEVICE_CLASS_POWER              = "power"
	DEVICE_CLASS_APPARENT_POWER     = "apparent_power"
	DEVICE_CLASS_TEMPERATURE        = "temperature"
	DEVICE_CLASS_VOLTAGE            = "voltage"
	DEVICE_CLASS_CONNECTIVITY       = "connectivity"
	DEVICE_CLASS_PROBLEM            = "problem"
	ENTITY_CLASS_DIAGNOSTIC         = "diagnostic"
	ENTITY_CLASS_CONFIG             = "config"
	SENSOR_TYPE_SENSOR              = "sensor"
	SENSOR_TYPE_BINARY              = "binary_sensor"
)

func BridgeDevice(baseTopic string) Device {
	return Device{
		Id:           fmt.Sprintf("ragtech_bridge_%s", md5HashShort(baseTopic)),
		Manufacturer: "MVini",
		Model:        "Ragtech2MQTT",
		Version:      versioninfo.Short(),
		Name:         fmt.Sprintf("Ragtech2MQTT %s", md5HashShort(baseTopic)),
	}
}

func UPSDevice(info *nitroup.DeviceInfo) Device {
	serial := fmt.Sprintf("%d-%s", info.ModelID, info.FirmwareVersion)
	return Device{
		Id:           fmt.Sprintf("rag_ups_%s", md5HashShort(serial)),
		Version:      info.FirmwareVersion,
		Manufacturer: info.Manufacturer,
		Model:        info.Model,
		Name:         fmt.Sprintf("%s %s %s", info.Manufacturer, info.Model, md5HashShort(serial)),
	}
}

func IdDevice(device Device) Device {
	return Device{
		Id:   device.Id,
		Name: device.Name,
	}
}

func UPSBaseSensors(upsDevice Device) []GenericSensor {

	var sensors []GenericSensor

	// Battery charge
	sensors = append(sensors, GenericSensor{
		Device:            upsDevice,
		Id:                SENSOR_ID_BATTERY_CHARGE,
		SensorType:        SENSOR_TYPE_SENSOR,
		Name:              "Battery charge",
		StateClass:        STATE_CLASS_MEASUREMENT,
		DeviceClass:       DEVICE_CLASS_BATTERY,
		UnitOfMeasurement: "%",
		UniqueId:          uniqueId(upsDevice.Id, SENSOR_ID_BATTERY_CHARGE),
	})

	// Battery voltage
	sensors = append(sensors, GenericSensor{
		Device:            upsDevice,
		Id:                SENSOR_ID_BATTERY_VOLTAGE,
		SensorType:        SENSOR_TYPE_SENSOR,
		Name:              "Battery voltage",
		StateClass:        STATE_CLASS_MEASUREMENT,
		DeviceClass:       DEVICE_CLASS_VOLTAGE,
		UnitOfMeasurement: "V",
		UniqueId:          uniqueId(upsDevice.Id, SENSOR_ID_BATTERY_VOLTAGE),
	})

	// Battery current
	sensors = append(sensors, GenericSensor{
		Device:            upsDevice,
		Id:                SENSOR_ID_BATTERY_CURRENT,
		SensorType:        SENSOR_TYPE_SENSOR,
		Name:              "Battery current",
		StateClass:        STATE_CLASS_MEASUREMENT,
		DeviceClass:       DEVICE_CLASS_CURRENT,
		UnitOfMeasurement: "A",
		UniqueId:          uniqueId(upsDevice.Id, SENSOR_ID_BATTERY_CURRENT),
	})

	// Battery runtime
	sensors = append(sensors, GenericSensor{
		Device:            upsDevice,
		Id:                SENSOR_ID_BATTERY_RUNTIME,
		SensorType:        SENSOR_TYPE_SENSOR,
		Name:              "Battery runtime",
		StateClass:        STATE_CLASS_MEASUREMENT,
		DeviceClass:       DEVICE_CLASS_DURATION,
		UnitOfMeasurement: "min",
		Icon:              "mdi:timer-sand",
		UniqueId:          uniqueId(upsDevice.Id, SENSOR_ID_BATTERY_RUNTIME),
	})

	// Input voltage
	sensors = append(sensors, GenericSensor{
		Device:            upsDevice,
		Id:                SENSOR_ID_INPUT_VOLTAGE,
		SensorType:        SENSOR_TYPE_SENSOR,
		Name:              "Input voltage",
		StateClass:        STATE_CLASS_MEASUREMENT,
		DeviceClass:       DEVICE_CLASS_VOLTAGE,
		UnitOfMeasurement: "V",
		UniqueId:          uniqueId(upsDevice.Id, SENSOR_ID_INPUT_VOLTAGE),
	})

	// Input current
	sensors = append(sensors, GenericSensor{
		Device:            upsDevice,
		Id:                SENSOR_ID_INPUT_CURRENT,
		SensorType:        SENSOR_TYPE_SENSOR,
		Name:              "Input current",
		StateClass:        STATE_CLASS_MEASUREMENT,
		DeviceClass:       DEVICE_CLASS_CURRENT,
		UnitOfMeasurement: "A",
		EnabledByDefault:  optionalBool(false),
		UniqueId:          uniqueId(upsDevice.Id, SENSOR_ID_INPUT_CURRENT),
	})

	// Input frequency
	sensors = append(sensors, GenericSensor{
		Device:            upsDevice,
		Id:                SENSOR_ID_INPUT_FREQUENCY,
		SensorType:        SENSOR_TYPE_SENSOR,
		Name:              "Input frequency",
		StateClass:        STATE_CLASS_MEASUREMENT,
		DeviceClass:       DEVICE_CLASS_FREQUENCY,
		UnitOfMeasurement: "Hz",
		Icon:              "mdi:sine-wave",
		EnabledByDefault:  optionalBool(false),
		UniqueId:          uniqueId(upsDevice.Id, SENSOR_ID_INPUT_FREQUENCY),
	})

	// Output voltage
	sensors = append(sensors, GenericSensor{
		Device:            upsDevice,
		Id:                SENSOR_ID_OUTPUT_VOLTAGE,
		SensorType:        SENSOR_TYPE_SENSOR,
		Name:              "Output voltage",
		StateClass:        STATE_CLASS_MEASUREMENT,
		DeviceClass:       DEVICE_CLASS_VOLTAGE,
		UnitOfMeasurement: "V",
		UniqueId:          uniqueId(upsDevice.Id, SENSOR_ID_OUTPUT_VOLTAGE),
	})

	// Output current
	sensors = append(sensors, GenericSensor{
		Device:            upsDevice,
		Id:                SENSOR_ID_OUTPUT_CURRENT,
		SensorType:        SENSOR_TYPE_SENSOR,
		Name:              "Output current",
		StateClass:        STATE_CLASS_MEASUREMENT,
		DeviceClass:       DEVICE_CLASS_CURRENT,
		UnitOfMeasurement: "A",
		UniqueId:          uniqueId(upsDevice.Id, SENSOR_ID_OUTPUT_CURRENT),
	})

	// Output apparent power
	sensors = append(sensors, GenericSensor{
		Device:            upsDevice,
		Id:                SENSOR_ID_OUTPUT_APPARENT_POWER,
		SensorType:        SENSOR_TYPE_SENSOR,
		Name:              "Output apparent power",
		StateClass:        STATE_CLASS_MEASUREMENT,
		DeviceClass:       DEVICE_CLASS_APPARENT_POWER,
		UnitOfMeasurement: "VA",
		UniqueId:          uniqueId(upsDevice.Id, SENSOR_ID_OUTPUT_APPARENT_POWER),
	})

	// Output real power
	sensors = append(sensors, GenericSensor{
		Device:            upsDevice,
		Id:                SENSOR_ID_OUTPUT_REAL_POWER,
		SensorType:        SENSOR_TYPE_SENSOR,
		Name:              "Output real power",
		StateClass:        STATE_CLASS_MEASUREMENT,
		DeviceClass:       DEVICE_CLASS_POWER,
		UnitOfMeasurement: "W",
		UniqueId:          uniqueId(upsDevice.Id, SENSOR_ID_OUTPUT_REAL_POWER),
	})

	// Load
	sensors = append(sensors, GenericSensor{
		Device:            upsDevice,
		Id:                SENSOR_ID_UPS_LOAD,
		SensorType:        SENSOR_TYPE_SENSOR,
		Name:              "Load",
		StateClass:        STATE_CLASS_MEASUREMENT,
		UnitOfMeasurement: "%",
		Icon:              "mdi:gauge",
		UniqueId:          uniqueId(upsDevice.Id, SENSOR_ID_UPS_LOAD),
	})

	// Temperature
	sensors = append(sensors, GenericSensor{
		Device:            upsDevice,
		Id:                SENSOR_ID_UPS_TEMPERATURE,
		SensorType:        SENSOR_TYPE_SENSOR,
		Name:              "Temperature",
		StateClass:        STATE_CLASS_MEASUREMENT,
		DeviceClass:       DEVICE_CLASS_TEMPERATURE,
		UnitOfMeasurement: "°C",
		UniqueId:          uniqueId(upsDevice.Id, SENSOR_ID_UPS_TEMPERATURE),
	})

	// Status string
	sensors = append(sensors, GenericSensor{
		Device:     upsDevice,
		Id:         SENSOR_ID_UPS_STATUS,
		SensorType: SENSOR_TYPE_SENSOR,
		Name:       "Status",
		Icon:       "mdi:power-plug-battery",
		UniqueId:   uniqueId(upsDevice.Id, SENSOR_ID_UPS_STATUS),
	})

	// On battery
	sensors = append(sensors, GenericSensor{
		Device:      upsDevice,
		Id:          SENSOR_ID_ON_BATTERY,
		SensorType:  SENSOR_TYPE_BINARY,
		Name:        "On battery",
		DeviceClass: DEVICE_CLASS_PROBLEM,
		Icon:        "mdi:battery-alert",
		UniqueId:    uniqueId(upsDevice.Id, SENSOR_ID_ON_BATTERY),
	})

	// Transitioning
	sensors = append(sensors, GenericSensor{
		Device:         upsDevice,
		Id:             SENSOR_ID_TRANSITIONING,
		SensorType:     SENSOR_TYPE_BINARY,
		Name:           "Transitioning",
		DeviceClass:    DEVICE_CLASS_PROBLEM,
		EntityCategory: ENTITY_CLASS_DIAGNOSTIC,
		UniqueId:       uniqueId(upsDevice.Id, SENSOR_ID_TRANSITIONING),
	})

	return sensors
}

func BridgeSensors(bridgeDevice Device) []GenericSensor {

	var sensors []GenericSensor

	// Bridge connection state
	sensors = append(sensors, GenericSensor{
		Device:         bridgeDevice,
		Id:             SENSOR_ID_BRIDGE_STATE,
		SensorType:     SENSOR_TYPE_BINARY,
		Name:           "Connection state",
		DeviceClass:    DEVICE_CLASS_CONNECTIVITY,
		EntityCategory: ENTITY_CLASS_DIAGNOSTIC,
		UniqueId:       uniqueId(bridgeDevice.Id, SENSOR_ID_BRIDGE_STATE),
	})

	return sensors
}

func uniqueId(baseId, id string) string {
	return fmt.Sprintf("uid_%s_%s", baseId, id)
}

func md5Hash(text string) string {
	hash := md5.Sum([]byte(text))
	return hex.EncodeToString(hash[:])
}

func md5HashShort(text string) string {
	hash := md5Hash(text)
	return hash[0:8]
}

func optionalBool(value bool) *bool {
	return &value
}
