package events

import (
	. "github.com/marcosviniciusi/ragtech2mqtt/internal/core/domain"
	"github.com/marcosviniciusi/ragtech2mqtt/pkg/nitroup"
)

func TelemetryToUpdateEvents(t *nitroup.Telemetry) []any {
	var events []any

	// Battery charge
	events = append(events, IntSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: SENSOR_ID_BATTERY_CHARGE,
		},
		Value: t.BatteryCharge,
	})
	// Battery voltage
	events = append(events, FloatSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: SENSOR_ID_BATTERY_VOLTAGE,
		},
		Value:    t.BatteryVoltage,
		Decimals: 2,
	})
	// Battery current (signed, positive = discharging)
	events = append(events, FloatSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: SENSOR_ID_BATTERY_CURRENT,
		},
		Value:    t.BatteryCurrent,
		Decimals: 1,
	})
	// Battery runtime estimate
	events = append(events, IntSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: SENSOR_ID_BATTERY_RUNTIME,
		},
		Value: t.RuntimeMinutes,
	})
	// Input voltage
	events = append(events, IntSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: SENSOR_ID_INPUT_VOLTAGE,
		},
		Value: t.InputVoltage,
	})
	// Input current
	events = append(events, FloatSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: SENSOR_ID_INPUT_CURRENT,
		},
		Value:    t.InputCurrent,
		Decimals: 2,
	})
	// Input frequency
	events = append(events, FloatSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: SENSOR_ID_INPUT_FREQUENCY,
		},
		Value:    t.Frequency,
		Decimals: 2,
	})
	// Output voltage
	events = append(events, IntSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: SENSOR_ID_OUTPUT_VOLTAGE,
		},
		Value: t.OutputVoltage,
	})
	// Output current
	events = append(events, FloatSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: SENSOR_ID_OUTPUT_CURRENT,
		},
		Value:    t.OutputCurrent,
		Decimals: 2,
	})
	// Apparent power
	events = append(events, FloatSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: SENSOR_ID_OUTPUT_APPARENT_POWER,
		},
		Value:    t.ApparentPower,
		Decimals: 1,
	})
	// Real power
	events = append(events, FloatSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: SENSOR_ID_OUTPUT_REAL_POWER,
		},
		Value:    t.RealPower,
		Decimals: 1,
	})
	// Load
	events = append(events, IntSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: SENSOR_ID_UPS_LOAD,
		},
		Value: t.Load,
	})
	// Temperature
	events = append(events, IntSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: SENSOR_ID_UPS_TEMPERATURE,
		},
		Value: t.Temperature,
	})
	// NUT-style status string
	events = append(events, TextSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: SENSOR_ID_UPS_STATUS,
		},
		Value: t.Status.String(),
	})
	// On battery
	events = append(events, BinarySensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: SENSOR_ID_ON_BATTERY,
		},
		Value: t.OnBattery(),
	})
	// Transitioning
	events = append(events, BinarySensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: SENSOR_ID_TRANSITIONING,
		},
		Value: t.Transitioning,
	})

	return events
}
