package util

import (
	"github.com/marcosviniciusi/ragtech2mqtt/internal/config"

	"go.uber.org/zap"
)

func LoadTestConfig() config.Config {
	return config.Config{
		LogLevel: zap.DebugLevel,
		Serial: config.SerialConfig{
			Device:            "/dev/null",
			BaudRate:          2560,
			ReadTimeoutMillis: 3000,
		},
		MQTT: config.MQTTConfig{
			Host: "localhost",
			Port: 1883,
		},
		MonitorConfig: config.MonitorConfig{
			PollIntervalMillis: 5000,
		},
		NUTConfig: config.NUTConfig{
			Enable:   false,
			DataFile: "/tmp/ragtech2mqtt-nut-test.txt",
		},
		Port: 8080,
	}
}
