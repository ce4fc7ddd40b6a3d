package config

import (
	"errors"
	"regexp"
	"strings"

	"go.uber.org/zap/zapcore"
)

type Config struct {
	LogLevel zapcore.Level
	Serial   SerialConfig `mapstructure:"serial"`
	MQTT     MQTTConfig   `mapstructure:"mqtt"`

	UPSConfig     UPSConfig     `mapstructure:"ups"`
	MonitorConfig MonitorConfig `mapstructure:"monitor"`
	NUTConfig     NUTConfig     `mapstructure:"nut"`
	Port          uint          `mapstructure:"port"`
	HttpLog       bool          `mapstructure:"http_log"`
}

type SerialConfig struct {
	Device            string
	BaudRate          int    `mapstructure:"baud_rate"`
	ReadTimeoutMillis uint32 `mapstructure:"read_timeout_millis"`
}

type MonitorConfig struct {
	PollIntervalMillis uint32 `mapstructure:"poll_interval_millis"`
}

// UPSConfig selects the decoder hypotheses. The defaults are the only ones
// validated against hardware; the alternatives exist for recalibration runs.
type UPSConfig struct {
	OffsetsRevision string `mapstructure:"offsets_revision"`
	FusionPolicy    string `mapstructure:"fusion_policy"`
}

// NUTConfig controls the upsc-compatible status file.
type NUTConfig struct {
	Enable   bool
	DataFile string `mapstructure:"data_file"`
}

type MQTTConfig struct {
	Host              string
	Port              int
	Username          string
	Password          string
	BaseTopic         string `mapstructure:"base_topic"`
	HADiscoveryEnable bool   `mapstructure:"ha_discovery_enable"`
	HADiscoveryTopic  string `mapstructure:"ha_discovery_topic"`
}

func CheckMQTTTopic(baseTopic string) (string, error) {
	// check and fix base topic
	lowerBaseTopic := strings.ToLower(baseTopic)
	baseTopicRegexp := regexp.MustCompile("^[a-z0-9_]+$")
	matches := baseTopicRegexp.FindAllStringSubmatch(lowerBaseTopic, 1)
	if len(matches) <= 0 {
		return "", errors.New("invalid topic. can only contain letters, numbers and underscores")
	}
	return lowerBaseTopic, nil
}
