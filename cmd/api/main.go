package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	adactor "github.com/marcosviniciusi/ragtech2mqtt/internal/adapter/actor"
	"github.com/marcosviniciusi/ragtech2mqtt/internal/config"
	"github.com/marcosviniciusi/ragtech2mqtt/internal/core/actor"
	"github.com/marcosviniciusi/ragtech2mqtt/internal/server"
	"github.com/marcosviniciusi/ragtech2mqtt/internal/util/actorutil"
	"github.com/marcosviniciusi/ragtech2mqtt/pkg/nitroup"

	pactor "github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/eventstream"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func gracefulShutdown(apiServer *http.Server, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Listen for the interrupt signal.
	<-ctx.Done()

	log.Println("shutting down gracefully, press Ctrl+C again to force")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown with error: %v", err)
	}

	log.Println("Server exiting")

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

func main() {

	// load and print config
	cfg, err := initConfig()
	if err != nil {
		slog.Error("config errors", "error", err)
		return
	}
	safePrintConfig(*cfg)

	// zap logger
	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(cfg.LogLevel)

	logger := zap.Must(zapCfg.Build())

	// init actor system
	as := actorutil.NewActorSystemWithZapLogger(logger)
	ctx := as.Root

	defer logger.Sync()

	// init serial actor provider
	serialProv, err := serialActorProvider(cfg, logger)
	if err != nil {
		panic(err)
	}

	props := pactor.PropsFromProducer(func() pactor.Actor {
		return actor.NewMasterOfPuppetsActor(*cfg, serialProv, mqttActorProvider(cfg, logger), logger)
	})
	pid, err := ctx.SpawnNamed(props, "master")
	if err != nil {
		return
	}

	server := server.NewServer(*cfg, ctx, pid)
	// Create a done channel to signal when the shutdown is complete
	done := make(chan bool, 1)

	// Run graceful shutdown in a separate goroutine
	go gracefulShutdown(server, done)

	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		panic(fmt.Sprintf("http server error: %s", err))
	}

	// Wait for the graceful shutdown to complete
	<-done
	log.Println("Graceful shutdown complete.")

	ctx.Stop(pid)
	as.Shutdown()
}

func initConfig() (*config.Config, error) {

	// alias PORT => RAGTECH_PORT
	if port := os.Getenv("PORT"); port != "" {
		os.Setenv("RAGTECH_PORT", port)
	}

	setConfigDefaults()

	viper.SetEnvPrefix("ragtech")
	viper.AutomaticEnv()

	// if defined, try to load config from yaml file
	if cfgFile := os.Getenv("CONFIG_FILE"); cfgFile != "" {
		if _, err := os.Stat(cfgFile); err == nil {
			slog.Info("Using config", "file", cfgFile)
			viper.SetConfigFile(cfgFile)

			err = viper.ReadInConfig()
			if err != nil {
				slog.Error("Error reading config file", "error", err)
			}
		}
	}

	var cfg config.Config

	err := viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	// parse log level
	switch viper.GetString("log_level") {
	case "trace":
		cfg.LogLevel = zap.DebugLevel
	case "debug":
		cfg.LogLevel = zap.DebugLevel
	case "info":
		cfg.LogLevel = zap.InfoLevel
	case "error":
		cfg.LogLevel = zap.ErrorLevel
	case "warn":
		cfg.LogLevel = zap.WarnLevel
	case "fatal":
		cfg.LogLevel = zap.FatalLevel
	default:
		cfg.LogLevel = zap.InfoLevel
	}

	// check and fix base topic
	baseTopic, err := config.CheckMQTTTopic(cfg.MQTT.BaseTopic)
	if err != nil {
		return nil, errors.New("invalid base topic. can only contain letters, numbers and underscores")
	}
	cfg.MQTT.BaseTopic = baseTopic

	// check and fix homeassistant discovery topic
	hadBaseTopic, err := config.CheckMQTTTopic(cfg.MQTT.HADiscoveryTopic)
	if err != nil {
		return nil, errors.New("invalid homeassistant discovery topic. can only contain letters, numbers and underscores")
	}
	cfg.MQTT.HADiscoveryTopic = hadBaseTopic

	// check bounds
	if cfg.Serial.Device == "" {
		return nil, errors.New("config param serial.device is required")
	}
	if cfg.MonitorConfig.PollIntervalMillis < 1000 {
		return nil, errors.New("config param monitor.poll_interval_millis should be >= 1000")
	}
	if _, err := nitroup.OffsetsByRevision(cfg.UPSConfig.OffsetsRevision); err != nil {
		return nil, err
	}
	if _, ok := nitroup.FusionPolicyByName(cfg.UPSConfig.FusionPolicy); !ok {
		return nil, fmt.Errorf("config param ups.fusion_policy %q is unknown", cfg.UPSConfig.FusionPolicy)
	}
	if cfg.NUTConfig.Enable && cfg.NUTConfig.DataFile == "" {
		return nil, errors.New("config param nut.data_file is required when nut.enable is set")
	}

	return &cfg, nil
}

func serialActorProvider(cfg *config.Config, logger *zap.Logger) (actor.SerialActorProvider, error) {

	offsets, err := nitroup.OffsetsByRevision(cfg.UPSConfig.OffsetsRevision)
	if err != nil {
		return nil, err
	}
	policy, ok := nitroup.FusionPolicyByName(cfg.UPSConfig.FusionPolicy)
	if !ok {
		return nil, fmt.Errorf("unknown fusion policy %q", cfg.UPSConfig.FusionPolicy)
	}

	decoder, err := nitroup.NewDecoder(nitroup.NitroUp2000(),
		nitroup.WithOffsets(offsets), nitroup.WithFusionPolicy(policy))
	if err != nil {
		return nil, err
	}

	reader, err := nitroup.CreateSerialTelemetryReader(cfg.Serial.Device, cfg.Serial.BaudRate,
		time.Duration(cfg.Serial.ReadTimeoutMillis)*time.Millisecond, decoder, nil)
	if err != nil {
		return nil, err
	}

	return func() *adactor.SerialActor {
		return adactor.NewSerialActor(reader, logger)
	}, nil
}

func mqttActorProvider(cfg *config.Config, logger *zap.Logger) actor.MQTTActorProvider {
	return func(es *eventstream.EventStream) *adactor.MQTTActor {
		return adactor.NewMQTTActor(cfg, es, logger)
	}
}

func setConfigDefaults() {
	viper.SetDefault("log_level", "warn")
	viper.SetDefault("mqtt.ha_discovery_enable", false)
	viper.SetDefault("mqtt.base_topic", "ragtech")
	viper.SetDefault("mqtt.ha_discovery_topic", "homeassistant")
	viper.SetDefault("serial.baud_rate", 2560)
	viper.SetDefault("serial.read_timeout_millis", 3000)
	viper.SetDefault("monitor.poll_interval_millis", 5000)
	viper.SetDefault("ups.offsets_revision", "rev3")
	viper.SetDefault("ups.fusion_policy", "fast_or")
	viper.SetDefault("nut.enable", false)
	viper.SetDefault("nut.data_file", "/run/ragtech2mqtt/ups.data")
	viper.SetDefault("port", 8080)
}

func safePrintConfig(cfg config.Config) {
	cfg.MQTT.Username = "*redacted*"
	cfg.MQTT.Password = "*redacted*"
	slog.Info("Using", "config", cfg)
}
