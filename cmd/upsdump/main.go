package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/marcosviniciusi/ragtech2mqtt/pkg/nitroup"

	log "github.com/sirupsen/logrus"
)

// upsdump polls the UPS in a loop and prints both the raw frame and the
// decoded values. Useful for mapping offsets on firmware revisions the
// decoder does not know yet.
func main() {

	device := flag.String("device", "/dev/ttyACM0", "serial device")
	baudRate := flag.Int("baud", 2560, "baud rate")
	interval := flag.Duration("interval", 5*time.Second, "poll interval")
	offsetsRev := flag.String("offsets", "rev3", "field offsets revision (rev2, rev3, rev3+flags)")
	raw := flag.Bool("raw", false, "print raw frames only, skip decoding")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	logger := log.StandardLogger()
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}

	offsets, err := nitroup.OffsetsByRevision(*offsetsRev)
	if err != nil {
		logger.Fatal(err)
	}
	decoder, err := nitroup.NewDecoder(nitroup.NitroUp2000(), nitroup.WithOffsets(offsets))
	if err != nil {
		logger.Fatal(err)
	}

	reader, err := nitroup.CreateSerialTelemetryReader(*device, *baudRate, 3*time.Second, decoder, logger)
	if err != nil {
		logger.Fatal(err)
	}
	if err := reader.Open(); err != nil {
		logger.Fatal(err)
	}
	defer reader.Close()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	info, err := reader.GetDeviceInfo()
	if err != nil {
		logger.Fatal(err)
	}
	fmt.Printf("# %s %s fw %s, model id %d, %d cells\n",
		info.Manufacturer, info.Model, info.FirmwareVersion, info.ModelID, info.BatteryCells)

	capacity, err := reader.GetBatteryCapacity()
	if err != nil {
		logger.Warn(err)
	} else {
		fmt.Printf("# battery capacity %d Ah\n", capacity)
	}

	for {
		dumpOnce(reader, decoder, *raw, logger)

		select {
		case <-stop:
			fmt.Println("# bye")
			return
		case <-time.After(*interval):
		}
	}
}

func dumpOnce(reader *nitroup.SerialTelemetryReader, decoder *nitroup.Decoder, raw bool, logger *log.Logger) {
	frame, err := reader.ReadRegister(nitroup.RegisterTelemetry, nitroup.TelemetryRangeLength)
	if err != nil {
		logger.Error(err)
		return
	}
	fmt.Printf("%s % x\n", time.Now().Format(time.TimeOnly), frame)
	if raw {
		return
	}

	t, err := decoder.Decode(frame)
	if err != nil {
		logger.Error(err)
		return
	}
	fmt.Printf("  status=%s charge=%d%% battV=%.2fV battA=%.1fA(%s raw=%d) runtime=%dmin\n",
		t.Status.String(), t.BatteryCharge, t.BatteryVoltage,
		t.BatteryCurrent, t.Diagnostics.CurrentSource, t.Diagnostics.BatteryCurrentRaw, t.RuntimeMinutes)
	fmt.Printf("  in=%dV(alt %dV) out=%dV %.2fA %.1fVA/%.1fW freq=%.2fHz load=%d%% temp=%dC netq=0x%02X\n",
		t.InputVoltage, t.InputVoltageAlt, t.OutputVoltage, t.OutputCurrent,
		t.ApparentPower, t.RealPower, t.Frequency, t.Load, t.Temperature,
		t.Diagnostics.NetworkQuality)
}
