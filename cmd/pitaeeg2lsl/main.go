// Command pitaeeg2lsl connects to a PitaEEG wireless sensor and forwards
// its samples to a LabStreamingLayer outlet, optionally recording them to
// CSV on the side.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/pgv-inc/pitaeeg-go/internal/bridge"
	"github.com/pgv-inc/pitaeeg-go/internal/config"
	"github.com/pgv-inc/pitaeeg-go/internal/logger"
	"github.com/pgv-inc/pitaeeg-go/internal/lsl"
	"github.com/pgv-inc/pitaeeg-go/sdk/contracts"
	"github.com/pgv-inc/pitaeeg-go/sdk/sensor"
)

const sampleBuffer = 1024 // a few seconds of headroom at 250 Hz

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	scanOnly := flag.Bool("scan", false, "scan for sensors, print them and exit")
	flag.Parse()

	if err := run(*configPath, *scanOnly); err != nil {
		fmt.Fprintln(os.Stderr, "pitaeeg2lsl:", err)
		os.Exit(1)
	}
}

func run(configPath string, scanOnly bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if !scanOnly && cfg.Sensor == "" {
		return fmt.Errorf("sensor name is required (config key \"sensor\" or PITAEEG_SENSOR)")
	}

	log := logger.NewZapLogger()
	level, _ := cfg.LogLevel()

	opts := []contracts.Option{
		contracts.WithLogger(log),
		contracts.WithLogLevel(level),
		contracts.WithLibraryPath(cfg.Library.Sensor),
		contracts.WithComTimeout(cfg.ComTimeout()),
		contracts.WithScanTimeout(cfg.ScanTimeout()),
	}
	if len(cfg.Channels) > 0 {
		opts = append(opts, contracts.WithChannels(cfg.Channels...))
	}
	if cfg.Log.File != "" {
		log.SetDestination(contracts.FileLog, cfg.Log.File)
	}

	client, err := sensor.NewSensorClient(cfg.Port, opts...)
	if err != nil {
		return err
	}
	defer client.Close()

	if scanOnly {
		devices, err := client.ScanDevices(cfg.ConnectTimeout())
		if err != nil {
			return err
		}
		if len(devices) == 0 {
			fmt.Println("no sensors found")
			return nil
		}
		for _, d := range devices {
			fmt.Printf("%s\t%s\n", d.Name, d.ID)
		}
		return nil
	}

	if err := client.Connect(cfg.Sensor, cfg.ConnectTimeout()); err != nil {
		return err
	}
	defer client.Disconnect()

	deviceTime, err := client.StartMeasurement()
	if err != nil {
		return err
	}
	defer client.StopMeasurement()

	loc, _ := cfg.Location()

	var outlet *lsl.Outlet
	if cfg.LSL.Enabled {
		sourceID := cfg.LSL.SourceID
		if sourceID == "" {
			sourceID = "pitaeeg-" + cfg.Sensor
		}
		outlet, err = lsl.Open(lsl.StreamConfig{
			Name:        cfg.LSL.Name,
			Type:        cfg.LSL.Type,
			Channels:    3,
			Rate:        250,
			SourceID:    sourceID,
			LibraryPath: cfg.Library.LSL,
			MaxBuffered: cfg.LSL.MaxBuffered,
		})
		if err != nil {
			return err
		}
		defer outlet.Close()
		log.Info("LSL outlet opened",
			log.Field().String("stream", cfg.LSL.Name),
			log.Field().String("sourceId", sourceID))
	}

	var recorder *bridge.Recorder
	if cfg.CSV.Enabled {
		name := cfg.CSV.File
		if name == "" {
			name = bridge.RecordingName(deviceTime, loc)
		}
		recorder, err = bridge.NewRecorder(filepath.Join(cfg.CSV.Dir, name), loc)
		if err != nil {
			return err
		}
		defer recorder.Close()
		log.Info("recording to CSV", log.Field().String("file", name))
	}

	samples := make(chan contracts.Sample, sampleBuffer)
	client.StartCapture(samples)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// outlet is *lsl.Outlet; hand the forwarder a nil interface when disabled.
	var sink bridge.Outlet
	if outlet != nil {
		sink = outlet
	}
	forwarder := bridge.NewForwarder(sink, recorder, deviceTime, log)

	log.Info("forwarding samples; press Ctrl+C to stop")
	count, err := forwarder.Run(ctx, samples)
	log.Info("forwarding stopped", log.Field().Uint64("samples", count))
	return err
}
