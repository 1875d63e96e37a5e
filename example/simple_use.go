package main

import (
	"fmt"
	"time"

	"github.com/pgv-inc/pitaeeg-go/internal/logger"
	"github.com/pgv-inc/pitaeeg-go/sdk/contracts"
	"github.com/pgv-inc/pitaeeg-go/sdk/sensor"
)

func main() {
	log := logger.NewZapLogger()

	client, err := sensor.NewSensorClient("/dev/ttyUSB0",
		contracts.WithLogger(log),
		contracts.WithLogLevel(contracts.InfoLevel),
	)
	if err != nil {
		log.Error("Failed to initialize sensor client", log.Field().Error("error", err))
		return
	}
	defer client.Close()

	devices, err := client.ScanDevices(10 * time.Second)
	if err != nil || len(devices) == 0 {
		log.Error("No sensors found or error scanning", log.Field().Error("error", err))
		return
	}
	fmt.Println("Available sensors:", devices)

	if err = client.Connect(devices[0].Name, 10*time.Second); err != nil {
		log.Error("Failed to connect to sensor", log.Field().Error("error", err))
		return
	}

	if _, err = client.StartMeasurement(); err != nil {
		log.Error("Failed to start measurement", log.Field().Error("error", err))
		return
	}

	samples := make(chan contracts.Sample, 256)
	go func() {
		for s := range samples {
			log.Info("EEG sample",
				log.Field().Uint64("Timestamp", s.Timestamp),
				log.Field().Float64("ChZ", s.ChZ),
				log.Field().Float64("ChR", s.ChR),
				log.Field().Float64("ChL", s.ChL),
				log.Field().Float64("Battery", s.Battery),
			)
		}
	}()

	client.StartCapture(samples)
	defer client.StopMeasurement()

	fmt.Println("Capturing EEG samples... Press Ctrl+C to exit.")
	select {} // Run indefinitely
}
