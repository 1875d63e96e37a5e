package bridge

import (
	"context"

	"github.com/pgv-inc/pitaeeg-go/sdk/contracts"
)

// Outlet is the push surface of an LSL stream outlet.
type Outlet interface {
	Push(values []float64, timestamp float64) error
	LocalClock() float64
}

// Forwarder consumes the sensor's sample channel and republishes each
// frame on the LSL outlet, recording it on the side when a Recorder is
// attached. Either sink may be nil.
type Forwarder struct {
	logger     contracts.Logger
	outlet     Outlet
	recorder   *Recorder
	deviceBase int64
}

// NewForwarder wires the sinks. deviceBase is the device time returned by
// StartMeasurement; sample timestamps are mapped onto the LSL clock as an
// offset from it.
func NewForwarder(outlet Outlet, recorder *Recorder, deviceBase int64, logger contracts.Logger) *Forwarder {
	return &Forwarder{
		logger:     logger,
		outlet:     outlet,
		recorder:   recorder,
		deviceBase: deviceBase,
	}
}

// Run forwards samples until the channel closes or the context is
// canceled. It returns the number of samples forwarded.
func (f *Forwarder) Run(ctx context.Context, samples <-chan contracts.Sample) (uint64, error) {
	var lslBase float64
	if f.outlet != nil {
		lslBase = f.outlet.LocalClock()
	}

	var count uint64
	values := make([]float64, 3)
	for {
		select {
		case <-ctx.Done():
			return count, nil
		case s, ok := <-samples:
			if !ok {
				return count, nil
			}

			if f.outlet != nil {
				values[0], values[1], values[2] = s.ChZ, s.ChR, s.ChL
				ts := lslBase + float64(int64(s.Timestamp)-f.deviceBase)/1000.0
				if err := f.outlet.Push(values, ts); err != nil {
					f.logger.Warn("pushing sample to LSL outlet",
						f.logger.Field().Error("error", err))
				}
			}
			if f.recorder != nil {
				if err := f.recorder.Write(s); err != nil {
					return count, err
				}
			}
			count++
		}
	}
}
