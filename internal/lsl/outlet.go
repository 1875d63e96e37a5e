package lsl

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/pgv-inc/pitaeeg-go/internal/dl"
)

// StreamConfig describes the outlet announced on the network.
type StreamConfig struct {
	Name        string  // Stream name, e.g. "PitaEEG".
	Type        string  // Content type, "EEG" by convention.
	Channels    int     // Number of channels per sample.
	Rate        float64 // Nominal sampling rate in Hz.
	SourceID    string  // Stable ID so consumers can resume after restarts.
	LibraryPath string  // Optional path to liblsl or its directory.
	MaxBuffered int     // Outlet buffer in seconds; liblsl default when 0.
}

// Outlet is a push-only LSL stream outlet.
type Outlet struct {
	api      binding
	info     uintptr
	outlet   uintptr
	channels int
	closed   bool
	mu       sync.Mutex
}

// Open loads liblsl and creates an outlet for the given stream.
func Open(cfg StreamConfig) (*Outlet, error) {
	api, err := load(cfg.LibraryPath)
	if err != nil {
		return nil, err
	}
	return open(api, cfg)
}

func open(api binding, cfg StreamConfig) (*Outlet, error) {
	if cfg.Channels <= 0 {
		return nil, fmt.Errorf("%w: channel count %d", ErrOutletCreate, cfg.Channels)
	}
	streamType := cfg.Type
	if streamType == "" {
		streamType = "EEG"
	}

	info := api.CreateStreamInfo(cfg.Name, streamType, int32(cfg.Channels), cfg.Rate, cfDouble64, cfg.SourceID)
	if info == 0 {
		return nil, fmt.Errorf("%w: lsl_create_streaminfo returned NULL", ErrOutletCreate)
	}
	outlet := api.CreateOutlet(info, 0, int32(cfg.MaxBuffered))
	if outlet == 0 {
		api.DestroyStreamInfo(info)
		return nil, fmt.Errorf("%w: lsl_create_outlet returned NULL", ErrOutletCreate)
	}

	return &Outlet{api: api, info: info, outlet: outlet, channels: cfg.Channels}, nil
}

// Push publishes one sample at the given LSL timestamp (seconds on the
// lsl_local_clock time base; 0 lets liblsl stamp it on arrival).
func (o *Outlet) Push(values []float64, timestamp float64) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return ErrOutletClosed
	}
	if len(values) != o.channels {
		return fmt.Errorf("sample has %d values, outlet expects %d", len(values), o.channels)
	}
	if rc := o.api.PushSample(o.outlet, &values[0], timestamp); rc != 0 {
		return fmt.Errorf("lsl_push_sample_dt returned %d", rc)
	}
	return nil
}

// LocalClock returns liblsl's monotonic clock in seconds.
func (o *Outlet) LocalClock() float64 {
	return o.api.LocalClock()
}

// Close destroys the outlet and its stream info. Safe to call repeatedly.
func (o *Outlet) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return nil
	}
	o.api.DestroyOutlet(o.outlet)
	o.api.DestroyStreamInfo(o.info)
	o.closed = true
	return nil
}

// load locates liblsl and registers the needed symbols.
func load(explicitPath string) (binding, error) {
	exeDir := ""
	if exe, err := os.Executable(); err == nil {
		exeDir = filepath.Dir(exe)
	}
	workDir, _ := os.Getwd()

	cand := candidatePaths(explicitPath, exeDir, workDir, runtime.GOOS)

	var lastErr error
	for _, c := range cand {
		// Bare names are handed straight to the system loader.
		if filepath.Base(c) != c {
			if st, err := os.Stat(c); err != nil || st.IsDir() {
				continue
			}
		}
		handle, err := dl.Open(c)
		if err != nil {
			lastErr = err
			continue
		}
		api, err := register(handle)
		if err != nil {
			lastErr = err
			continue
		}
		return api, nil
	}

	if lastErr != nil {
		return nil, fmt.Errorf("%w: tried %v: %v", ErrLibraryNotFound, cand, lastErr)
	}
	return nil, fmt.Errorf("%w: tried %v", ErrLibraryNotFound, cand)
}
