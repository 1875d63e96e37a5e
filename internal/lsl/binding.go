// Package lsl binds the LabStreamingLayer library (liblsl) well enough to
// publish a multichannel outlet.
package lsl

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ebitengine/purego"
)

// cfDouble64 is liblsl's channel format code for 64-bit floats.
const cfDouble64 = 2

// Error definitions for library loading and outlet handling issues.
var (
	ErrLibraryNotFound = errors.New("liblsl not found")
	ErrOutletCreate    = errors.New("creating LSL outlet failed")
	ErrOutletClosed    = errors.New("LSL outlet closed")
)

// binding is the subset of the liblsl C API the bridge needs. Tests
// substitute a fake.
type binding interface {
	CreateStreamInfo(name, streamType string, channelCount int32, nominalRate float64, channelFormat int32, sourceID string) uintptr
	DestroyStreamInfo(info uintptr)
	CreateOutlet(info uintptr, chunkSize, maxBuffered int32) uintptr
	DestroyOutlet(outlet uintptr)
	PushSample(outlet uintptr, data *float64, timestamp float64) int32
	LocalClock() float64
}

type library struct {
	createStreamInfo  func(name, streamType string, channelCount int32, nominalRate float64, channelFormat int32, sourceID string) uintptr
	destroyStreamInfo func(info uintptr)
	createOutlet      func(info uintptr, chunkSize, maxBuffered int32) uintptr
	destroyOutlet     func(outlet uintptr)
	pushSample        func(outlet uintptr, data *float64, timestamp float64) int32
	localClock        func() float64
}

func libraryNames(goos string) []string {
	switch goos {
	case "windows":
		return []string{"lsl.dll", "liblsl.dll"}
	case "darwin":
		return []string{"liblsl.dylib", "liblsl.2.dylib"}
	default:
		return []string{"liblsl.so", "liblsl.so.2"}
	}
}

// candidatePaths mirrors the sensor library search: explicit file or
// directory first, then the executable directory and working directory.
// Bare names come last so the system loader's default search applies.
func candidatePaths(explicit, exeDir, workDir, goos string) []string {
	names := libraryNames(goos)

	var cand []string
	if explicit != "" {
		if st, err := os.Stat(explicit); err == nil && st.IsDir() {
			for _, n := range names {
				cand = append(cand, filepath.Join(explicit, n))
			}
			return cand
		}
		return []string{explicit}
	}

	for _, n := range names {
		cand = append(cand, filepath.Join(exeDir, n))
	}
	for _, n := range names {
		cand = append(cand, filepath.Join(workDir, n))
	}
	cand = append(cand, names...)
	return cand
}

func register(handle uintptr) (b binding, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("binding liblsl symbols: %v", r)
		}
	}()

	l := &library{}
	purego.RegisterLibFunc(&l.createStreamInfo, handle, "lsl_create_streaminfo")
	purego.RegisterLibFunc(&l.destroyStreamInfo, handle, "lsl_destroy_streaminfo")
	purego.RegisterLibFunc(&l.createOutlet, handle, "lsl_create_outlet")
	purego.RegisterLibFunc(&l.destroyOutlet, handle, "lsl_destroy_outlet")
	purego.RegisterLibFunc(&l.pushSample, handle, "lsl_push_sample_dt")
	purego.RegisterLibFunc(&l.localClock, handle, "lsl_local_clock")
	return l, nil
}

func (l *library) CreateStreamInfo(name, streamType string, channelCount int32, nominalRate float64, channelFormat int32, sourceID string) uintptr {
	return l.createStreamInfo(name, streamType, channelCount, nominalRate, channelFormat, sourceID)
}
func (l *library) DestroyStreamInfo(info uintptr) { l.destroyStreamInfo(info) }
func (l *library) CreateOutlet(info uintptr, chunkSize, maxBuffered int32) uintptr {
	return l.createOutlet(info, chunkSize, maxBuffered)
}
func (l *library) DestroyOutlet(outlet uintptr) { l.destroyOutlet(outlet) }
func (l *library) PushSample(outlet uintptr, data *float64, timestamp float64) int32 {
	return l.pushSample(outlet, data, timestamp)
}
func (l *library) LocalClock() float64 { return l.localClock() }
