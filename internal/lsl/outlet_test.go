package lsl

import (
	"errors"
	"path/filepath"
	"testing"
	"unsafe"
)

// fakeBinding records liblsl calls.
type fakeBinding struct {
	infoHandle   uintptr
	outletHandle uintptr
	pushRC       int32
	pushed       [][]float64
	timestamps   []float64
	destroyed    []uintptr
	clock        float64

	lastName     string
	lastType     string
	lastChannels int32
	lastRate     float64
	lastFormat   int32
	lastSourceID string
}

func (f *fakeBinding) CreateStreamInfo(name, streamType string, channelCount int32, nominalRate float64, channelFormat int32, sourceID string) uintptr {
	f.lastName, f.lastType = name, streamType
	f.lastChannels, f.lastRate = channelCount, nominalRate
	f.lastFormat, f.lastSourceID = channelFormat, sourceID
	return f.infoHandle
}

func (f *fakeBinding) DestroyStreamInfo(info uintptr) { f.destroyed = append(f.destroyed, info) }

func (f *fakeBinding) CreateOutlet(uintptr, int32, int32) uintptr { return f.outletHandle }

func (f *fakeBinding) DestroyOutlet(outlet uintptr) { f.destroyed = append(f.destroyed, outlet) }

func (f *fakeBinding) PushSample(_ uintptr, data *float64, timestamp float64) int32 {
	if f.pushRC != 0 {
		return f.pushRC
	}
	// Rebuild the sample from the C-style pointer for inspection.
	vals := append([]float64(nil), unsafe.Slice(data, int(f.lastChannels))...)
	f.pushed = append(f.pushed, vals)
	f.timestamps = append(f.timestamps, timestamp)
	return 0
}

func (f *fakeBinding) LocalClock() float64 { return f.clock }

func TestOpenCreatesStream(t *testing.T) {
	fake := &fakeBinding{infoHandle: 1, outletHandle: 2}
	o, err := open(fake, StreamConfig{Name: "PitaEEG", Channels: 3, Rate: 250, SourceID: "pitaeeg-HARU2-001"})
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer o.Close()

	if fake.lastName != "PitaEEG" || fake.lastType != "EEG" {
		t.Errorf("stream identity = %q/%q", fake.lastName, fake.lastType)
	}
	if fake.lastChannels != 3 || fake.lastRate != 250 {
		t.Errorf("channels/rate = %d/%v", fake.lastChannels, fake.lastRate)
	}
	if fake.lastFormat != cfDouble64 {
		t.Errorf("channel format = %d, want %d", fake.lastFormat, cfDouble64)
	}
}

func TestOpenStreamInfoFailure(t *testing.T) {
	fake := &fakeBinding{infoHandle: 0}
	if _, err := open(fake, StreamConfig{Name: "x", Channels: 3}); !errors.Is(err, ErrOutletCreate) {
		t.Fatalf("expected ErrOutletCreate, got %v", err)
	}
}

func TestOpenOutletFailureDestroysInfo(t *testing.T) {
	fake := &fakeBinding{infoHandle: 1, outletHandle: 0}
	if _, err := open(fake, StreamConfig{Name: "x", Channels: 3}); !errors.Is(err, ErrOutletCreate) {
		t.Fatalf("expected ErrOutletCreate, got %v", err)
	}
	if len(fake.destroyed) != 1 || fake.destroyed[0] != 1 {
		t.Errorf("stream info not destroyed: %v", fake.destroyed)
	}
}

func TestOpenRejectsZeroChannels(t *testing.T) {
	fake := &fakeBinding{infoHandle: 1, outletHandle: 2}
	if _, err := open(fake, StreamConfig{Name: "x"}); !errors.Is(err, ErrOutletCreate) {
		t.Fatalf("expected ErrOutletCreate, got %v", err)
	}
}

func TestPush(t *testing.T) {
	fake := &fakeBinding{infoHandle: 1, outletHandle: 2}
	o, err := open(fake, StreamConfig{Name: "x", Channels: 3})
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}

	if err := o.Push([]float64{1, 2, 3}, 42.5); err != nil {
		t.Fatalf("Push failed: %v", err)
	}
	if len(fake.pushed) != 1 {
		t.Fatalf("pushed %d samples, want 1", len(fake.pushed))
	}
	if fake.pushed[0][0] != 1 || fake.pushed[0][2] != 3 {
		t.Errorf("pushed values = %v", fake.pushed[0])
	}
	if fake.timestamps[0] != 42.5 {
		t.Errorf("timestamp = %v, want 42.5", fake.timestamps[0])
	}

	if err := o.Push([]float64{1, 2}, 0); err == nil {
		t.Error("expected error for wrong sample width")
	}
}

func TestPushAfterClose(t *testing.T) {
	fake := &fakeBinding{infoHandle: 1, outletHandle: 2}
	o, err := open(fake, StreamConfig{Name: "x", Channels: 3})
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}

	if err := o.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := o.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
	if len(fake.destroyed) != 2 {
		t.Errorf("destroyed handles = %v, want outlet and info once each", fake.destroyed)
	}

	if err := o.Push([]float64{1, 2, 3}, 0); !errors.Is(err, ErrOutletClosed) {
		t.Fatalf("expected ErrOutletClosed, got %v", err)
	}
}

func TestCandidatePathsBareNamesLast(t *testing.T) {
	cand := candidatePaths("", "/exe", "/work", "linux")
	if cand[0] != filepath.Join("/exe", "liblsl.so") {
		t.Errorf("first candidate = %q", cand[0])
	}
	if cand[len(cand)-1] != "liblsl.so.2" || cand[len(cand)-2] != "liblsl.so" {
		t.Errorf("bare names should come last: %v", cand)
	}
}

func TestCandidatePathsExplicitFile(t *testing.T) {
	cand := candidatePaths("/opt/liblsl.so", "/exe", "/work", "linux")
	if len(cand) != 1 || cand[0] != "/opt/liblsl.so" {
		t.Errorf("got %v", cand)
	}
}
