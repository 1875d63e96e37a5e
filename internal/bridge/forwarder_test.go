package bridge

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pgv-inc/pitaeeg-go/sdk/contracts"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...contracts.Field)  {}
func (nopLogger) Error(string, ...contracts.Field) {}
func (nopLogger) Debug(string, ...contracts.Field) {}
func (nopLogger) Warn(string, ...contracts.Field)  {}
func (nopLogger) Fatal(string, ...contracts.Field) {}
func (nopLogger) Field() contracts.Field           { return nopField{} }
func (nopLogger) SetLevel(contracts.LogLevel)      {}
func (nopLogger) SetDestination(contracts.LogDestination, ...string) {
}

type nopField struct{}

func (f nopField) Bool(string, bool) contracts.Field       { return f }
func (f nopField) Int(string, int) contracts.Field         { return f }
func (f nopField) Float64(string, float64) contracts.Field { return f }
func (f nopField) String(string, string) contracts.Field   { return f }
func (f nopField) Time(string, time.Time) contracts.Field  { return f }
func (f nopField) Int64(string, int64) contracts.Field     { return f }
func (f nopField) Error(string, error) contracts.Field     { return f }
func (f nopField) Uint64(string, uint64) contracts.Field   { return f }
func (f nopField) Uint8(string, uint8) contracts.Field     { return f }

type fakeOutlet struct {
	clock      float64
	pushed     [][]float64
	timestamps []float64
}

func (f *fakeOutlet) Push(values []float64, timestamp float64) error {
	f.pushed = append(f.pushed, append([]float64(nil), values...))
	f.timestamps = append(f.timestamps, timestamp)
	return nil
}

func (f *fakeOutlet) LocalClock() float64 { return f.clock }

func sampleAt(ts uint64, v float64) contracts.Sample {
	return contracts.Sample{Timestamp: ts, ChZ: v, ChR: v + 1, ChL: v + 2, Battery: 98}
}

func TestForwarderPushesToOutlet(t *testing.T) {
	outlet := &fakeOutlet{clock: 100}
	fwd := NewForwarder(outlet, nil, 5000, nopLogger{})

	samples := make(chan contracts.Sample, 4)
	samples <- sampleAt(5000, 1)
	samples <- sampleAt(5004, 2)
	samples <- sampleAt(5008, 3)
	close(samples)

	count, err := fwd.Run(context.Background(), samples)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if count != 3 {
		t.Fatalf("forwarded %d samples, want 3", count)
	}

	if outlet.pushed[0][0] != 1 || outlet.pushed[0][1] != 2 || outlet.pushed[0][2] != 3 {
		t.Errorf("first pushed sample = %v", outlet.pushed[0])
	}

	// Device-time offsets map onto the LSL clock base.
	wantTS := []float64{100, 100.004, 100.008}
	for i, ts := range outlet.timestamps {
		if diff := ts - wantTS[i]; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("timestamp[%d] = %v, want %v", i, ts, wantTS[i])
		}
	}
}

func TestForwarderStopsOnContextCancel(t *testing.T) {
	outlet := &fakeOutlet{}
	fwd := NewForwarder(outlet, nil, 0, nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	samples := make(chan contracts.Sample)

	done := make(chan struct{})
	var count uint64
	go func() {
		count, _ = fwd.Run(ctx, samples)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}
}

func TestForwarderRecordsCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")

	rec, err := NewRecorder(path, time.UTC)
	if err != nil {
		t.Fatalf("NewRecorder failed: %v", err)
	}

	fwd := NewForwarder(nil, rec, 1700000000000, nopLogger{})
	samples := make(chan contracts.Sample, 2)
	samples <- contracts.Sample{Timestamp: 1700000000000, ChZ: 1.25, ChR: -2.5, ChL: 3.75, Battery: 97.5, Repaired: true}
	samples <- contracts.Sample{Timestamp: 1700000000004, ChZ: 0, ChR: 0, ChL: 0, Battery: 97.5}
	close(samples)

	if _, err := fwd.Run(context.Background(), samples); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading recording: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines: %q", len(lines), lines)
	}
	if lines[0] != "datetime,ChZ,ChR,ChL,bat,isRepair" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "2023-11-14T22:13:20.000+00:00,1.250000,-2.500000,3.750000,97.500,1" {
		t.Errorf("first row = %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "2023-11-14T22:13:20.004") {
		t.Errorf("second row = %q", lines[2])
	}
	if !strings.HasSuffix(lines[2], ",0") {
		t.Errorf("second row repair flag: %q", lines[2])
	}
}

func TestRecordingName(t *testing.T) {
	// 2023-11-14T22:13:20 UTC.
	name := RecordingName(1700000000000, time.UTC)
	if name != "20231114221320.csv" {
		t.Errorf("RecordingName = %q", name)
	}
}

func TestRecorderCreatesParentDirs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a", "b", "out.csv")

	rec, err := NewRecorder(path, time.UTC)
	if err != nil {
		t.Fatalf("NewRecorder failed: %v", err)
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("recording file missing: %v", err)
	}
}
