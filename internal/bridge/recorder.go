// Package bridge forwards acquired samples to an LSL outlet and,
// optionally, a CSV recording.
package bridge

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pgv-inc/pitaeeg-go/sdk/contracts"
)

// isoMillis renders timestamps like 2024-09-19T10:04:14.643+09:00,
// matching the recordings produced by the vendor's sample tooling.
const isoMillis = "2006-01-02T15:04:05.000-07:00"

// Recorder appends samples to a CSV file with the columns
// datetime,ChZ,ChR,ChL,bat,isRepair.
type Recorder struct {
	file *os.File
	w    *csv.Writer
	loc  *time.Location
}

// RecordingName returns the default file name for a recording that
// started at the given device time: YYYYMMDDhhmmss.csv.
func RecordingName(deviceTime int64, loc *time.Location) string {
	return time.UnixMilli(deviceTime).In(loc).Format("20060102150405") + ".csv"
}

// NewRecorder creates the recording file (and any missing parent
// directories) and writes the header row.
func NewRecorder(path string, loc *time.Location) (*Recorder, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating recording directory: %w", err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating recording file: %w", err)
	}

	w := csv.NewWriter(file)
	if err := w.Write([]string{"datetime", "ChZ", "ChR", "ChL", "bat", "isRepair"}); err != nil {
		file.Close()
		return nil, err
	}
	return &Recorder{file: file, w: w, loc: loc}, nil
}

// Write appends one sample row.
func (r *Recorder) Write(s contracts.Sample) error {
	repair := "0"
	if s.Repaired {
		repair = "1"
	}
	return r.w.Write([]string{
		s.Time().In(r.loc).Format(isoMillis),
		strconv.FormatFloat(s.ChZ, 'f', 6, 64),
		strconv.FormatFloat(s.ChR, 'f', 6, 64),
		strconv.FormatFloat(s.ChL, 'f', 6, 64),
		strconv.FormatFloat(s.Battery, 'f', 3, 64),
		repair,
	})
}

// Close flushes buffered rows and closes the file.
func (r *Recorder) Close() error {
	r.w.Flush()
	if err := r.w.Error(); err != nil {
		r.file.Close()
		return err
	}
	return r.file.Close()
}
