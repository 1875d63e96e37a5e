package contracts

import "time"

// Sample is a single 3-channel EEG frame received from the sensor.
// The HARU2 produces one frame every 4 ms (250 Hz).
type Sample struct {
	Timestamp uint64  // Device time of the frame in milliseconds since the Unix epoch.
	ChZ       float64 // Reference channel value in microvolts.
	ChR       float64 // Right channel value in microvolts.
	ChL       float64 // Left channel value in microvolts.
	Battery   float64 // Battery level in percent (0-100).
	Repaired  bool    // True when the frame was reconstructed by the receiver.
}

// Time converts the sample's device timestamp to a time.Time.
func (s Sample) Time() time.Time {
	return time.UnixMilli(int64(s.Timestamp))
}

// SensorState is the raw state and error code pair reported by the sensor.
type SensorState struct {
	State int // Device state (vendor-defined, e.g. 2 = idle).
	Code  int // Device error code, 0 when healthy.
}

// ContactResistance holds per-electrode contact impedance in ohms.
// Values below roughly 10 kOhm indicate good electrode contact.
type ContactResistance struct {
	ChZ float64
	ChR float64
	ChL float64
}

// ClientSensor defines the operations of a wireless EEG sensor client.
type ClientSensor interface {
	// ScanDevices scans for nearby sensors until the timeout elapses or at
	// least one device has been seen.
	ScanDevices(timeout time.Duration) ([]DeviceInfo, error)
	// Connect scans for the named sensor and connects to it.
	Connect(deviceName string, scanTimeout time.Duration) error
	// StartMeasurement begins acquisition and returns the device time in
	// milliseconds since the Unix epoch at which measurement started.
	StartMeasurement() (int64, error)
	// StartCapture starts delivering samples to the given channel. Frames
	// arriving while the channel is full are dropped.
	StartCapture(eventChannel chan Sample)
	// StopMeasurement stops acquisition. Safe to call repeatedly.
	StopMeasurement() error
	// Disconnect stops measurement if active and disconnects the sensor.
	Disconnect() error
	// Close releases the native handle. The client is unusable afterwards.
	Close() error

	IsConnected() bool
	IsMeasuring() bool

	// BatteryRemainingTime reports the estimated remaining battery time in minutes.
	BatteryRemainingTime() (float64, error)
	// Version reports the sensor firmware version.
	Version() (float64, error)
	// State reports the raw device state and error code.
	State() (SensorState, error)
	// ContactResistance reports per-electrode contact impedance.
	ContactResistance() (ContactResistance, error)
}
