package contracts

import "errors"

// Error definitions for library loading, connection and measurement issues.
var (
	// ErrLibraryNotFound is returned when the native sensor library cannot be located or loaded.
	ErrLibraryNotFound = errors.New("native sensor library not found")
	// ErrInit is returned when native initialization of the serial port fails.
	ErrInit = errors.New("sensor initialization failed")
	// ErrScanFailed is returned when the device scan cannot be started.
	ErrScanFailed = errors.New("device scan failed")
	// ErrDeviceNotFound is returned when the requested sensor is not seen within the scan timeout.
	ErrDeviceNotFound = errors.New("device not found")
	// ErrConnectionFailed is returned when connecting to a discovered sensor fails.
	ErrConnectionFailed = errors.New("device connection failed")
	// ErrNotInitialized is returned when an operation is attempted after Close.
	ErrNotInitialized = errors.New("sensor not initialized")
	// ErrNotConnected is returned when measurement is attempted without a connected sensor.
	ErrNotConnected = errors.New("no device connected")
	// ErrMeasureFailed is returned when starting or stopping measurement fails.
	ErrMeasureFailed = errors.New("measurement operation failed")
	// ErrStatusFailed is returned when a status query (battery, version, state, contact resistance) fails.
	ErrStatusFailed = errors.New("status query failed")
)
