package contracts

import "time"

// Default timeout values passed to the native library on initialization.
const (
	DefaultComTimeout  = 2000 * time.Millisecond
	DefaultScanTimeout = 5000 * time.Millisecond
)

// ClientOptions defines the configuration options for the sensor client.
type ClientOptions struct {
	Logger      Logger        // Logger for logging events and errors.
	LogLevel    LogLevel      // Level of logging to use.
	LogFilePath string        // File path for logging if file logging is enabled.
	LibraryPath string        // Optional path to the native library file or its directory.
	ComTimeout  time.Duration // Serial communication timeout.
	ScanTimeout time.Duration // Device scan timeout used by the native library.
	Channels    []int         // Channel indices (0-7) to enable; nil enables all.
}

// Option is a function that modifies ClientOptions.
type Option func(*ClientOptions)

// WithLogger sets the logger for the sensor client.
func WithLogger(l Logger) Option {
	return func(opts *ClientOptions) {
		opts.Logger = l
	}
}

// WithLogLevel sets the logging level for the sensor client.
func WithLogLevel(level LogLevel) Option {
	return func(opts *ClientOptions) {
		opts.LogLevel = level
	}
}

// WithLibraryPath points the client at the native library file, or at a
// directory that contains it.
func WithLibraryPath(path string) Option {
	return func(opts *ClientOptions) {
		opts.LibraryPath = path
	}
}

// WithComTimeout sets the serial communication timeout.
func WithComTimeout(d time.Duration) Option {
	return func(opts *ClientOptions) {
		opts.ComTimeout = d
	}
}

// WithScanTimeout sets the native scan timeout.
func WithScanTimeout(d time.Duration) Option {
	return func(opts *ClientOptions) {
		opts.ScanTimeout = d
	}
}

// WithChannels selects which EEG channels to enable during measurement.
func WithChannels(channels ...int) Option {
	return func(opts *ClientOptions) {
		opts.Channels = channels
	}
}
