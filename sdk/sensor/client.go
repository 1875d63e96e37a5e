package sensor

import (
	"github.com/pgv-inc/pitaeeg-go/sdk/contracts"
)

// NewSensorClient creates a new sensor client for the given serial port
// with the specified options. It applies default options and initializes
// the client against the native library.
//
// port string: Serial port of the USB receiver (e.g. "COM3" on Windows,
// "/dev/ttyUSB0" on Linux).
// opts ...contracts.Option: A variadic list of option functions to
// customize the client configuration.
//
// Returns:
//   - contracts.ClientSensor: An instance of the sensor client.
//   - error: An error, if any occurred during the creation of the client.
func NewSensorClient(port string, opts ...contracts.Option) (contracts.ClientSensor, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}

	client, err := NewClient(port, &options)
	if err != nil {
		return nil, err
	}

	return client, nil
}
