package sensor

import (
	"errors"
	"fmt"
	"runtime"

	internalsensor "github.com/pgv-inc/pitaeeg-go/internal/sensor"
	"github.com/pgv-inc/pitaeeg-go/sdk/contracts"
)

// ErrUnsupportedOS is returned on platforms the vendor does not ship
// sensor library binaries for.
var ErrUnsupportedOS = errors.New("unsupported operating system")

// clientInitializers maps OS names to corresponding sensor client
// initializers. The vendor ships the same C API on all three platforms,
// so one initializer serves them; the map is the gate.
var clientInitializers = map[string]func(string, *contracts.ClientOptions) (contracts.ClientSensor, error){
	"linux":   internalsensor.NewClient,
	"darwin":  internalsensor.NewClient,
	"windows": internalsensor.NewClient,
}

// NewClient initializes a sensor client based on the current operating
// system, returning ErrUnsupportedOS if the OS is unsupported.
//
// port string: Serial port of the USB receiver.
// opts *contracts.ClientOptions: Configuration options for the sensor client.
//
// Returns:
//   - contracts.ClientSensor: An instance of the sensor client.
//   - error: An error if the operating system is unsupported or if initialization fails.
func NewClient(port string, opts *contracts.ClientOptions) (contracts.ClientSensor, error) {
	if initializer, exists := clientInitializers[runtime.GOOS]; exists {
		return initializer(port, opts)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedOS, runtime.GOOS)
}
