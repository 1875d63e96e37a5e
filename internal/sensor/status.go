package sensor

import (
	"fmt"

	"github.com/pgv-inc/pitaeeg-go/internal/native"
	"github.com/pgv-inc/pitaeeg-go/sdk/contracts"
)

// BatteryRemainingTime reports the estimated remaining battery time in minutes.
func (c *Client) BatteryRemainingTime() (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return 0, contracts.ErrNotInitialized
	}
	var minutes float64
	if rc := c.api.BatteryRemainingTime(c.handle, &minutes); rc != 0 {
		return 0, fmt.Errorf("%w: getPgvSensorBatteryRemainingTime returned %d", contracts.ErrStatusFailed, rc)
	}
	return minutes, nil
}

// Version reports the sensor firmware version.
func (c *Client) Version() (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return 0, contracts.ErrNotInitialized
	}
	var version float64
	if rc := c.api.Version(c.handle, &version); rc != 0 {
		return 0, fmt.Errorf("%w: getPgvSensorVersion returned %d", contracts.ErrStatusFailed, rc)
	}
	return version, nil
}

// State reports the raw device state and error code.
func (c *Client) State() (contracts.SensorState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return contracts.SensorState{}, contracts.ErrNotInitialized
	}
	var state, code int32
	if rc := c.api.SensorState(c.handle, &state, &code); rc != 0 {
		return contracts.SensorState{}, fmt.Errorf("%w: getSensorState returned %d", contracts.ErrStatusFailed, rc)
	}
	return contracts.SensorState{State: int(state), Code: int(code)}, nil
}

// ContactResistance reports per-electrode contact impedance in ohms.
func (c *Client) ContactResistance() (contracts.ContactResistance, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return contracts.ContactResistance{}, contracts.ErrNotInitialized
	}
	var out native.ContactResistance
	if rc := c.api.ContactResistance(c.handle, &out); rc != 0 {
		return contracts.ContactResistance{}, fmt.Errorf("%w: getContactResistance returned %d", contracts.ErrStatusFailed, rc)
	}
	return contracts.ContactResistance{
		ChZ: float64(out.ChZ),
		ChR: float64(out.ChR),
		ChL: float64(out.ChL),
	}, nil
}
