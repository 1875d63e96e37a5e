// Package sensor implements the wireless EEG sensor client on top of the
// vendor's native acquisition library.
package sensor

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pgv-inc/pitaeeg-go/internal/native"
	"github.com/pgv-inc/pitaeeg-go/sdk/contracts"
)

const (
	// scanPollInterval is how often the scan result queue is drained.
	scanPollInterval = 100 * time.Millisecond
	// receivePollIdle is the sleep between polls when no frames are pending.
	receivePollIdle = time.Millisecond
	// sampleIntervalMs is the HARU2 frame interval (250 Hz).
	sampleIntervalMs = 4
)

// Client manages one sensor through the native library handle.
// All lifecycle transitions are serialized by the mutex; the capture
// goroutine only touches the handle and the atomically stored channel.
type Client struct {
	logger       contracts.Logger
	api          native.API
	handle       int32
	initialized  bool
	connected    *native.DeviceInfo
	measuring    bool
	deviceTime   int64
	channels     []int
	eventChannel atomic.Value
	done         chan struct{}
	wg           sync.WaitGroup
	mu           sync.Mutex
}

// NewClient loads the native library, initializes the serial port and
// returns a ready client.
func NewClient(port string, options *contracts.ClientOptions) (contracts.ClientSensor, error) {
	api, err := native.Load(options.LibraryPath)
	if err != nil {
		return nil, err
	}
	return newClient(api, port, options)
}

func newClient(api native.API, port string, options *contracts.ClientOptions) (*Client, error) {
	timeouts := native.TimesetParam{
		ComTimeout:  int32(options.ComTimeout.Milliseconds()),
		ScanTimeout: int32(options.ScanTimeout.Milliseconds()),
	}
	handle := api.Init(port, &timeouts)
	if handle < 0 {
		return nil, fmt.Errorf("%w: Init returned %d for port %q", contracts.ErrInit, handle, port)
	}

	options.Logger.Info("sensor interface initialized",
		options.Logger.Field().String("port", port),
		options.Logger.Field().Int("handle", int(handle)))

	return &Client{
		logger:      options.Logger,
		api:         api,
		handle:      handle,
		initialized: true,
		channels:    options.Channels,
	}, nil
}

// ScanDevices scans until the timeout elapses or at least one sensor has
// been seen, and returns the de-duplicated results.
func (c *Client) ScanDevices(timeout time.Duration) ([]contracts.DeviceInfo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return nil, contracts.ErrNotInitialized
	}
	devices, _, err := c.scan(timeout, "")
	return devices, err
}

// scan drives one startScan/stopScan cycle. With an empty target it
// collects devices until the first non-empty batch; with a target it runs
// until that device shows up or the timeout expires. Callers hold c.mu.
func (c *Client) scan(timeout time.Duration, target string) ([]contracts.DeviceInfo, *native.DeviceInfo, error) {
	if rc := c.api.StartScan(c.handle); rc != 0 {
		return nil, nil, fmt.Errorf("%w: startScan returned %d", contracts.ErrScanFailed, rc)
	}
	defer c.api.StopScan(c.handle)

	var devices []contracts.DeviceInfo
	seen := make(map[string]bool)
	deadline := time.Now().Add(timeout)
	for {
		n := c.api.GetScannedNum(c.handle)
		for i := int32(0); i < n; i++ {
			info := new(native.DeviceInfo)
			if c.api.GetScannedDevice(c.handle, info) != 0 {
				continue
			}
			if target != "" && info.Name() == target {
				return devices, info, nil
			}
			id := info.IDHex()
			if seen[id] {
				continue
			}
			seen[id] = true
			devices = append(devices, contracts.DeviceInfo{ID: id, Name: info.Name()})
		}
		if target == "" && len(devices) > 0 {
			return devices, nil, nil
		}
		if !time.Now().Before(deadline) {
			break
		}
		time.Sleep(scanPollInterval)
	}

	if target != "" {
		return devices, nil, fmt.Errorf("%w: %q", contracts.ErrDeviceNotFound, target)
	}
	return devices, nil, nil
}

// Connect scans for the named sensor and connects to it.
func (c *Client) Connect(deviceName string, scanTimeout time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return contracts.ErrNotInitialized
	}

	_, targetDevice, err := c.scan(scanTimeout, deviceName)
	if err != nil {
		return err
	}

	if rc := c.api.ConnectDevice(c.handle, targetDevice); rc != 0 {
		return fmt.Errorf("%w: connect_device returned %d for %q", contracts.ErrConnectionFailed, rc, deviceName)
	}
	c.connected = targetDevice

	c.logger.Info("sensor connected",
		c.logger.Field().String("device", deviceName),
		c.logger.Field().String("id", targetDevice.IDHex()))
	return nil
}

// StartMeasurement begins acquisition on the configured channels and
// returns the device time (ms since the Unix epoch) at which it started.
func (c *Client) StartMeasurement() (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return 0, contracts.ErrNotInitialized
	}
	if c.connected == nil {
		return 0, contracts.ErrNotConnected
	}

	var param native.SensorParam
	param.EnableChannels(c.channels)

	// The API takes an unused double out-param alongside the device time.
	var reserved float64
	var deviceTime int64
	if rc := c.api.StartMeasure(c.handle, &param, &reserved, &deviceTime); rc != 0 {
		return 0, fmt.Errorf("%w: startMeasure returned %d", contracts.ErrMeasureFailed, rc)
	}

	c.measuring = true
	c.deviceTime = deviceTime
	c.done = make(chan struct{})

	c.logger.Info("measurement started",
		c.logger.Field().Int64("deviceTime", deviceTime))
	return deviceTime, nil
}

// StartCapture begins delivering samples to the given channel. Capture
// requires an active measurement; frames arriving while the channel is
// full are dropped with a warning.
func (c *Client) StartCapture(eventChannel chan contracts.Sample) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if eventChannel == nil {
		c.logger.Error("StartCapture called with nil eventChannel")
		return
	}
	if !c.measuring {
		c.logger.Error("cannot start capture: measurement not started")
		return
	}
	if ch, ok := c.eventChannel.Load().(chan contracts.Sample); ok && ch != nil {
		c.logger.Warn("capture already started")
		return
	}

	c.eventChannel.Store(eventChannel)
	c.wg.Add(1)
	go c.receiveLoop(c.done, c.deviceTime)

	c.logger.Info("sample capture started")
}

// receiveLoop polls the native receive queue and forwards frames. Each
// frame is stamped at the device-time base plus the 4 ms frame interval,
// which is how the receiver's clock domain is carried through.
func (c *Client) receiveLoop(done chan struct{}, base int64) {
	defer c.wg.Done()

	next := uint64(base)
	var recv native.ReceiveData2
	for {
		select {
		case <-done:
			return
		default:
		}

		n := c.api.GetReceiveNum(c.handle)
		if n <= 0 {
			time.Sleep(receivePollIdle)
			continue
		}
		for i := int32(0); i < n; i++ {
			if c.api.GetReceiveData2(c.handle, &recv) < 0 {
				continue
			}
			sample := contracts.Sample{
				Timestamp: next,
				ChZ:       recv.Data[0],
				ChR:       recv.Data[1],
				ChL:       recv.Data[2],
				Battery:   recv.BatLevel,
				Repaired:  recv.IsRepair != 0,
			}
			next += sampleIntervalMs

			ch, _ := c.eventChannel.Load().(chan contracts.Sample)
			if ch == nil {
				continue
			}
			select {
			case ch <- sample:
			default:
				c.logger.Warn("sample channel full; frame dropped")
			}
		}
	}
}

// StopMeasurement stops acquisition and waits for the capture goroutine
// to finish. Safe to call repeatedly.
func (c *Client) StopMeasurement() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopMeasurementLocked()
}

func (c *Client) stopMeasurementLocked() error {
	if !c.initialized || !c.measuring {
		return nil
	}

	rc := c.api.StopMeasure(c.handle)
	c.measuring = false
	if c.done != nil {
		close(c.done)
		c.done = nil
	}
	c.wg.Wait()
	c.eventChannel.Store((chan contracts.Sample)(nil))

	if rc != 0 {
		return fmt.Errorf("%w: stopMeasure returned %d", contracts.ErrMeasureFailed, rc)
	}
	c.logger.Info("measurement stopped")
	return nil
}

// Disconnect stops measurement if active and disconnects the sensor.
// Safe to call repeatedly.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disconnectLocked()
}

func (c *Client) disconnectLocked() error {
	if !c.initialized || c.connected == nil {
		return nil
	}

	if err := c.stopMeasurementLocked(); err != nil {
		c.logger.Warn("stopping measurement during disconnect",
			c.logger.Field().Error("error", err))
	}

	rc := c.api.DisconnectDevice(c.handle)
	c.connected = nil
	if rc != 0 {
		return fmt.Errorf("%w: disconnect_device returned %d", contracts.ErrConnectionFailed, rc)
	}
	c.logger.Info("sensor disconnected")
	return nil
}

// Close disconnects and releases the native handle. The client is
// unusable afterwards.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return nil
	}
	if err := c.disconnectLocked(); err != nil {
		c.logger.Warn("disconnect during close", c.logger.Field().Error("error", err))
	}

	if rc := c.api.Term(c.handle); rc != 0 {
		c.logger.Warn("Term returned non-zero", c.logger.Field().Int("code", int(rc)))
	}
	c.initialized = false
	c.logger.Info("sensor interface closed")
	return nil
}

// IsConnected reports whether a sensor is currently connected.
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected != nil
}

// IsMeasuring reports whether measurement is active.
func (c *Client) IsMeasuring() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.measuring
}
