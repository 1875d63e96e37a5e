// Package native binds the vendor's closed-source sensor library at
// runtime and mirrors its ABI structures.
package native

import (
	"bytes"
	"encoding/hex"
)

// Limits defined by the vendor API.
const (
	MaxCh             = 8  // Maximum number of EEG channels the API can address.
	Haru2ChNum        = 3  // Channels carrying data on the HARU2 model.
	MaxDeviceNameLen  = 24 // Device name field size in bytes, NUL-terminated.
	MaxDeviceAddrLen  = 8  // Device address field size in bytes.
	SensorParamUnused = 32 // Reserved tail of SENSOR_PARAM, must stay zero.
)

// TimesetParam mirrors TIMESET_PARAM: timeouts in milliseconds handed to Init.
type TimesetParam struct {
	ComTimeout  int32
	ScanTimeout int32
}

// DeviceInfo mirrors DEVICE_INFO as filled in by getScannedDevice.
type DeviceInfo struct {
	DeviceID   [MaxDeviceAddrLen]byte
	DeviceName [MaxDeviceNameLen]byte
}

// Name returns the NUL-trimmed device name.
func (d *DeviceInfo) Name() string {
	name := d.DeviceName[:]
	if i := bytes.IndexByte(name, 0); i >= 0 {
		name = name[:i]
	}
	return string(name)
}

// IDHex returns the device address as a lowercase hex string.
func (d *DeviceInfo) IDHex() string {
	return hex.EncodeToString(d.DeviceID[:])
}

// ReceiveData2 mirrors RECEIVE_DATA2: one HARU2 frame with three channel
// values in microvolts, the battery level in percent, and the repair flag.
type ReceiveData2 struct {
	Data     [Haru2ChNum]float64
	BatLevel float64
	IsRepair uint8
	// 7 bytes of trailing padding keep the Go layout at the C sizeof of 40.
}

// SensorParam mirrors SENSOR_PARAM: per-channel enable flags plus a
// reserved tail.
type SensorParam struct {
	UseCh   [MaxCh]uint8
	Reserve [SensorParamUnused]uint8
}

// EnableChannels sets the channel mask. A nil slice enables every channel.
func (p *SensorParam) EnableChannels(channels []int) {
	if channels == nil {
		for i := range p.UseCh {
			p.UseCh[i] = 1
		}
		return
	}
	for i := range p.UseCh {
		p.UseCh[i] = 0
	}
	for _, ch := range channels {
		if ch >= 0 && ch < MaxCh {
			p.UseCh[ch] = 1
		}
	}
}

// ContactResistance mirrors the native per-electrode impedance struct, in ohms.
type ContactResistance struct {
	ChZ float32
	ChR float32
	ChL float32
}
