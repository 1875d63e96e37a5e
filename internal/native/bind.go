package native

import (
	"fmt"

	"github.com/ebitengine/purego"
)

// library is the production API implementation backed by the exported
// symbols of the loaded shared library.
type library struct {
	init                 func(port string, timeouts *TimesetParam) int32
	term                 func(handle int32) int32
	startScan            func(handle int32) int32
	stopScan             func(handle int32) int32
	getScannedNum        func(handle int32) int32
	getScannedDevice     func(handle int32, info *DeviceInfo) int32
	connectDevice        func(handle int32, info *DeviceInfo) int32
	disconnectDevice     func(handle int32) int32
	startMeasure         func(handle int32, param *SensorParam, reserved *float64, deviceTime *int64) int32
	startMeasure2        func(handle int32, deviceTime *int64) int32
	stopMeasure          func(handle int32) int32
	waitReceivedData     func(handle int32) int32
	getReceiveNum        func(handle int32) int32
	getReceiveData2      func(handle int32, out *ReceiveData2) int32
	batteryRemainingTime func(handle int32, minutes *float64) int32
	version              func(handle int32, version *float64) int32
	sensorState          func(handle int32, state *int32, code *int32) int32
	contactResistance    func(handle int32, out *ContactResistance) int32
}

// register binds every vendor symbol to the loaded library. purego panics
// on a missing or unsupported symbol; that is converted to an error so a
// truncated or mismatched library build surfaces as a load failure.
func register(handle uintptr) (api API, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("binding sensor library symbols: %v", r)
		}
	}()

	l := &library{}
	purego.RegisterLibFunc(&l.init, handle, "Init")
	purego.RegisterLibFunc(&l.term, handle, "Term")
	purego.RegisterLibFunc(&l.startScan, handle, "startScan")
	purego.RegisterLibFunc(&l.stopScan, handle, "stopScan")
	purego.RegisterLibFunc(&l.getScannedNum, handle, "getScannedNum")
	purego.RegisterLibFunc(&l.getScannedDevice, handle, "getScannedDevice")
	purego.RegisterLibFunc(&l.connectDevice, handle, "connect_device")
	purego.RegisterLibFunc(&l.disconnectDevice, handle, "disconnect_device")
	purego.RegisterLibFunc(&l.startMeasure, handle, "startMeasure")
	purego.RegisterLibFunc(&l.startMeasure2, handle, "startMeasure2")
	purego.RegisterLibFunc(&l.stopMeasure, handle, "stopMeasure")
	purego.RegisterLibFunc(&l.waitReceivedData, handle, "waitReceivedData")
	purego.RegisterLibFunc(&l.getReceiveNum, handle, "getReceiveNum")
	purego.RegisterLibFunc(&l.getReceiveData2, handle, "getReceiveData2")
	purego.RegisterLibFunc(&l.batteryRemainingTime, handle, "getPgvSensorBatteryRemainingTime")
	purego.RegisterLibFunc(&l.version, handle, "getPgvSensorVersion")
	purego.RegisterLibFunc(&l.sensorState, handle, "getSensorState")
	purego.RegisterLibFunc(&l.contactResistance, handle, "getContactResistance")
	return l, nil
}

func (l *library) Init(port string, timeouts *TimesetParam) int32 { return l.init(port, timeouts) }
func (l *library) Term(handle int32) int32                        { return l.term(handle) }

func (l *library) StartScan(handle int32) int32     { return l.startScan(handle) }
func (l *library) StopScan(handle int32) int32      { return l.stopScan(handle) }
func (l *library) GetScannedNum(handle int32) int32 { return l.getScannedNum(handle) }
func (l *library) GetScannedDevice(handle int32, info *DeviceInfo) int32 {
	return l.getScannedDevice(handle, info)
}

func (l *library) ConnectDevice(handle int32, info *DeviceInfo) int32 {
	return l.connectDevice(handle, info)
}
func (l *library) DisconnectDevice(handle int32) int32 { return l.disconnectDevice(handle) }

func (l *library) StartMeasure(handle int32, param *SensorParam, reserved *float64, deviceTime *int64) int32 {
	return l.startMeasure(handle, param, reserved, deviceTime)
}
func (l *library) StartMeasure2(handle int32, deviceTime *int64) int32 {
	return l.startMeasure2(handle, deviceTime)
}
func (l *library) StopMeasure(handle int32) int32 { return l.stopMeasure(handle) }

func (l *library) WaitReceivedData(handle int32) int32 { return l.waitReceivedData(handle) }
func (l *library) GetReceiveNum(handle int32) int32    { return l.getReceiveNum(handle) }
func (l *library) GetReceiveData2(handle int32, out *ReceiveData2) int32 {
	return l.getReceiveData2(handle, out)
}

func (l *library) BatteryRemainingTime(handle int32, minutes *float64) int32 {
	return l.batteryRemainingTime(handle, minutes)
}
func (l *library) Version(handle int32, version *float64) int32 {
	return l.version(handle, version)
}
func (l *library) SensorState(handle int32, state *int32, code *int32) int32 {
	return l.sensorState(handle, state, code)
}
func (l *library) ContactResistance(handle int32, out *ContactResistance) int32 {
	return l.contactResistance(handle, out)
}
