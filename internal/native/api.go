package native

// API is the call surface of the vendor's sensor library. The production
// implementation registers the exported symbols of the shared library;
// tests substitute a fake.
//
// All functions return the vendor's status convention: Init returns a
// handle (>= 0) or a negative error code, every other call returns 0 on
// success and a non-zero (usually negative) code on failure.
type API interface {
	Init(port string, timeouts *TimesetParam) int32
	Term(handle int32) int32

	StartScan(handle int32) int32
	StopScan(handle int32) int32
	GetScannedNum(handle int32) int32
	GetScannedDevice(handle int32, info *DeviceInfo) int32

	ConnectDevice(handle int32, info *DeviceInfo) int32
	DisconnectDevice(handle int32) int32

	StartMeasure(handle int32, param *SensorParam, reserved *float64, deviceTime *int64) int32
	StartMeasure2(handle int32, deviceTime *int64) int32
	StopMeasure(handle int32) int32

	WaitReceivedData(handle int32) int32
	GetReceiveNum(handle int32) int32
	GetReceiveData2(handle int32, out *ReceiveData2) int32

	BatteryRemainingTime(handle int32, minutes *float64) int32
	Version(handle int32, version *float64) int32
	SensorState(handle int32, state *int32, code *int32) int32
	ContactResistance(handle int32, out *ContactResistance) int32
}
