package contracts

// DeviceInfo contains information about a wireless EEG sensor discovered during a scan.
type DeviceInfo struct {
	ID   string // Device address as a lowercase hex string.
	Name string // Advertised device name (e.g. "HARU2-001").
}
