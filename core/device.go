package core

// DeviceState describes the lifecycle of a device as reported by its
// backend.
type DeviceState int

const (
	// DeviceStateInitializing is the state before the device has come up;
	// work cannot be submitted yet.
	DeviceStateInitializing DeviceState = iota

	// DeviceStateReady means the device accepts work.
	DeviceStateReady

	// DeviceStateUnhealthy means the device stopped accepting work and is
	// not expected to recover.
	DeviceStateUnhealthy

	// DeviceStateClosed means the backend has been shut down.
	DeviceStateClosed
)

func (s DeviceState) String() string {
	switch s {
	case DeviceStateInitializing:
		return "initializing"
	case DeviceStateReady:
		return "ready"
	case DeviceStateUnhealthy:
		return "unhealthy"
	case DeviceStateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// DeviceDescription identifies one device behind a backend.
type DeviceDescription struct {
	// ID uniquely identifies the device within its backend.
	ID string `json:"id"`

	// Kind names the device model, e.g. "sim-v1".
	Kind string `json:"kind,omitempty"`

	// DebugString is a human-readable description for logs and
	// diagnostics.
	DebugString string `json:"debug_string,omitempty"`
}
