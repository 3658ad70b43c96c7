// device.go - common shape shared by every soft-switch device
package main

// DeviceKind distinguishes motherboard-resident devices from slot cards,
// mostly for the debug monitor's device list.
type DeviceKind int

const (
	KindMotherboard DeviceKind = iota
	KindSlotCard
)

// SoftSwitchState is one row of a device's observability report: a named
// latch, the address that drives it, its current value, and a short
// description for the debug monitor.
type SoftSwitchState struct {
	Name        string
	Address     Address
	IsOn        bool
	Description string
}

// Device is implemented by every soft-switch peripheral wired onto the
// $C000 page. Machine.wireDevices calls RegisterHandlers once at startup and
// Reset on every power-on/user reset.
type Device interface {
	Name() string
	Kind() DeviceKind
	RegisterHandlers(dispatcher *IODispatcher)
	Initialize(ctx *EventContext)
	Reset()
	SoftSwitchStates() []SoftSwitchState
}
