// Package vjoy owns the handle to a single virtual joystick device and
// feeds calibrated pedal values to it as native axis units. The low-level
// driver is hidden behind the Driver interface, with a real vJoy binding
// on Windows and an in-memory simulator for driverless operation.
package vjoy

// State is the acquisition state of a virtual joystick device as seen by
// this feeder.
type State int

const (
	StateUninitialized State = iota
	StateOwned
	StateFree
	StateBusy
	StateMissing
	StateUnknown
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateOwned:
		return "owned"
	case StateFree:
		return "free"
	case StateBusy:
		return "busy"
	case StateMissing:
		return "missing"
	default:
		return "unknown"
	}
}

// Status is a driver-reported device status, translated from the driver's
// raw integer code exactly once at the binding. Raw keeps the untranslated
// code when the state is StateUnknown so error messages can include it.
type Status struct {
	State State
	Raw   int32
}
