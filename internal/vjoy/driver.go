package vjoy

// Axis identifies one writable axis on the virtual device. The values are
// the HID usage codes the vJoy interface expects.
type Axis uint32

const (
	AxisX Axis = 0x30 // throttle
	AxisY Axis = 0x31 // brake
	AxisZ Axis = 0x32 // clutch
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	default:
		return "?"
	}
}

// Driver is the low-level virtual joystick surface a Device drives. There
// are two implementations: the vJoyInterface.dll binding on Windows and
// the in-memory Simulator. A Device never branches on which one it holds.
type Driver interface {
	// Enabled reports whether the driver is installed and usable at all.
	Enabled() bool
	// Status reports the acquisition status of the given device unit.
	Status(rid uint32) Status
	// Acquire takes ownership of the unit for this feeder.
	Acquire(rid uint32) error
	// SetAxis writes one axis value in native device units.
	SetAxis(rid uint32, axis Axis, value int32) error
	// Relinquish releases ownership of the unit.
	Relinquish(rid uint32) error
}
