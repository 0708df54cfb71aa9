//go:build !windows

package vjoy

// The vJoy driver only exists on Windows. On other platforms the real
// binding reports the driver as missing; the simulator is the way to run
// there.
type dllDriver struct{}

// NewDriver returns the platform driver binding. On non-Windows platforms
// every unit reports StateMissing.
func NewDriver() Driver {
	return dllDriver{}
}

func (dllDriver) Enabled() bool {
	return false
}

func (dllDriver) Status(rid uint32) Status {
	return Status{State: StateMissing}
}

func (dllDriver) Acquire(rid uint32) error {
	return ErrDriverMissing
}

func (dllDriver) SetAxis(rid uint32, axis Axis, value int32) error {
	return ErrDriverMissing
}

func (dllDriver) Relinquish(rid uint32) error {
	return nil
}
