//go:build windows

package vjoy

import "syscall"

// vJoyInterface.dll binding. Procs are resolved lazily so a missing
// installation surfaces as StateMissing instead of a load failure at
// startup.
var (
	vjoyDLL           = syscall.NewLazyDLL("vJoyInterface.dll")
	procVJoyEnabled   = vjoyDLL.NewProc("vJoyEnabled")
	procGetVJDStatus  = vjoyDLL.NewProc("GetVJDStatus")
	procAcquireVJD    = vjoyDLL.NewProc("AcquireVJD")
	procRelinquishVJD = vjoyDLL.NewProc("RelinquishVJD")
	procSetAxis       = vjoyDLL.NewProc("SetAxis")
)

// Status codes returned by GetVJDStatus, from vjoyinterface.h.
const (
	vjdStatOwn  = 0 // owned by this feeder
	vjdStatFree = 1
	vjdStatBusy = 2 // owned by another feeder
	vjdStatMiss = 3 // unit not installed or driver disabled
)

type dllDriver struct{}

// NewDriver returns the vJoyInterface.dll binding.
func NewDriver() Driver {
	return dllDriver{}
}

func (dllDriver) Enabled() bool {
	if vjoyDLL.Load() != nil {
		return false
	}
	ret, _, _ := procVJoyEnabled.Call()
	return ret != 0
}

func (dllDriver) Status(rid uint32) Status {
	if vjoyDLL.Load() != nil {
		return Status{State: StateMissing}
	}
	ret, _, _ := procGetVJDStatus.Call(uintptr(rid))
	switch ret {
	case vjdStatOwn:
		return Status{State: StateOwned}
	case vjdStatFree:
		return Status{State: StateFree}
	case vjdStatBusy:
		return Status{State: StateBusy}
	case vjdStatMiss:
		return Status{State: StateMissing}
	default:
		return Status{State: StateUnknown, Raw: int32(ret)}
	}
}

func (dllDriver) Acquire(rid uint32) error {
	ret, _, _ := procAcquireVJD.Call(uintptr(rid))
	if ret == 0 {
		return ErrAcquireFailed
	}
	return nil
}

func (dllDriver) SetAxis(rid uint32, axis Axis, value int32) error {
	ret, _, _ := procSetAxis.Call(uintptr(value), uintptr(rid), uintptr(axis))
	if ret == 0 {
		return ErrAxisWrite
	}
	return nil
}

func (dllDriver) Relinquish(rid uint32) error {
	// RelinquishVJD returns void; a load failure is the only error here.
	if err := vjoyDLL.Load(); err != nil {
		return err
	}
	procRelinquishVJD.Call(uintptr(rid))
	return nil
}
