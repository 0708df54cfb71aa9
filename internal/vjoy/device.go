package vjoy

import (
	"errors"
	"fmt"
	"log"
	"math"
	"sync"
)

var (
	// ErrDriverMissing means the vJoy driver is not installed or is
	// disabled. Fatal at construction.
	ErrDriverMissing = errors.New("vjoy: driver not installed or disabled")
	// ErrDeviceBusy means another feeder already owns the device. Fatal at
	// construction, and deliberately distinct from ErrDriverMissing.
	ErrDeviceBusy = errors.New("vjoy: device owned by another feeder")
	// ErrAcquireFailed means the driver refused the acquire call on a unit
	// it reported as free.
	ErrAcquireFailed = errors.New("vjoy: acquire failed")
	// ErrAxisWrite means the driver rejected a single axis-set call.
	// Recoverable; the caller may retry next tick.
	ErrAxisWrite = errors.New("vjoy: axis write rejected")
	// ErrNotOwned means an axis update was attempted while the device is
	// not in the owned state. Recoverable.
	ErrNotOwned = errors.New("vjoy: device not owned")
)

// DefaultDeviceID is the first enumerated vJoy unit. The feeder always
// binds to it; there is no unit selection.
const DefaultDeviceID = 1

// nativeMax is the top of the device's native axis unit range.
const nativeMax = 65535

// Device is the single virtual joystick handle held by this process. It
// accepts calibrated percentages and writes native axis units through its
// Driver. Throttle feeds X, brake Y, clutch Z.
type Device struct {
	drv       Driver
	rid       uint32
	logger    *log.Logger
	simulated bool

	mu    sync.Mutex
	state State

	closeOnce sync.Once
}

// Open probes and acquires the first vJoy unit. Acquisition is one-shot
// and fail-fast: a busy unit, a missing driver, or an unrecognized status
// each fail construction with a distinct error. On success the device is
// owned until Close.
func Open(drv Driver, logger *log.Logger) (*Device, error) {
	d := &Device{drv: drv, rid: DefaultDeviceID, logger: logger}

	if !drv.Enabled() {
		return nil, fmt.Errorf("device %d: %w", d.rid, ErrDriverMissing)
	}

	st := drv.Status(d.rid)
	switch st.State {
	case StateOwned:
		// Already held by this feeder, nothing to acquire.
	case StateFree:
		if err := drv.Acquire(d.rid); err != nil {
			return nil, fmt.Errorf("acquiring device %d: %w", d.rid, err)
		}
	case StateBusy:
		return nil, fmt.Errorf("device %d: %w", d.rid, ErrDeviceBusy)
	case StateMissing:
		return nil, fmt.Errorf("device %d: %w", d.rid, ErrDriverMissing)
	default:
		return nil, fmt.Errorf("device %d: unrecognized driver status %d", d.rid, st.Raw)
	}

	d.state = StateOwned
	logger.Printf("virtual device %d acquired", d.rid)
	return d, nil
}

// OpenSimulated returns a device backed by an in-memory simulator. It is
// owned immediately and never touches a driver; axis updates are recorded
// only. This is a first-class mode for running without vJoy installed.
func OpenSimulated(logger *log.Logger) *Device {
	sim := NewSimulator()
	sim.Acquire(DefaultDeviceID)
	logger.Printf("virtual device %d simulated, axis writes will not reach hardware", DefaultDeviceID)
	return &Device{
		drv:       sim,
		rid:       DefaultDeviceID,
		logger:    logger,
		simulated: true,
		state:     StateOwned,
	}
}

// State returns the device's current acquisition state.
func (d *Device) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Simulated reports whether the device runs against the in-memory
// simulator instead of real hardware.
func (d *Device) Simulated() bool {
	return d.simulated
}

// UpdateAxes writes one tick's calibrated percentages to the device.
// All three axes are attempted even if one write fails; the first failure
// is returned after the others have been tried, and every failing axis is
// logged by name. Calling while not owned returns ErrNotOwned without
// touching the driver, so the polling loop can retry next tick.
func (d *Device) UpdateAxes(throttle, brake, clutch float64) error {
	if st := d.State(); st != StateOwned {
		d.logger.Printf("axis update skipped: device %d is %s", d.rid, st)
		return ErrNotOwned
	}

	writes := []struct {
		axis Axis
		pct  float64
	}{
		{AxisX, throttle},
		{AxisY, brake},
		{AxisZ, clutch},
	}

	var firstErr error
	for _, w := range writes {
		if err := d.drv.SetAxis(d.rid, w.axis, ScaleToNative(w.pct)); err != nil {
			d.logger.Printf("axis %s write failed on device %d: %v", w.axis, d.rid, err)
			if firstErr == nil {
				firstErr = fmt.Errorf("axis %s: %w", w.axis, err)
			}
		}
	}
	return firstErr
}

// Close relinquishes the device exactly once. Relinquish failures are
// logged, never returned: teardown must complete on every exit path.
// Safe to call multiple times and after a failed update.
func (d *Device) Close() {
	d.closeOnce.Do(func() {
		if err := d.drv.Relinquish(d.rid); err != nil {
			d.logger.Printf("relinquish of device %d failed: %v", d.rid, err)
		} else {
			d.logger.Printf("virtual device %d released", d.rid)
		}
		d.mu.Lock()
		d.state = StateFree
		d.mu.Unlock()
	})
}

// ScaleToNative converts a 0..100 percentage into the device's native
// 0..65535 axis range, rounding to the nearest unit so the extremes map
// exactly and repeated writes of the same value cannot drift.
func ScaleToNative(pct float64) int32 {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return int32(math.Round(pct / 100 * nativeMax))
}
