package pedals

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"sync"

	"github.com/jupiterrider/purego-sdl3/sdl"

	"pedalshaper/internal/curve"
)

// Feeder is the axis sink the calibration loop drives once per tick.
// Satisfied by *vjoy.Device.
type Feeder interface {
	UpdateAxes(throttle, brake, clutch float64) error
	Simulated() bool
}

type pedalSetInfo struct {
	joystick *sdl.Joystick
	name     string
	id       sdl.JoystickID
}

// Reader polls the physical pedal set through the SDL3 joystick API, runs
// each raw reading through its calibration model, and feeds the result to
// the virtual device once per tick.
type Reader struct {
	curves *CurveSet
	feeder Feeder
	axes   AxisMap
	rate   int

	state     CalibrationState
	prevState CalibrationState
	pedalSets map[sdl.JoystickID]*pedalSetInfo
	activeID  sdl.JoystickID // first connected pedal set
	hasActive bool
	changes   chan CalibrationState
	mu        sync.RWMutex
}

// NewReader wires a reader to its curve models and axis sink. rate is the
// polling frequency in Hz; values below 1 fall back to 60.
func NewReader(curves *CurveSet, feeder Feeder, axes AxisMap, rate int) *Reader {
	if rate < 1 {
		rate = 60
	}
	return &Reader{
		curves:    curves,
		feeder:    feeder,
		axes:      axes,
		rate:      rate,
		pedalSets: make(map[sdl.JoystickID]*pedalSetInfo),
		changes:   make(chan CalibrationState, 64),
	}
}

// Changes returns the channel on which state changes are sent.
func (r *Reader) Changes() <-chan CalibrationState {
	return r.changes
}

// CurrentState returns a snapshot of the current calibration state.
func (r *Reader) CurrentState() CalibrationState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// initJoysticks brings up the SDL joystick subsystem; a variable so tests
// can run the loop without SDL present.
var initJoysticks = func() error {
	if !sdl.Init(sdl.InitJoystick) {
		return fmt.Errorf("SDL init failed: %s", sdl.GetError())
	}
	return nil
}

// Run initializes SDL and runs the event+polling loop on the current
// thread until the context is cancelled. An init failure is returned, not
// fatal here: the caller still owns a virtual device that must be released
// on the way out. Must be called from a goroutine with the OS thread
// locked, which Run does itself.
func (r *Reader) Run(ctx context.Context) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := initJoysticks(); err != nil {
		return err
	}
	defer sdl.Quit()

	log.Println("SDL3 joystick subsystem initialized")

	delayNS := uint64(1_000_000_000 / r.rate)

	// Pedal sets that were plugged in before we started.
	ids := sdl.GetJoysticks()
	for _, id := range ids {
		r.openPedalSet(id)
	}

	for {
		select {
		case <-ctx.Done():
			r.closeAll()
			return nil
		default:
		}

		r.processEvents()
		r.pollAndFeed()
		sdl.DelayNS(delayNS)
	}
}

func (r *Reader) processEvents() {
	var event sdl.Event
	for sdl.PollEvent(&event) {
		switch event.Type() {
		case sdl.EventJoystickAdded:
			devEvent := event.JDevice()
			r.openPedalSet(devEvent.Which)

		case sdl.EventJoystickRemoved:
			devEvent := event.JDevice()
			r.removePedalSet(devEvent.Which)
		}
	}
}

func (r *Reader) openPedalSet(instanceID sdl.JoystickID) {
	if _, exists := r.pedalSets[instanceID]; exists {
		return
	}

	js := sdl.OpenJoystick(instanceID)
	if js == nil {
		log.Printf("Failed to open pedal set %d: %s", instanceID, sdl.GetError())
		return
	}

	jsID := sdl.GetJoystickID(js)
	name := sdl.GetJoystickName(js)
	numAxes := sdl.GetNumJoystickAxes(js)

	r.pedalSets[jsID] = &pedalSetInfo{joystick: js, name: name, id: jsID}

	log.Printf("Pedal set connected: %s axes=%d", name, numAxes)

	// First connected set becomes the active one.
	if !r.hasActive {
		r.activeID = jsID
		r.hasActive = true
		log.Printf("Active pedal set: %s (ID=%d)", name, jsID)

		r.mu.Lock()
		r.state.Connected = true
		r.state.Name = name
		r.state.Simulated = r.feeder.Simulated()
		r.mu.Unlock()

		r.emitState()
	}
}

func (r *Reader) removePedalSet(instanceID sdl.JoystickID) {
	info, exists := r.pedalSets[instanceID]
	if !exists {
		return
	}

	log.Printf("Pedal set disconnected: %s", info.name)
	sdl.CloseJoystick(info.joystick)
	delete(r.pedalSets, instanceID)

	if !r.hasActive || r.activeID != instanceID {
		return
	}
	r.hasActive = false

	if len(r.pedalSets) == 0 {
		r.mu.Lock()
		r.state = CalibrationState{Simulated: r.feeder.Simulated()}
		r.prevState = r.state
		r.mu.Unlock()
		r.emitState()
		return
	}

	// Promote the next available set.
	for id, set := range r.pedalSets {
		if sdl.JoystickConnected(set.joystick) {
			r.activeID = id
			r.hasActive = true
			log.Printf("Active pedal set switched to: %s (ID=%d)", set.name, id)

			r.mu.Lock()
			r.state.Connected = true
			r.state.Name = set.name
			r.mu.Unlock()

			r.emitState()
			break
		}
	}
}

func (r *Reader) closeAll() {
	for id, info := range r.pedalSets {
		sdl.CloseJoystick(info.joystick)
		delete(r.pedalSets, id)
	}
}

// pollAndFeed is one control-loop tick: read all three raw axes, calibrate
// each, then push all three to the device in a single update. A failed
// update is logged through the device and retried on the next tick.
func (r *Reader) pollAndFeed() {
	if !r.hasActive {
		return
	}

	info, exists := r.pedalSets[r.activeID]
	if !exists || !sdl.JoystickConnected(info.joystick) {
		return
	}
	js := info.joystick

	throttle := r.readPedal(js, r.axes.Throttle, r.curves.Throttle)
	brake := r.readPedal(js, r.axes.Brake, r.curves.Brake)
	clutch := r.readPedal(js, r.axes.Clutch, r.curves.Clutch)

	err := r.feeder.UpdateAxes(throttle.Calibrated, brake.Calibrated, clutch.Calibrated)

	state := CalibrationState{
		Connected: true,
		Name:      info.name,
		Simulated: r.feeder.Simulated(),
		Feeding:   err == nil,
		Throttle:  throttle,
		Brake:     brake,
		Clutch:    clutch,
	}

	r.mu.Lock()
	delta := ComputeDelta(r.prevState, state)
	if !delta.IsEmpty() {
		r.state = state
		r.prevState = state
		r.mu.Unlock()
		r.emitState()
	} else {
		r.mu.Unlock()
	}
}

func (r *Reader) readPedal(js *sdl.Joystick, ac AxisConfig, model *curve.Model) PedalValue {
	raw := NormalizeAxis(sdl.GetJoystickAxis(js, ac.Index), ac.RawMin, ac.RawMax, ac.Invert)
	return PedalValue{
		Raw:        RoundPct(raw),
		Calibrated: RoundPct(model.EvaluateCalibrated(raw)),
	}
}

func (r *Reader) emitState() {
	r.mu.RLock()
	s := r.state
	r.mu.RUnlock()

	select {
	case r.changes <- s:
	default:
		// Drop if the channel is full to avoid blocking the SDL thread.
	}
}
