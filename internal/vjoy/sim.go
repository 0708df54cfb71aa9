package vjoy

import "sync"

// Simulator is an in-memory Driver for running without a vJoy
// installation. Axis writes are recorded and can be read back by tests or
// diagnostics; nothing ever reaches hardware.
type Simulator struct {
	mu    sync.Mutex
	owned map[uint32]bool
	axes  map[uint32]map[Axis]int32
}

// NewSimulator returns a simulator with every unit free.
func NewSimulator() *Simulator {
	return &Simulator{
		owned: make(map[uint32]bool),
		axes:  make(map[uint32]map[Axis]int32),
	}
}

func (s *Simulator) Enabled() bool {
	return true
}

func (s *Simulator) Status(rid uint32) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.owned[rid] {
		return Status{State: StateOwned}
	}
	return Status{State: StateFree}
}

func (s *Simulator) Acquire(rid uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.owned[rid] = true
	return nil
}

func (s *Simulator) SetAxis(rid uint32, axis Axis, value int32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.owned[rid] {
		return ErrNotOwned
	}
	m := s.axes[rid]
	if m == nil {
		m = make(map[Axis]int32)
		s.axes[rid] = m
	}
	m[axis] = value
	return nil
}

func (s *Simulator) Relinquish(rid uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.owned, rid)
	return nil
}

// AxisValue returns the last value written to an axis of a unit.
func (s *Simulator) AxisValue(rid uint32, axis Axis) int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.axes[rid][axis]
}
