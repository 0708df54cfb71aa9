// Package curve implements the per-pedal calibration curve: an ordered set
// of control points evaluated with piecewise-linear interpolation, plus a
// dead zone at either end of the raw input range.
package curve

import (
	"sort"
	"sync"
)

// ControlPoint is an (input %, output %) anchor on a calibration curve.
// Both coordinates are percentages in 0..100.
type ControlPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DeadZone is a pair of margins on the raw input range: Min is measured up
// from 0%, Max down from 100%. Raw readings inside a margin are treated as
// fully released / fully pressed.
type DeadZone struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// snapshot is the immutable state a Model publishes to readers. Points are
// sorted by X and never mutated after publication, so Evaluate can walk
// them without holding the lock.
type snapshot struct {
	points   []ControlPoint
	deadZone DeadZone
}

// Model is the calibration unit for a single pedal axis. Mutations replace
// the whole snapshot, so a concurrent Evaluate never observes a partially
// edited or unsorted point list.
type Model struct {
	mu   sync.RWMutex
	snap *snapshot
}

// NewModel returns a model holding the 2-point identity curve and zero
// dead zones.
func NewModel() *Model {
	m := &Model{}
	m.snap = &snapshot{points: identityPoints()}
	return m
}

func identityPoints() []ControlPoint {
	return []ControlPoint{{X: 0, Y: 0}, {X: 100, Y: 100}}
}

// SetPoints replaces the curve's control points wholesale. Coordinates are
// clamped to 0..100 and the copy is stably sorted by X, so points sharing
// an X keep their given order.
func (m *Model) SetPoints(points []ControlPoint) {
	sorted := make([]ControlPoint, len(points))
	for i, p := range points {
		sorted[i] = ControlPoint{X: clampPct(p.X), Y: clampPct(p.Y)}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].X < sorted[j].X
	})

	m.mu.Lock()
	m.snap = &snapshot{points: sorted, deadZone: m.snap.deadZone}
	m.mu.Unlock()
}

// ResetToLinear replaces the points with the 2-point identity curve.
// Dead zones are left untouched.
func (m *Model) ResetToLinear() {
	m.SetPoints(identityPoints())
}

// SetDeadZones replaces both dead-zone bounds. Each bound is clamped to
// 0..100 independently; the pair is not validated against each other, that
// is the caller's concern.
func (m *Model) SetDeadZones(min, max float64) {
	m.mu.Lock()
	m.snap = &snapshot{
		points:   m.snap.points,
		deadZone: DeadZone{Min: clampPct(min), Max: clampPct(max)},
	}
	m.mu.Unlock()
}

// Points returns a copy of the control points, sorted by X.
func (m *Model) Points() []ControlPoint {
	m.mu.RLock()
	snap := m.snap
	m.mu.RUnlock()

	out := make([]ControlPoint, len(snap.points))
	copy(out, snap.points)
	return out
}

// DeadZones returns the current dead-zone bounds.
func (m *Model) DeadZones() DeadZone {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snap.deadZone
}

func (m *Model) current() *snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snap
}

func clampPct(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
