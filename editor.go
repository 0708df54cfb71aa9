package main

import (
	"log"
	"sync"

	"pedalshaper/internal/curve"
	"pedalshaper/internal/hub"
	"pedalshaper/internal/pedals"
	"pedalshaper/internal/profile"
)

// calibration ties the three curve models to the profile on disk. It is
// the hub's Editor (applying edits from rendering clients) and its
// CurveSource (supplying curves for broadcasts). Accepted edits are
// persisted immediately so a crash never loses a calibration.
type calibration struct {
	set   *pedals.CurveSet
	store *profile.Store

	mu   sync.Mutex
	prof *profile.Profile
}

func newCalibration(set *pedals.CurveSet, store *profile.Store, prof *profile.Profile) *calibration {
	return &calibration{set: set, store: store, prof: prof}
}

func (c *calibration) SetPoints(pedal string, points []curve.ControlPoint) bool {
	m := c.set.Model(pedal)
	if m == nil {
		return false
	}
	m.SetPoints(points)
	c.persist()
	return true
}

func (c *calibration) SetDeadZones(pedal string, dz curve.DeadZone) bool {
	m := c.set.Model(pedal)
	if m == nil {
		return false
	}
	m.SetDeadZones(dz.Min, dz.Max)
	c.persist()
	return true
}

func (c *calibration) Reset(pedal string) bool {
	m := c.set.Model(pedal)
	if m == nil {
		return false
	}
	m.ResetToLinear()
	m.SetDeadZones(0, 0)
	c.persist()
	return true
}

func (c *calibration) Curves() map[string]hub.CurveInfo {
	out := make(map[string]hub.CurveInfo, 3)
	for _, name := range pedals.Pedals() {
		m := c.set.Model(name)
		out[name] = hub.CurveInfo{Points: m.Points(), DeadZone: m.DeadZones()}
	}
	return out
}

func (c *calibration) persist() {
	c.mu.Lock()
	defer c.mu.Unlock()
	profile.Snapshot(c.prof, c.set)
	if err := c.store.Save(c.prof); err != nil {
		log.Printf("Failed to save profile: %v", err)
	}
}
