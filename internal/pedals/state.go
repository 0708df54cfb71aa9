package pedals

import "math"

// PedalValue carries one pedal's raw reading and the calibrated value that
// was fed to the virtual device, both as percentages.
type PedalValue struct {
	Raw        float64 `json:"raw"`
	Calibrated float64 `json:"calibrated"`
}

// CalibrationState is one snapshot of the calibration loop: where each
// pedal sits and whether the feed to the virtual device is healthy.
type CalibrationState struct {
	Connected bool       `json:"connected"`
	Name      string     `json:"name"`
	Simulated bool       `json:"simulated"`
	Feeding   bool       `json:"feeding"`
	Throttle  PedalValue `json:"throttle"`
	Brake     PedalValue `json:"brake"`
	Clutch    PedalValue `json:"clutch"`
}

// DeltaChanges holds only the fields that changed between two snapshots.
type DeltaChanges struct {
	Connected *bool       `json:"connected,omitempty"`
	Name      *string     `json:"name,omitempty"`
	Simulated *bool       `json:"simulated,omitempty"`
	Feeding   *bool       `json:"feeding,omitempty"`
	Throttle  *PedalValue `json:"throttle,omitempty"`
	Brake     *PedalValue `json:"brake,omitempty"`
	Clutch    *PedalValue `json:"clutch,omitempty"`
}

func (d *DeltaChanges) IsEmpty() bool {
	return d.Connected == nil &&
		d.Name == nil &&
		d.Simulated == nil &&
		d.Feeding == nil &&
		d.Throttle == nil &&
		d.Brake == nil &&
		d.Clutch == nil
}

// analogThreshold filters out sub-visible jitter so idle pedals do not
// generate a delta stream.
const analogThreshold = 0.05

func pctEqual(a, b float64) bool {
	return math.Abs(a-b) < analogThreshold
}

func pedalEqual(a, b PedalValue) bool {
	return pctEqual(a.Raw, b.Raw) && pctEqual(a.Calibrated, b.Calibrated)
}

// ComputeDelta returns the fields of next that differ from prev.
func ComputeDelta(prev, next CalibrationState) *DeltaChanges {
	d := &DeltaChanges{}

	if prev.Connected != next.Connected {
		d.Connected = &next.Connected
	}
	if prev.Name != next.Name {
		d.Name = &next.Name
	}
	if prev.Simulated != next.Simulated {
		d.Simulated = &next.Simulated
	}
	if prev.Feeding != next.Feeding {
		d.Feeding = &next.Feeding
	}
	if !pedalEqual(prev.Throttle, next.Throttle) {
		d.Throttle = &next.Throttle
	}
	if !pedalEqual(prev.Brake, next.Brake) {
		d.Brake = &next.Brake
	}
	if !pedalEqual(prev.Clutch, next.Clutch) {
		d.Clutch = &next.Clutch
	}
	return d
}
