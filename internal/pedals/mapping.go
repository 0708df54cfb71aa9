package pedals

import "math"

// AxisConfig says where one pedal lives on the physical device: which SDL
// axis index to read, the raw range it reports, and whether the hardware
// reports it inverted (released = full scale).
type AxisConfig struct {
	Index  int32
	Invert bool
	// Raw range. Most pedal sets report -32768..32767; load-cell pedals
	// report 0..32767.
	RawMin int16
	RawMax int16
}

// AxisMap is the full pedal-to-axis assignment for one pedal set.
type AxisMap struct {
	Throttle AxisConfig
	Brake    AxisConfig
	Clutch   AxisConfig
}

// DefaultAxisMap covers the common case of a three-axis pedal set
// enumerating throttle, brake, clutch in order.
func DefaultAxisMap() AxisMap {
	return AxisMap{
		Throttle: AxisConfig{Index: 0, RawMin: -32768, RawMax: 32767},
		Brake:    AxisConfig{Index: 1, RawMin: -32768, RawMax: 32767},
		Clutch:   AxisConfig{Index: 2, RawMin: -32768, RawMax: 32767},
	}
}

// NormalizeAxis converts a raw SDL axis value to a 0..100 percentage
// against the pedal's reported range, optionally inverting for pedals
// that rest at full scale. A degenerate range reads as 0.
func NormalizeAxis(raw int16, rawMin, rawMax int16, invert bool) float64 {
	if rawMax == rawMin {
		return 0
	}
	v := (float64(raw) - float64(rawMin)) / (float64(rawMax) - float64(rawMin)) * 100
	if invert {
		v = 100 - v
	}
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// RoundPct trims a percentage to two decimals for state reporting, so the
// broadcast stream is not churned by float noise.
func RoundPct(v float64) float64 {
	return math.Round(v*100) / 100
}
