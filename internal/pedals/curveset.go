package pedals

import "pedalshaper/internal/curve"

// Pedal names used in profiles and over the wire.
const (
	PedalThrottle = "throttle"
	PedalBrake    = "brake"
	PedalClutch   = "clutch"
)

// CurveSet holds the three per-pedal calibration models. Models are
// independent; nothing is shared across axes.
type CurveSet struct {
	Throttle *curve.Model
	Brake    *curve.Model
	Clutch   *curve.Model
}

// NewCurveSet returns a set of three identity models.
func NewCurveSet() *CurveSet {
	return &CurveSet{
		Throttle: curve.NewModel(),
		Brake:    curve.NewModel(),
		Clutch:   curve.NewModel(),
	}
}

// Model returns the model for a pedal name, or nil for an unknown name.
func (s *CurveSet) Model(pedal string) *curve.Model {
	switch pedal {
	case PedalThrottle:
		return s.Throttle
	case PedalBrake:
		return s.Brake
	case PedalClutch:
		return s.Clutch
	default:
		return nil
	}
}

// Pedals lists the pedal names in feed order.
func Pedals() []string {
	return []string{PedalThrottle, PedalBrake, PedalClutch}
}
