package pedals

import (
	"math"
	"testing"
)

// TestNormalizeAxis_Endpoints tests that the raw range extremes map to the
// percentage extremes for the common full-range pedal set.
func TestNormalizeAxis_Endpoints(t *testing.T) {
	if got := NormalizeAxis(-32768, -32768, 32767, false); got != 0 {
		t.Errorf("NormalizeAxis(min) = %v, want 0", got)
	}
	if got := NormalizeAxis(32767, -32768, 32767, false); got != 100 {
		t.Errorf("NormalizeAxis(max) = %v, want 100", got)
	}
	if got := NormalizeAxis(0, -32768, 32767, false); math.Abs(got-50) > 0.01 {
		t.Errorf("NormalizeAxis(0) = %v, want ~50", got)
	}
}

// TestNormalizeAxis_LoadCellRange tests pedals whose hardware reports
// 0..32767: the half-range floor must still read as fully released.
func TestNormalizeAxis_LoadCellRange(t *testing.T) {
	if got := NormalizeAxis(0, 0, 32767, false); got != 0 {
		t.Errorf("load-cell floor = %v, want 0", got)
	}
	if got := NormalizeAxis(32767, 0, 32767, false); got != 100 {
		t.Errorf("load-cell ceiling = %v, want 100", got)
	}
	if got := NormalizeAxis(16384, 0, 32767, false); math.Abs(got-50) > 0.01 {
		t.Errorf("load-cell midpoint = %v, want ~50", got)
	}
	// Readings below the configured floor clamp instead of going negative.
	if got := NormalizeAxis(-5000, 0, 32767, false); got != 0 {
		t.Errorf("below-floor reading = %v, want 0", got)
	}
}

// TestNormalizeAxis_Invert tests inverted pedals that rest at full scale.
func TestNormalizeAxis_Invert(t *testing.T) {
	if got := NormalizeAxis(32767, -32768, 32767, true); got != 0 {
		t.Errorf("inverted max = %v, want 0", got)
	}
	if got := NormalizeAxis(-32768, -32768, 32767, true); got != 100 {
		t.Errorf("inverted min = %v, want 100", got)
	}
	if got := NormalizeAxis(0, 0, 32767, true); got != 100 {
		t.Errorf("inverted load-cell floor = %v, want 100", got)
	}
}

// TestNormalizeAxis_DegenerateRange tests that a zero-width raw range
// reads as released rather than dividing by zero.
func TestNormalizeAxis_DegenerateRange(t *testing.T) {
	if got := NormalizeAxis(100, 500, 500, false); got != 0 {
		t.Errorf("degenerate range = %v, want 0", got)
	}
}

// TestComputeDelta_Empty tests that identical snapshots produce no delta.
func TestComputeDelta_Empty(t *testing.T) {
	s := CalibrationState{
		Connected: true,
		Name:      "pedals",
		Throttle:  PedalValue{Raw: 10, Calibrated: 12},
	}
	if d := ComputeDelta(s, s); !d.IsEmpty() {
		t.Errorf("delta of identical states = %+v, want empty", d)
	}
}

// TestComputeDelta_JitterFiltered tests that sub-threshold analog noise is
// not reported as a change.
func TestComputeDelta_JitterFiltered(t *testing.T) {
	a := CalibrationState{Connected: true, Throttle: PedalValue{Raw: 50, Calibrated: 50}}
	b := a
	b.Throttle.Raw = 50.01

	if d := ComputeDelta(a, b); !d.IsEmpty() {
		t.Errorf("jitter below threshold produced delta: %+v", d)
	}
}

// TestComputeDelta_ReportsChangedPedalsOnly tests field-level delta
// granularity.
func TestComputeDelta_ReportsChangedPedalsOnly(t *testing.T) {
	a := CalibrationState{Connected: true, Name: "pedals", Feeding: true}
	b := a
	b.Brake = PedalValue{Raw: 40, Calibrated: 55}
	b.Feeding = false

	d := ComputeDelta(a, b)
	if d.Brake == nil || d.Feeding == nil {
		t.Fatalf("delta missing changed fields: %+v", d)
	}
	if d.Throttle != nil || d.Clutch != nil || d.Name != nil || d.Connected != nil {
		t.Errorf("delta includes unchanged fields: %+v", d)
	}
	if d.Brake.Calibrated != 55 {
		t.Errorf("delta brake = %+v, want calibrated 55", d.Brake)
	}
}

// TestCurveSet_ModelLookup tests pedal-name lookup including the unknown
// case.
func TestCurveSet_ModelLookup(t *testing.T) {
	s := NewCurveSet()
	if s.Model(PedalThrottle) != s.Throttle {
		t.Error("throttle lookup returned wrong model")
	}
	if s.Model(PedalBrake) != s.Brake {
		t.Error("brake lookup returned wrong model")
	}
	if s.Model(PedalClutch) != s.Clutch {
		t.Error("clutch lookup returned wrong model")
	}
	if s.Model("handbrake") != nil {
		t.Error("unknown pedal returned a model")
	}
}

// TestRoundPct tests two-decimal trimming for state reporting.
func TestRoundPct(t *testing.T) {
	if got := RoundPct(33.33333); got != 33.33 {
		t.Errorf("RoundPct = %v, want 33.33", got)
	}
	if got := RoundPct(100); got != 100 {
		t.Errorf("RoundPct(100) = %v, want 100", got)
	}
}
