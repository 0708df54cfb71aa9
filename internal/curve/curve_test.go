package curve

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

// TestEvaluate_Identity tests that a fresh model maps every input to itself.
func TestEvaluate_Identity(t *testing.T) {
	m := NewModel()
	for _, v := range []float64{0, 1, 12.5, 50, 99.9, 100} {
		if got := m.Evaluate(v); !almostEqual(got, v) {
			t.Errorf("Evaluate(%v) = %v, want identity", v, got)
		}
	}
}

// TestEvaluate_NoPoints tests the identity fallback for a degenerate
// zero-point curve.
func TestEvaluate_NoPoints(t *testing.T) {
	m := NewModel()
	m.SetPoints(nil)
	if got := m.Evaluate(37.5); !almostEqual(got, 37.5) {
		t.Errorf("Evaluate(37.5) with no points = %v, want 37.5", got)
	}
}

// TestEvaluate_PassesThroughNodes tests that every control point's own X
// evaluates to exactly that point's Y.
func TestEvaluate_PassesThroughNodes(t *testing.T) {
	pts := []ControlPoint{{0, 0}, {20, 35}, {50, 80}, {100, 100}}
	m := NewModel()
	m.SetPoints(pts)
	for _, p := range pts {
		if got := m.Evaluate(p.X); !almostEqual(got, p.Y) {
			t.Errorf("Evaluate(%v) = %v, want node value %v", p.X, got, p.Y)
		}
	}
}

// TestEvaluate_ExampleScenario tests the worked three-point example:
// midpoint interpolation on both segments plus clamping past the range.
func TestEvaluate_ExampleScenario(t *testing.T) {
	m := NewModel()
	m.SetPoints([]ControlPoint{{0, 0}, {50, 80}, {100, 100}})

	cases := []struct {
		in, want float64
	}{
		{25, 40},
		{75, 90},
		{100, 100},
		{150, 100},
	}
	for _, c := range cases {
		if got := m.Evaluate(c.in); !almostEqual(got, c.want) {
			t.Errorf("Evaluate(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

// TestEvaluate_FlatClamp tests that inputs outside the point range return
// the nearest endpoint's Y.
func TestEvaluate_FlatClamp(t *testing.T) {
	m := NewModel()
	m.SetPoints([]ControlPoint{{20, 10}, {80, 90}})

	if got := m.Evaluate(5); !almostEqual(got, 10) {
		t.Errorf("Evaluate below range = %v, want 10", got)
	}
	if got := m.Evaluate(20); !almostEqual(got, 10) {
		t.Errorf("Evaluate at first node = %v, want 10", got)
	}
	if got := m.Evaluate(95); !almostEqual(got, 90) {
		t.Errorf("Evaluate above range = %v, want 90", got)
	}
}

// TestEvaluate_SinglePoint tests that a one-point curve is a constant.
func TestEvaluate_SinglePoint(t *testing.T) {
	m := NewModel()
	m.SetPoints([]ControlPoint{{50, 70}})
	for _, v := range []float64{0, 50, 100} {
		if got := m.Evaluate(v); !almostEqual(got, 70) {
			t.Errorf("Evaluate(%v) = %v, want constant 70", v, got)
		}
	}
}

// TestEvaluate_DegenerateSegment tests that two points sharing an X never
// divide by zero and return a defined finite value.
func TestEvaluate_DegenerateSegment(t *testing.T) {
	m := NewModel()
	m.SetPoints([]ControlPoint{{0, 0}, {50, 30}, {50, 70}, {100, 100}})

	got := m.Evaluate(50)
	if math.IsNaN(got) || math.IsInf(got, 0) {
		t.Fatalf("Evaluate(50) on degenerate segment = %v, want finite", got)
	}
	// First bracketing segment wins, so the step lands on the left Y.
	if !almostEqual(got, 30) {
		t.Errorf("Evaluate(50) = %v, want 30", got)
	}
}

// TestEvaluate_Monotonic tests that interpolation between monotonic nodes
// never overshoots: outputs are non-decreasing for increasing inputs.
func TestEvaluate_Monotonic(t *testing.T) {
	m := NewModel()
	m.SetPoints([]ControlPoint{{0, 0}, {30, 10}, {60, 75}, {100, 100}})

	prev := math.Inf(-1)
	for in := 0.0; in <= 100.0; in += 0.5 {
		got := m.Evaluate(in)
		if got < prev-epsilon {
			t.Fatalf("Evaluate(%v) = %v decreased below %v", in, got, prev)
		}
		prev = got
	}
}

// TestSetPoints_SortsUnorderedInput tests that insertion order does not
// affect evaluation.
func TestSetPoints_SortsUnorderedInput(t *testing.T) {
	m := NewModel()
	m.SetPoints([]ControlPoint{{100, 100}, {0, 0}, {50, 80}})

	if got := m.Evaluate(25); !almostEqual(got, 40) {
		t.Errorf("Evaluate(25) = %v, want 40 after sorting", got)
	}
	pts := m.Points()
	for i := 1; i < len(pts); i++ {
		if pts[i-1].X > pts[i].X {
			t.Fatalf("Points() not sorted: %v", pts)
		}
	}
}

// TestSetPoints_ClampsCoordinates tests that out-of-range coordinates are
// clamped into 0..100 on replacement.
func TestSetPoints_ClampsCoordinates(t *testing.T) {
	m := NewModel()
	m.SetPoints([]ControlPoint{{-10, -5}, {120, 130}})

	pts := m.Points()
	if !almostEqual(pts[0].X, 0) || !almostEqual(pts[0].Y, 0) {
		t.Errorf("first point = %v, want (0,0)", pts[0])
	}
	if !almostEqual(pts[1].X, 100) || !almostEqual(pts[1].Y, 100) {
		t.Errorf("last point = %v, want (100,100)", pts[1])
	}
}

// TestResetToLinear tests the identity law: reset followed by Evaluate
// returns the input for any value in range.
func TestResetToLinear(t *testing.T) {
	m := NewModel()
	m.SetPoints([]ControlPoint{{0, 50}, {100, 50}})
	m.ResetToLinear()

	for v := 0.0; v <= 100.0; v += 12.5 {
		if got := m.Evaluate(v); !almostEqual(got, v) {
			t.Errorf("Evaluate(%v) after reset = %v, want identity", v, got)
		}
	}
}

// TestApplyDeadZone_Rescales tests that the band between the margins is
// rescaled to the full 0..100 range.
func TestApplyDeadZone_Rescales(t *testing.T) {
	m := NewModel()
	m.SetDeadZones(10, 10)

	cases := []struct {
		raw, want float64
	}{
		{0, 0},
		{10, 0},
		{50, 50},
		{90, 100},
		{100, 100},
		{30, 25},
	}
	for _, c := range cases {
		if got := m.ApplyDeadZone(c.raw); !almostEqual(got, c.want) {
			t.Errorf("ApplyDeadZone(%v) = %v, want %v", c.raw, got, c.want)
		}
	}
}

// TestApplyDeadZone_OverlappingMargins tests the degenerate case where the
// margins meet or cross: the result stays defined and finite.
func TestApplyDeadZone_OverlappingMargins(t *testing.T) {
	m := NewModel()
	m.SetDeadZones(60, 60)

	if got := m.ApplyDeadZone(40); !almostEqual(got, 0) {
		t.Errorf("ApplyDeadZone(40) = %v, want 0", got)
	}
	if got := m.ApplyDeadZone(80); !almostEqual(got, 100) {
		t.Errorf("ApplyDeadZone(80) = %v, want 100", got)
	}
}

// TestSetDeadZones_Clamps tests independent clamping of each bound.
func TestSetDeadZones_Clamps(t *testing.T) {
	m := NewModel()
	m.SetDeadZones(-5, 150)

	dz := m.DeadZones()
	if !almostEqual(dz.Min, 0) || !almostEqual(dz.Max, 100) {
		t.Errorf("DeadZones() = %+v, want {0 100}", dz)
	}
}

// TestEvaluateCalibrated tests that dead-zone clipping happens before
// curve evaluation, so the curve sees the rescaled value.
func TestEvaluateCalibrated(t *testing.T) {
	m := NewModel()
	m.SetPoints([]ControlPoint{{0, 0}, {50, 80}, {100, 100}})
	m.SetDeadZones(20, 20)

	// raw 50 is the middle of the 20..80 band, so the curve sees 50.
	if got := m.EvaluateCalibrated(50); !almostEqual(got, 80) {
		t.Errorf("EvaluateCalibrated(50) = %v, want 80", got)
	}
	// Inside the lower margin the curve sees 0.
	if got := m.EvaluateCalibrated(15); !almostEqual(got, 0) {
		t.Errorf("EvaluateCalibrated(15) = %v, want 0", got)
	}
	// Inside the upper margin the curve sees 100.
	if got := m.EvaluateCalibrated(92); !almostEqual(got, 100) {
		t.Errorf("EvaluateCalibrated(92) = %v, want 100", got)
	}
}

// TestPoints_ReturnsCopy tests that callers cannot mutate the model
// through the slice returned by Points.
func TestPoints_ReturnsCopy(t *testing.T) {
	m := NewModel()
	pts := m.Points()
	pts[0] = ControlPoint{X: 99, Y: 99}

	if got := m.Points()[0]; !almostEqual(got.X, 0) {
		t.Errorf("model mutated through Points() copy: %+v", got)
	}
}
