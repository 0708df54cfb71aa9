package curve

// Evaluate maps a raw input percentage to a calibrated output percentage
// by piecewise-linear interpolation over the control points.
//
// With no points the input is returned unchanged. Inputs at or below the
// first point's X return that point's Y, inputs at or above the last
// point's X return the last point's Y. In between, the first bracketing
// segment in ascending X order is interpolated; a degenerate segment whose
// endpoints share an X returns the left endpoint's Y.
//
// Evaluate only reads the published snapshot and is safe to call
// concurrently with mutations.
func (m *Model) Evaluate(input float64) float64 {
	pts := m.current().points
	if len(pts) == 0 {
		return input
	}
	if input <= pts[0].X {
		return pts[0].Y
	}
	last := pts[len(pts)-1]
	if input >= last.X {
		return last.Y
	}
	for i := 0; i+1 < len(pts); i++ {
		p, q := pts[i], pts[i+1]
		if p.X <= input && input <= q.X {
			if p.X == q.X {
				return p.Y
			}
			return p.Y + (input-p.X)/(q.X-p.X)*(q.Y-p.Y)
		}
	}
	return last.Y
}

// ApplyDeadZone clips a raw percentage into the live band between the two
// dead zones and rescales the band to 0..100, so the full output range
// stays reachable outside the margins. Readings at or below the lower
// margin map to 0, at or above the upper margin to 100. If the margins
// meet or cross there is no live band left: anything at or below Min is 0,
// everything else is 100.
func (m *Model) ApplyDeadZone(raw float64) float64 {
	dz := m.current().deadZone
	lo := dz.Min
	hi := 100 - dz.Max
	if raw <= lo {
		return 0
	}
	if raw >= hi {
		return 100
	}
	return (raw - lo) / (hi - lo) * 100
}

// EvaluateCalibrated is the full per-tick mapping for one axis: dead-zone
// clipping first, then curve evaluation.
func (m *Model) EvaluateCalibrated(raw float64) float64 {
	return m.Evaluate(m.ApplyDeadZone(raw))
}
