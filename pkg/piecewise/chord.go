package piecewise

// chord is the affine line slope·t + intercept through two samples of
// the source function.
type chord struct {
	slope     float64
	intercept float64
}

// chordThrough returns the chord passing through (x1, y1) and (x2, y2).
func chordThrough(x1, y1, x2, y2 float64) chord {
	slope := (y2 - y1) / (x2 - x1)

	return chord{
		slope:     slope,
		intercept: y1 - slope*x1,
	}
}

// eval evaluates the chord at t.
func (c chord) eval(t float64) float64 {
	return c.slope*t + c.intercept
}

// inverted returns the chord of the algebraic inverse line:
// y = m·x + b becomes x = y/m − b/m. The receiver must not have a
// zero slope.
func (c chord) inverted() chord {
	return chord{
		slope:     1 / c.slope,
		intercept: -c.intercept / c.slope,
	}
}
