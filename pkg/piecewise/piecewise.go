// Package piecewise approximates a scalar function on a bounded
// interval with equal-width linear chords and answers both forward
// (x → y) and inverse (y → x) queries against that approximation.
//
// The motivating use is inverting a Hall-effect sensor's
// flux-density-versus-distance equation: the flux has a closed form in
// the distance, but the distance has no closed form in the flux. An
// Inverter samples the source function once per knot, stores the chord
// through each pair of adjacent samples together with its algebraic
// inverse, and thereafter answers Forward in O(1) by index arithmetic
// on the uniform partition and Inverse in O(log n) when the sampled
// chords are strictly monotone (O(n) first-match scan otherwise).
//
// An Inverter is immutable after construction and safe for concurrent
// use. All chord math is carried out in float64; the shallow chord
// slopes that arise from flat source functions make single precision
// unsafe here.
package piecewise

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Func is a caller-supplied scalar function. It must be pure, total on
// the approximated interval, and return finite values; it is evaluated
// only during construction.
type Func func(x float64) float64

// Sentinel errors for construction and lookups.
var (
	// ErrNilFunc is returned when the source function is nil.
	ErrNilFunc = errors.New("piecewise: source function must not be nil")

	// ErrInvalidPartition is returned when the segment count is not
	// positive or the interval is empty.
	ErrInvalidPartition = errors.New("piecewise: segment count must be positive and interval non-empty")

	// ErrNonFiniteSample is returned when the source function produces
	// NaN or an infinity at a knot.
	ErrNonFiniteSample = errors.New("piecewise: source function returned a non-finite sample")

	// ErrZeroSlope is returned in strict mode when two adjacent samples
	// are equal, making the chord uninvertible.
	ErrZeroSlope = errors.New("piecewise: zero-slope chord is not invertible")

	// ErrOutOfDomain is returned by Forward when x falls outside the
	// half-open approximated interval [lo, hi).
	ErrOutOfDomain = errors.New("piecewise: x outside the approximated interval")

	// ErrOutOfRange is returned by Inverse when no inverse segment
	// covers y.
	ErrOutOfRange = errors.New("piecewise: y outside the approximated range")
)

// options holds construction settings.
type options struct {
	strictSlopes bool
}

// Option adjusts construction behavior.
type Option func(*options)

// WithStrictSlopes makes construction fail with ErrZeroSlope when two
// adjacent samples are equal. The default keeps such segments for
// forward lookups and marks them uninvertible; Inverse skips them.
func WithStrictSlopes() Option {
	return func(o *options) {
		o.strictSlopes = true
	}
}

// inverseSegment maps a half-open y-range [lo, hi) to the inverted
// chord covering it. Uninvertible segments come from zero-slope chords
// and are never selected by Inverse.
type inverseSegment struct {
	lo, hi     float64
	line       chord
	invertible bool
}

// Inverter is a piecewise-linear approximation of a source function
// together with the segment-wise inverse of that approximation.
type Inverter struct {
	fn    Func
	lo    float64
	hi    float64
	width float64

	// forward[i] is the chord over [lo+i·width, lo+(i+1)·width).
	forward []chord
	// inverse[i] is the inverted chord of forward[i], keyed by y-range.
	inverse []inverseSegment

	// monotone is true when every chord slope is nonzero and shares one
	// sign; it enables binary search in Inverse.
	monotone   bool
	increasing bool
}

// New builds an Inverter for fn over [lo, hi) using the given number of
// equal-width segments. fn is evaluated once per knot (segments+1
// calls). Construction is fail-fast: no partial Inverter is returned
// on error.
func New(fn Func, segments int, lo, hi float64, opts ...Option) (*Inverter, error) {
	if fn == nil {
		return nil, ErrNilFunc
	}

	if segments < 1 || lo >= hi {
		return nil, fmt.Errorf("%w: segments=%d interval=[%v, %v]", ErrInvalidPartition, segments, lo, hi)
	}

	var cfg options

	for _, opt := range opts {
		opt(&cfg)
	}

	width := (hi - lo) / float64(segments)

	knots, err := sampleKnots(fn, segments, lo, width)
	if err != nil {
		return nil, err
	}

	inv := &Inverter{
		fn:      fn,
		lo:      lo,
		hi:      hi,
		width:   width,
		forward: make([]chord, 0, segments),
		inverse: make([]inverseSegment, 0, segments),
	}

	buildErr := inv.buildTables(knots, cfg)
	if buildErr != nil {
		return nil, buildErr
	}

	return inv, nil
}

// sampleKnots evaluates fn at every knot of the uniform partition.
// Each xᵢ is computed as lo + i·width with a fresh multiplication to
// bound floating-point drift across the partition.
func sampleKnots(fn Func, segments int, lo, width float64) ([]float64, error) {
	knots := make([]float64, segments+1)

	for i := range knots {
		x := lo + float64(i)*width

		y := fn(x)
		if math.IsNaN(y) || math.IsInf(y, 0) {
			return nil, fmt.Errorf("%w: f(%v) = %v", ErrNonFiniteSample, x, y)
		}

		knots[i] = y
	}

	return knots, nil
}

// buildTables constructs the forward and inverse tables in lockstep
// from the sampled knots.
func (inv *Inverter) buildTables(knots []float64, cfg options) error {
	segments := len(knots) - 1
	direction := 0
	monotone := true

	for i := range segments {
		x1 := inv.lo + float64(i)*inv.width
		x2 := inv.lo + float64(i+1)*inv.width
		y1, y2 := knots[i], knots[i+1]

		line := chordThrough(x1, y1, x2, y2)
		inv.forward = append(inv.forward, line)

		if line.slope == 0 {
			if cfg.strictSlopes {
				return fmt.Errorf("%w: segment %d over [%v, %v)", ErrZeroSlope, i, x1, x2)
			}

			monotone = false

			inv.inverse = append(inv.inverse, inverseSegment{lo: y1, hi: y2})

			continue
		}

		segDir := 1
		if line.slope < 0 {
			segDir = -1
		}

		if direction == 0 {
			direction = segDir
		} else if direction != segDir {
			monotone = false
		}

		yLo, yHi := y1, y2
		if yLo > yHi {
			yLo, yHi = yHi, yLo
		}

		inv.inverse = append(inv.inverse, inverseSegment{
			lo:         yLo,
			hi:         yHi,
			line:       line.inverted(),
			invertible: true,
		})
	}

	inv.monotone = monotone && direction != 0
	inv.increasing = direction > 0

	return nil
}

// Forward evaluates the approximation at x. The partition is
// left-closed/right-open: x == lo is accepted, x == hi is rejected
// with ErrOutOfDomain.
func (inv *Inverter) Forward(x float64) (float64, error) {
	if x < inv.lo || x >= inv.hi {
		return 0, fmt.Errorf("%w: %v not in [%v, %v)", ErrOutOfDomain, x, inv.lo, inv.hi)
	}

	// Uniform partition: the covering segment follows from index
	// arithmetic, clamped against round-off at the right edge.
	i := int((x - inv.lo) / inv.width)
	if i >= len(inv.forward) {
		i = len(inv.forward) - 1
	}

	return inv.forward[i].eval(x), nil
}

// Inverse evaluates the approximated inverse at y. When several
// inverse segments cover y (a non-monotone source), the segment with
// the lowest index wins; the choice is deterministic across runs.
// Containment is left-closed/right-open on each segment's y-range. A y
// on the boundary shared by two adjacent chords lies exactly on both
// chords, so which of the two is selected does not change the returned
// x.
func (inv *Inverter) Inverse(y float64) (float64, error) {
	seg, ok := inv.lookupInverse(y)
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrOutOfRange, y)
	}

	return seg.line.eval(y), nil
}

// lookupInverse locates the inverse segment covering y.
func (inv *Inverter) lookupInverse(y float64) (inverseSegment, bool) {
	if inv.monotone {
		return inv.searchInverse(y)
	}

	// First match in index order. A linear scan is required here: with
	// a non-monotone source the y-ranges may overlap or leave gaps, so
	// no ordering across segments can be assumed.
	for _, seg := range inv.inverse {
		if seg.invertible && y >= seg.lo && y < seg.hi {
			return seg, true
		}
	}

	return inverseSegment{}, false
}

// searchInverse binary-searches the inverse table. Valid only for a
// strictly monotone chord sequence, where the y-ranges are disjoint,
// contiguous, and ordered by segment index; the unique covering
// segment is then also the one a first-match scan would select.
func (inv *Inverter) searchInverse(y float64) (inverseSegment, bool) {
	count := len(inv.inverse)

	var i int

	if inv.increasing {
		i = sort.Search(count, func(k int) bool { return y < inv.inverse[k].hi })
	} else {
		i = sort.Search(count, func(k int) bool { return y >= inv.inverse[k].lo })
	}

	if i == count {
		return inverseSegment{}, false
	}

	seg := inv.inverse[i]
	if y < seg.lo || y >= seg.hi {
		return inverseSegment{}, false
	}

	return seg, true
}

// Segment describes one chord of the approximation: its x-bounds on
// the partition, the y-bounds the chord spans, the chord coefficients,
// and whether the segment participates in inverse lookups.
type Segment struct {
	XLo, XHi   float64
	YLo, YHi   float64
	Slope      float64
	Intercept  float64
	Invertible bool
}

// Segments returns a snapshot of all segments in partition order.
func (inv *Inverter) Segments() []Segment {
	segs := make([]Segment, len(inv.forward))

	for i, line := range inv.forward {
		segs[i] = Segment{
			XLo:        inv.lo + float64(i)*inv.width,
			XHi:        inv.lo + float64(i+1)*inv.width,
			YLo:        inv.inverse[i].lo,
			YHi:        inv.inverse[i].hi,
			Slope:      line.slope,
			Intercept:  line.intercept,
			Invertible: inv.inverse[i].invertible,
		}
	}

	return segs
}

// SegmentCount returns the number of segments in the partition.
func (inv *Inverter) SegmentCount() int {
	return len(inv.forward)
}

// Interval returns the approximated interval [lo, hi).
func (inv *Inverter) Interval() (lo, hi float64) {
	return inv.lo, inv.hi
}

// Width returns the uniform segment width.
func (inv *Inverter) Width() float64 {
	return inv.width
}

// Monotone reports whether the sampled chords are strictly monotone,
// which also means Inverse uses the binary-search fast path.
func (inv *Inverter) Monotone() bool {
	return inv.monotone
}

// Source returns the function the Inverter was built from.
func (inv *Inverter) Source() Func {
	return inv.fn
}

// MaxAbsError returns the maximum absolute difference between the
// approximation and the source function over a uniform grid of probes
// inside [lo, hi). It evaluates the source function once per probe.
// probes < 1 yields 0.
func (inv *Inverter) MaxAbsError(probes int) float64 {
	if probes < 1 {
		return 0
	}

	step := (inv.hi - inv.lo) / float64(probes)

	var worst float64

	for i := range probes {
		x := inv.lo + float64(i)*step

		approx, err := inv.Forward(x)
		if err != nil {
			continue
		}

		diff := math.Abs(approx - inv.fn(x))
		if diff > worst {
			worst = diff
		}
	}

	return worst
}
