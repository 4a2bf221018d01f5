package piecewise

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// floatTolerance bounds acceptable round-off in exactness assertions.
const floatTolerance = 1e-9

func double(x float64) float64 { return 2 * x }

func TestNewValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		fn       Func
		segments int
		lo, hi   float64
		wantErr  error
	}{
		{name: "nil_function", fn: nil, segments: 1, lo: 0, hi: 5, wantErr: ErrNilFunc},
		{name: "zero_segments", fn: double, segments: 0, lo: 0, hi: 5, wantErr: ErrInvalidPartition},
		{name: "negative_segments", fn: double, segments: -3, lo: 0, hi: 5, wantErr: ErrInvalidPartition},
		{name: "empty_interval", fn: double, segments: 1, lo: 5, hi: 5, wantErr: ErrInvalidPartition},
		{name: "reversed_interval", fn: double, segments: 1, lo: 5, hi: 0, wantErr: ErrInvalidPartition},
		{name: "nan_sample", fn: func(_ float64) float64 { return math.NaN() }, segments: 2, lo: 0, hi: 1, wantErr: ErrNonFiniteSample},
		{name: "inf_sample", fn: func(x float64) float64 { return 1 / x }, segments: 2, lo: 0, hi: 1, wantErr: ErrNonFiniteSample},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			inv, err := New(tt.fn, tt.segments, tt.lo, tt.hi)
			require.Nil(t, inv)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSingleSegmentLinear(t *testing.T) {
	t.Parallel()

	inv, err := New(double, 1, 0, 5)
	require.NoError(t, err)

	got, err := inv.Forward(1)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, got, floatTolerance)

	got, err = inv.Forward(0)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, got, floatTolerance)

	got, err = inv.Inverse(6)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, got, floatTolerance)
}

func TestMultiSegmentLinear(t *testing.T) {
	t.Parallel()

	inv, err := New(double, 5, 0, 5)
	require.NoError(t, err)

	got, err := inv.Forward(3.7)
	require.NoError(t, err)
	assert.InDelta(t, 7.4, got, floatTolerance)

	got, err = inv.Inverse(9.8)
	require.NoError(t, err)
	assert.InDelta(t, 4.9, got, floatTolerance)
}

func TestAffineExactness(t *testing.T) {
	t.Parallel()

	// A piecewise-linear approximation of an affine function is the
	// function itself, for any segment count.
	affine := func(x float64) float64 { return -1.5*x + 4 }

	for _, segments := range []int{1, 2, 7, 100} {
		inv, err := New(affine, segments, -3, 9)
		require.NoError(t, err)

		for _, x := range []float64{-3, -2.25, 0, 1.618, 8.999} {
			got, fwdErr := inv.Forward(x)
			require.NoError(t, fwdErr)
			assert.InDelta(t, affine(x), got, floatTolerance)

			back, invErr := inv.Inverse(affine(x))
			require.NoError(t, invErr)
			assert.InDelta(t, x, back, floatTolerance)
		}
	}
}

func TestEndpointAgreement(t *testing.T) {
	t.Parallel()

	fn := func(x float64) float64 { return x*x*x + 2*x }

	const segments = 8

	inv, err := New(fn, segments, 0, 2)
	require.NoError(t, err)

	lo, hi := inv.Interval()
	width := inv.Width()

	for i := range segments {
		x := lo + float64(i)*width

		got, fwdErr := inv.Forward(x)
		require.NoError(t, fwdErr)
		assert.InDelta(t, fn(x), got, floatTolerance, "knot %d", i)

		back, invErr := inv.Inverse(fn(x))
		require.NoError(t, invErr)
		assert.InDelta(t, x, back, floatTolerance, "knot %d", i)
	}

	assert.InDelta(t, 2.0, hi, floatTolerance)
}

func TestDomainBoundaries(t *testing.T) {
	t.Parallel()

	inv, err := New(double, 1, 0, 5)
	require.NoError(t, err)

	t.Run("left_endpoint_accepted", func(t *testing.T) {
		t.Parallel()

		_, fwdErr := inv.Forward(0)
		assert.NoError(t, fwdErr)
	})

	t.Run("right_endpoint_rejected", func(t *testing.T) {
		t.Parallel()

		_, fwdErr := inv.Forward(5.0)
		assert.ErrorIs(t, fwdErr, ErrOutOfDomain)
	})

	t.Run("below_interval_rejected", func(t *testing.T) {
		t.Parallel()

		_, fwdErr := inv.Forward(-0.0001)
		assert.ErrorIs(t, fwdErr, ErrOutOfDomain)
	})

	t.Run("above_interval_rejected", func(t *testing.T) {
		t.Parallel()

		_, fwdErr := inv.Forward(5.0001)
		assert.ErrorIs(t, fwdErr, ErrOutOfDomain)
	})
}

func TestRangeBoundaries(t *testing.T) {
	t.Parallel()

	// f(x) = 2x over [0, 5) covers y in [0, 10).
	inv, err := New(double, 5, 0, 5)
	require.NoError(t, err)

	t.Run("range_minimum_accepted", func(t *testing.T) {
		t.Parallel()

		got, invErr := inv.Inverse(0)
		require.NoError(t, invErr)
		assert.InDelta(t, 0.0, got, floatTolerance)
	})

	t.Run("range_maximum_rejected", func(t *testing.T) {
		t.Parallel()

		_, invErr := inv.Inverse(10)
		assert.ErrorIs(t, invErr, ErrOutOfRange)
	})

	t.Run("below_range_rejected", func(t *testing.T) {
		t.Parallel()

		_, invErr := inv.Inverse(-0.5)
		assert.ErrorIs(t, invErr, ErrOutOfRange)
	})

	t.Run("shared_boundary_deterministic", func(t *testing.T) {
		t.Parallel()

		// y = 2.0 sits on the boundary between the first two inverse
		// segments; both chords agree on x = 1.0 for a linear source.
		got, invErr := inv.Inverse(2.0)
		require.NoError(t, invErr)
		assert.InDelta(t, 1.0, got, floatTolerance)
	})
}

func TestDecreasingSource(t *testing.T) {
	t.Parallel()

	fn := func(x float64) float64 { return -2*x + 10 }

	inv, err := New(fn, 5, 0, 5)
	require.NoError(t, err)
	assert.True(t, inv.Monotone())

	got, err := inv.Forward(1.5)
	require.NoError(t, err)
	assert.InDelta(t, 7.0, got, floatTolerance)

	got, err = inv.Inverse(4.0)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, got, floatTolerance)

	// The range maximum f(lo) = 10 is excluded, mirroring the excluded
	// x = hi endpoint.
	_, err = inv.Inverse(10.0)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestZeroSlopeSegments(t *testing.T) {
	t.Parallel()

	constant := func(_ float64) float64 { return 3 }

	t.Run("strict_mode_rejects", func(t *testing.T) {
		t.Parallel()

		inv, err := New(constant, 4, 0, 1, WithStrictSlopes())
		require.Nil(t, inv)
		assert.ErrorIs(t, err, ErrZeroSlope)
	})

	t.Run("permissive_forward_works", func(t *testing.T) {
		t.Parallel()

		inv, err := New(constant, 4, 0, 1)
		require.NoError(t, err)

		got, fwdErr := inv.Forward(0.5)
		require.NoError(t, fwdErr)
		assert.InDelta(t, 3.0, got, floatTolerance)
	})

	t.Run("permissive_inverse_rejects", func(t *testing.T) {
		t.Parallel()

		inv, err := New(constant, 4, 0, 1)
		require.NoError(t, err)
		assert.False(t, inv.Monotone())

		_, invErr := inv.Inverse(3.0)
		assert.ErrorIs(t, invErr, ErrOutOfRange)
	})
}

func TestInverseSearchMatchesScan(t *testing.T) {
	t.Parallel()

	sources := []struct {
		name string
		fn   Func
	}{
		{name: "increasing", fn: func(x float64) float64 { return x*x*x + 2*x }},
		{name: "decreasing", fn: func(x float64) float64 { return math.Exp(-x) }},
	}

	for _, src := range sources {
		t.Run(src.name, func(t *testing.T) {
			t.Parallel()

			const segments = 16

			inv, err := New(src.fn, segments, 0, 2)
			require.NoError(t, err)
			require.True(t, inv.Monotone())

			segs := inv.Segments()

			// Probe every segment boundary (the shared knots included)
			// plus an interior point per segment.
			ys := make([]float64, 0, 3*segments)
			for _, seg := range segs {
				ys = append(ys, seg.YLo, (seg.YLo+seg.YHi)/2, seg.YHi)
			}

			for _, y := range ys {
				want, found := scanInverse(segs, y)

				got, invErr := inv.Inverse(y)
				if !found {
					assert.ErrorIs(t, invErr, ErrOutOfRange, "y=%v", y)

					continue
				}

				require.NoError(t, invErr, "y=%v", y)
				assert.Equal(t, want, got, "y=%v", y) //nolint:testifylint // bit-identical by contract
			}
		})
	}
}

// scanInverse is a reference first-match scan over the segment
// snapshot, reproducing the inverted-chord arithmetic exactly.
func scanInverse(segs []Segment, y float64) (float64, bool) {
	for _, seg := range segs {
		if !seg.Invertible || y < seg.YLo || y >= seg.YHi {
			continue
		}

		invSlope := 1 / seg.Slope
		invIntercept := -seg.Intercept / seg.Slope

		return invSlope*y + invIntercept, true
	}

	return 0, false
}

func TestPlateauNeighborWins(t *testing.T) {
	t.Parallel()

	// Increasing source with a flat plateau over [1, 2]; knots at
	// 0, 1, 2, 3 sample to 0, 1, 1, 2.
	fn := func(x float64) float64 {
		switch {
		case x <= 1:
			return x
		case x <= 2:
			return 1
		default:
			return x - 1
		}
	}

	inv, err := New(fn, 3, 0, 3)
	require.NoError(t, err)
	assert.False(t, inv.Monotone())

	// y equal to the plateau value skips the uninvertible flat segment
	// and resolves on its invertible neighbor.
	got, err := inv.Inverse(1.0)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, got, floatTolerance)

	// The plateau still serves forward lookups.
	flat, err := inv.Forward(1.5)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, flat, floatTolerance)
}

func TestNonMonotoneFirstMatch(t *testing.T) {
	t.Parallel()

	square := func(x float64) float64 { return x * x }

	inv, err := New(square, 100, -2, 2)
	require.NoError(t, err)
	assert.False(t, inv.Monotone())

	// Two branches of x² cover y = 1.0; the first match in segment
	// index order lies on the descending branch near x = -1.
	got, err := inv.Inverse(1.0)
	require.NoError(t, err)
	assert.Negative(t, got)
	assert.InDelta(t, -1.0, got, 1e-6)

	again, err := inv.Inverse(1.0)
	require.NoError(t, err)
	assert.Equal(t, got, again) //nolint:testifylint // bit-identical by contract
}

func TestDeterminism(t *testing.T) {
	t.Parallel()

	inv, err := New(math.Sin, 37, 0, 1.5)
	require.NoError(t, err)

	first, err := inv.Forward(0.7331)
	require.NoError(t, err)

	for range 10 {
		got, fwdErr := inv.Forward(0.7331)
		require.NoError(t, fwdErr)
		assert.Equal(t, first, got) //nolint:testifylint // bit-identical by contract
	}
}

func TestRefinementConvergence(t *testing.T) {
	t.Parallel()

	const probes = 2048

	var prev float64

	for i, segments := range []int{5, 10, 20, 40, 80} {
		inv, err := New(math.Sin, segments, 0, 1.5)
		require.NoError(t, err)

		worst := inv.MaxAbsError(probes)
		assert.Positive(t, worst)

		if i > 0 {
			assert.Less(t, worst, prev, "error must shrink with refinement at n=%d", segments)
		}

		prev = worst
	}

	// Chord error is O(1/n²) for smooth functions: quadrupling the
	// segment count should cut the error by far more than half.
	coarse, err := New(math.Sin, 10, 0, 1.5)
	require.NoError(t, err)

	fine, err := New(math.Sin, 40, 0, 1.5)
	require.NoError(t, err)

	assert.Less(t, fine.MaxAbsError(probes), coarse.MaxAbsError(probes)/8)
}

func TestSegmentsSnapshot(t *testing.T) {
	t.Parallel()

	inv, err := New(double, 4, 0, 4)
	require.NoError(t, err)

	segs := inv.Segments()
	require.Len(t, segs, 4)
	assert.Equal(t, 4, inv.SegmentCount())

	for i, seg := range segs {
		assert.InDelta(t, float64(i), seg.XLo, floatTolerance)
		assert.InDelta(t, float64(i+1), seg.XHi, floatTolerance)
		assert.InDelta(t, 2*float64(i), seg.YLo, floatTolerance)
		assert.InDelta(t, 2*float64(i+1), seg.YHi, floatTolerance)
		assert.InDelta(t, 2.0, seg.Slope, floatTolerance)
		assert.InDelta(t, 0.0, seg.Intercept, floatTolerance)
		assert.True(t, seg.Invertible)
	}
}

func TestAccessors(t *testing.T) {
	t.Parallel()

	inv, err := New(double, 8, 1, 5)
	require.NoError(t, err)

	lo, hi := inv.Interval()
	assert.InDelta(t, 1.0, lo, floatTolerance)
	assert.InDelta(t, 5.0, hi, floatTolerance)
	assert.InDelta(t, 0.5, inv.Width(), floatTolerance)
	assert.True(t, inv.Monotone())
	require.NotNil(t, inv.Source())
	assert.InDelta(t, 6.0, inv.Source()(3), floatTolerance)
}

func TestMaxAbsError(t *testing.T) {
	t.Parallel()

	inv, err := New(double, 3, 0, 3)
	require.NoError(t, err)

	// Exact for affine sources, regardless of probe count.
	assert.InDelta(t, 0.0, inv.MaxAbsError(500), floatTolerance)
	assert.InDelta(t, 0.0, inv.MaxAbsError(0), floatTolerance)
}
