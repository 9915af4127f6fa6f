package champ

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// squareHalfspaces is the unit square with the last two halfspaces playing
// the synthetic boundary role.
func squareHalfspaces() []Halfspace {
	return []Halfspace{
		{Normal: []float64{-1, 0}, Offset: 0},
		{Normal: []float64{1, 0}, Offset: -1},
		{Normal: []float64{0, -1}, Offset: 0},
		{Normal: []float64{0, 1}, Offset: -1},
	}
}

func TestInteriorPointUnitSquare(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	point, err := InteriorPoint(squareHalfspaces(), 2, rng)
	require.NoError(t, err)
	require.Len(t, point, 2)

	// The Chebyshev center of the square is its midpoint.
	require.InDelta(t, 0.5, point[0], 1e-6)
	require.InDelta(t, 0.5, point[1], 1e-6)
}

func TestInteriorPointStrictlySatisfiesSampledAndUnsampled(t *testing.T) {
	// More halfspaces than the sampling bound: tangents to the unit circle.
	// The returned point must be strictly inside every one of them, sampled
	// or not.
	const count = 120
	hs := make([]Halfspace, 0, count+2)
	for i := 0; i < count; i++ {
		theta := 2 * math.Pi * float64(i) / count
		hs = append(hs, Halfspace{Normal: []float64{math.Cos(theta), math.Sin(theta)}, Offset: -1})
	}
	hs = append(hs,
		Halfspace{Normal: []float64{1, 0}, Offset: -2},
		Halfspace{Normal: []float64{0, 1}, Offset: -2},
	)

	rng := rand.New(rand.NewSource(7))
	point, err := InteriorPoint(hs, 2, rng)
	require.NoError(t, err)
	for i, h := range hs {
		val := h.Offset
		for j, nj := range h.Normal {
			val += nj * point[j]
		}
		require.Negative(t, val, "halfspace %d not strictly satisfied", i)
	}
}

func TestInteriorPointEmptyIntersection(t *testing.T) {
	// x >= 0 together with x <= -1 has no interior; the Chebyshev LP still
	// solves (with negative radius), so the failure surfaces through the
	// strict post-check.
	hs := []Halfspace{
		{Normal: []float64{-1, 0}, Offset: 0},
		{Normal: []float64{1, 0}, Offset: 1},
		{Normal: []float64{0, -1}, Offset: 0},
		{Normal: []float64{0, 1}, Offset: -1},
	}
	rng := rand.New(rand.NewSource(1))
	_, err := InteriorPoint(hs, 2, rng)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrNotInterior))
}

func TestInteriorPointUnboundedRegion(t *testing.T) {
	// A quadrant admits arbitrarily large inscribed balls.
	hs := []Halfspace{
		{Normal: []float64{-1, 0}, Offset: 0},
		{Normal: []float64{0, -1}, Offset: 0},
	}
	rng := rand.New(rand.NewSource(1))
	_, err := InteriorPoint(hs, 1, rng)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrLPUnbounded))
}

func TestInteriorPointNeedsInteriorHalfspaces(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	_, err := InteriorPoint(squareHalfspaces(), 4, rng)
	require.Error(t, err)
	_, err = InteriorPoint(nil, 0, rng)
	require.Error(t, err)
}
