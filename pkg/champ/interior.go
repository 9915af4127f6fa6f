package champ

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

var (
	// ErrLPInfeasible reports that the interior-point linear program has no
	// feasible point: the halfspace intersection is empty.
	ErrLPInfeasible = errors.New("champ: interior point LP is infeasible")

	// ErrLPUnbounded reports an unbounded interior-point linear program,
	// which indicates missing or malformed boundary halfspaces.
	ErrLPUnbounded = errors.New("champ: interior point LP is unbounded")

	// ErrLPFailed reports any other LP solver failure.
	ErrLPFailed = errors.New("champ: interior point LP failed")

	// ErrNotInterior reports that the LP solution does not strictly satisfy
	// every original halfspace, meaning the constraint subsample was not
	// representative of the full set.
	ErrNotInterior = errors.New("champ: interior point does not strictly satisfy all halfspaces")
)

// maxSampledHalfspaces bounds how many non-boundary halfspaces enter the
// Chebyshev-center LP. Using every halfspace is slow and numerically
// fragile for large candidate sets.
const maxSampledHalfspaces = 50

// InteriorPoint finds a point strictly interior to the intersection of hs,
// to seed the exact intersection computation. The last numBoundary
// halfspaces are synthetic domain boundaries and always participate; up to
// 50 of the remaining partition-quality halfspaces are sampled uniformly
// without replacement. The Chebyshev center of the sampled set is computed
// with a linear program maximizing the minimum distance to the sampled
// hyperplanes, and the result is verified against every original halfspace.
func InteriorPoint(hs []Halfspace, numBoundary int, rng *rand.Rand) ([]float64, error) {
	if len(hs) == 0 || numBoundary >= len(hs) {
		return nil, fmt.Errorf("champ: need interior halfspaces besides the %d boundaries, got %d total",
			numBoundary, len(hs))
	}
	dim := len(hs[0].Normal)

	interior := hs[:len(hs)-numBoundary]
	boundaries := hs[len(hs)-numBoundary:]

	sampleLen := len(interior)
	if sampleLen > maxSampledHalfspaces {
		sampleLen = maxSampledHalfspaces
	}
	sampled := make([]Halfspace, 0, sampleLen+numBoundary)
	for _, idx := range rng.Perm(len(interior))[:sampleLen] {
		sampled = append(sampled, interior[idx])
	}
	sampled = append(sampled, boundaries...)

	// Chebyshev-center LP over (x, r): maximize r subject to
	// dot(n_i, x) + ||n_i||*r <= -offset_i.
	nRows := len(sampled)
	g := mat.NewDense(nRows, dim+1, nil)
	h := make([]float64, nRows)
	for i, hsp := range sampled {
		var norm float64
		for j, nj := range hsp.Normal {
			g.Set(i, j, nj)
			norm += nj * nj
		}
		g.Set(i, dim, math.Sqrt(norm))
		h[i] = -hsp.Offset
	}
	c := make([]float64, dim+1)
	c[dim] = -1

	cStd, aStd, bStd := lp.Convert(c, g, h, nil, nil)
	_, xStd, err := lp.Simplex(cStd, aStd, bStd, 1e-10, nil)
	switch {
	case err == nil:
	case errors.Is(err, lp.ErrInfeasible):
		return nil, fmt.Errorf("%w: %v", ErrLPInfeasible, err)
	case errors.Is(err, lp.ErrUnbounded):
		return nil, fmt.Errorf("%w: %v", ErrLPUnbounded, err)
	default:
		return nil, fmt.Errorf("%w: %v", ErrLPFailed, err)
	}

	// Convert splits each free variable x_i into x_i^+ - x_i^-.
	point := make([]float64, dim)
	for i := 0; i < dim; i++ {
		point[i] = xStd[i] - xStd[dim+1+i]
	}

	// The point must be strictly interior to every original halfspace, not
	// just the sampled ones.
	for i, hsp := range hs {
		val := hsp.Offset
		for j, nj := range hsp.Normal {
			val += nj * point[j]
		}
		if val >= 0 {
			return nil, fmt.Errorf("%w: halfspace %d has slack %g", ErrNotInterior, i, val)
		}
	}
	return point, nil
}
