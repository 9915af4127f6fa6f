package champ

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/xueyiren/ModularityPruning/pkg/champ/internal/geom"
	"github.com/xueyiren/ModularityPruning/pkg/graph"
	"github.com/xueyiren/ModularityPruning/pkg/partition"
)

// ErrGeometryExhausted reports that the 3D halfspace intersection failed on
// every attempt. The sound remediation is to break the input partitions
// into smaller subsets, run CHAMP on each, and recombine the admissible
// sets with a further CHAMP pass; recombination must be explicit, so no
// automatic recovery is attempted here.
var ErrGeometryExhausted = errors.New(
	"champ: halfspace intersection failed after retry budget; " +
		"break the input partitions into smaller subsets and recombine with CHAMP")

// Domain is the convex polygon in the (gamma, omega) plane over which a
// partition dominates all other candidates.
type Domain struct {
	Polygon    [][2]float64
	Membership partition.Membership
}

// Result3D carries the outcome of a 3D CHAMP computation: the dominance
// domains on success, or the attempt count and terminal failure when the
// geometry gave out.
type Result3D struct {
	Domains  []Domain
	Attempts int
	Failure  error
}

// CHAMP3D computes the somewhere-dominant partitions of a multilayer graph
// over 0 <= gamma <= gammaF, 0 <= omega <= omegaF. The upper-envelope
// computation is numerically sensitive to near-degenerate input, so it is
// retried up to opts.MaxAttempts times before the structured failure in
// Result3D is returned alongside ErrGeometryExhausted.
func CHAMP3D(ml *graph.Multilayer, memberships []partition.Membership, gammaF, omegaF float64, opts Options) (*Result3D, error) {
	aHats, pHats, cHats, err := Coefficients3D(ml, memberships)
	if err != nil {
		return nil, err
	}
	if len(memberships) == 0 {
		return nil, fmt.Errorf("champ: no candidate partitions")
	}

	// Seed the computation with a strictly interior point of the lifted
	// halfspace intersection; an empty or malformed region surfaces here
	// as a fatal LP error rather than as a geometry failure to retry.
	hs := halfspacesFromCoefficients3D(aHats, pHats, cHats)
	hs = append(hs, boundaryHalfspaces3D(aHats, pHats, cHats, gammaF, omegaF)...)
	rng := rand.New(rand.NewSource(opts.Seed))
	if _, err := InteriorPoint(hs, 6, rng); err != nil {
		return nil, err
	}

	planes := make([]geom.Plane, len(memberships))
	for i := range memberships {
		planes[i] = geom.Plane{A: aHats[i], P: pHats[i], C: cHats[i]}
	}

	maxAttempts := opts.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultOptions().MaxAttempts
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		polygons, err := geom.DominancePolygons(planes, gammaF, omegaF)
		if err != nil {
			lastErr = err
			continue
		}

		indices := make([]int, 0, len(polygons))
		for i := range polygons {
			indices = append(indices, i)
		}
		sort.Ints(indices)

		domains := make([]Domain, 0, len(polygons))
		for _, i := range indices {
			domains = append(domains, Domain{Polygon: polygons[i], Membership: memberships[i]})
		}
		return &Result3D{Domains: domains, Attempts: attempt}, nil
	}

	result := &Result3D{Attempts: maxAttempts, Failure: lastErr}
	return result, fmt.Errorf("%w: %v", ErrGeometryExhausted, lastErr)
}

// boundaryHalfspaces3D closes the lifted (gamma, omega, Q) region with the
// six synthetic domain boundaries: the parameter rectangle and a quality
// slab strictly containing the envelope.
func boundaryHalfspaces3D(aHats, pHats, cHats []float64, gammaF, omegaF float64) []Halfspace {
	top, bottom := aHats[0], aHats[0]
	for i := range aHats {
		for _, corner := range [][2]float64{{0, 0}, {gammaF, 0}, {0, omegaF}, {gammaF, omegaF}} {
			q := aHats[i] - corner[0]*pHats[i] + corner[1]*cHats[i]
			if q > top {
				top = q
			}
			if q < bottom {
				bottom = q
			}
		}
	}
	return []Halfspace{
		{Normal: []float64{-1, 0, 0}, Offset: 0},
		{Normal: []float64{1, 0, 0}, Offset: -gammaF},
		{Normal: []float64{0, -1, 0}, Offset: 0},
		{Normal: []float64{0, 1, 0}, Offset: -omegaF},
		{Normal: []float64{0, 0, 1}, Offset: -(top + 1)},
		{Normal: []float64{0, 0, -1}, Offset: bottom - 1},
	}
}
