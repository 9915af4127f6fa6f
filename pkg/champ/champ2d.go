package champ

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/xueyiren/ModularityPruning/pkg/champ/internal/geom"
	"github.com/xueyiren/ModularityPruning/pkg/graph"
	"github.com/xueyiren/ModularityPruning/pkg/partition"
)

// Options tunes the CHAMP geometry routines.
type Options struct {
	// Seed drives the halfspace subsampling in the interior-point solver.
	Seed int64
	// MaxAttempts bounds retries of the 3D halfspace intersection.
	MaxAttempts int
}

// DefaultOptions returns the standard CHAMP settings.
func DefaultOptions() Options {
	return Options{Seed: 1, MaxAttempts: 9}
}

// Range is the closed gamma interval over which a partition dominates all
// other candidates.
type Range struct {
	Start      float64
	End        float64
	Membership partition.Membership
}

// CHAMP2D computes the set of somewhere-dominant partitions over
// gamma0 <= gamma <= gammaF. Each surviving partition is returned with the
// exact interval on which its quality is the pointwise maximum; partitions
// dominated everywhere are dropped. Results are sorted by interval start.
func CHAMP2D(g *graph.Graph, memberships []partition.Membership, gamma0, gammaF float64, opts Options) ([]Range, error) {
	if gammaF <= gamma0 {
		return nil, fmt.Errorf("champ: empty gamma range [%g, %g]", gamma0, gammaF)
	}
	aHats, pHats, err := Coefficients2D(g, memberships)
	if err != nil {
		return nil, err
	}
	numPartitions := len(memberships)
	if numPartitions == 0 {
		return nil, fmt.Errorf("champ: no candidate partitions")
	}

	// Quality ceiling at gamma0 and the right edge of the sweep close the
	// intersection; the left edge is implied by the ceiling, since every
	// quality line only rises as gamma decreases.
	top := aHats[0] - pHats[0]*gamma0
	for i := 1; i < numPartitions; i++ {
		if q := aHats[i] - pHats[i]*gamma0; q > top {
			top = q
		}
	}
	hs := HalfspacesFromCoefficients2D(aHats, pHats)
	hs = append(hs,
		Halfspace{Normal: []float64{0, 1}, Offset: -top},
		Halfspace{Normal: []float64{1, 0}, Offset: -gammaF},
	)

	rng := rand.New(rand.NewSource(opts.Seed))
	interior, err := InteriorPoint(hs, 2, rng)
	if err != nil {
		return nil, err
	}

	intersection, err := geom.HalfspaceIntersection2D(toGeom2D(hs), [2]float64{interior[0], interior[1]})
	if err != nil {
		return nil, fmt.Errorf("champ: 2D halfspace intersection: %w", err)
	}

	// Regroup intersection vertices by the partition halfspace they are a
	// facet of. Partitions absent from the final intersection never
	// dominate and receive no range.
	vertices := make(map[int][][2]float64)
	for k, pair := range intersection.FacetPairs {
		for _, i := range pair {
			if i < numPartitions {
				vertices[i] = append(vertices[i], intersection.Vertices[k])
			}
		}
	}

	ranges := make([]Range, 0, len(vertices))
	for i, vs := range vertices {
		if len(vs) != 2 {
			return nil, fmt.Errorf("champ: partition %d bounds %d intersection vertices, want 2", i, len(vs))
		}
		start, end := vs[0][0], vs[1][0]
		if start > end {
			start, end = end, start
		}
		ranges = append(ranges, Range{Start: start, End: end, Membership: memberships[i]})
	}
	sort.Slice(ranges, func(a, b int) bool { return ranges[a].Start < ranges[b].Start })
	return ranges, nil
}
