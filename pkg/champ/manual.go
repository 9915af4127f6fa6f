package champ

import (
	"fmt"
	"math"

	"github.com/xueyiren/ModularityPruning/pkg/graph"
	"github.com/xueyiren/ModularityPruning/pkg/partition"
)

// Optimum records the best candidate partition at one sampled gamma.
type Optimum struct {
	Gamma      float64
	Quality    float64
	Membership partition.Membership
}

// ManualCHAMP inefficiently approximates the CHAMP set by evaluating every
// candidate's affine quality at iters evenly spaced gamma values in
// [gamma0, gammaF]. It exists as a slow cross-check of the exact geometry;
// a challenger must beat the incumbent by more than 1e-10 to displace it.
func ManualCHAMP(g *graph.Graph, memberships []partition.Membership, gamma0, gammaF float64, iters int) ([]Optimum, error) {
	if iters < 2 {
		return nil, fmt.Errorf("champ: need at least 2 gamma samples, got %d", iters)
	}
	aHats, pHats, err := Coefficients2D(g, memberships)
	if err != nil {
		return nil, err
	}

	optima := make([]Optimum, iters)
	step := (gammaF - gamma0) / float64(iters-1)
	for j := range optima {
		optima[j] = Optimum{Gamma: gamma0 + float64(j)*step, Quality: math.Inf(-1)}
	}

	for i := range memberships {
		for j := range optima {
			if q := aHats[i] - optima[j].Gamma*pHats[i]; q > optima[j].Quality+1e-10 {
				optima[j].Quality = q
				optima[j].Membership = memberships[i]
			}
		}
	}
	return optima, nil
}

// OptimaToRanges collapses consecutive optima sharing a partition into
// dominance ranges, in sweep order.
func OptimaToRanges(optima []Optimum) []Range {
	var ranges []Range
	for i := 0; i < len(optima); {
		start := optima[i]
		end := start.Gamma
		for i+1 < len(optima) && optima[i+1].Membership.Equal(start.Membership) {
			i++
			end = optima[i].Gamma
		}
		ranges = append(ranges, Range{Start: start.Gamma, End: end, Membership: start.Membership})
		i++
	}
	return ranges
}
