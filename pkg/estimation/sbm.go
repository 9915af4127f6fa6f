package estimation

import (
	"fmt"

	"github.com/xueyiren/ModularityPruning/pkg/graph"
	"github.com/xueyiren/ModularityPruning/pkg/partition"
)

// EstimateSingleLayerSBM produces closed-form estimates of the expected
// within-community (omegaIn) and between-community (omegaOut) edge weight
// of a degree-corrected planted-partition model, from a partition's
// community strengths and internal edge weight.
//
// A partition placing every vertex in one community drives the omegaOut
// denominator to zero; omegaOut is reported as zero in that case and the
// downstream gamma update classifies it as degenerate.
func EstimateSingleLayerSBM(g *graph.Graph, m partition.Membership) (omegaIn, omegaOut float64, err error) {
	if len(m) != g.NumNodes {
		return 0, 0, fmt.Errorf("estimation: membership length %d does not match vertex count %d",
			len(m), g.NumNodes)
	}
	totalWeight := g.TotalWeight()
	if totalWeight == 0 {
		return 0, 0, fmt.Errorf("estimation: graph has no edges")
	}

	var mIn float64
	kappa := make(map[int]float64)
	for _, e := range g.Edges {
		if m[e.Source] == m[e.Target] {
			mIn += e.Weight
		}
		kappa[m[e.Source]] += e.Weight
		kappa[m[e.Target]] += e.Weight
	}
	var sumKappaSqr float64
	for _, k := range kappa {
		sumKappaSqr += k * k
	}

	twoM := 2 * totalWeight
	inDenominator := sumKappaSqr / twoM
	if inDenominator == 0 {
		return 0, 0, fmt.Errorf("estimation: partition has no community strength")
	}
	omegaIn = 2 * mIn / inDenominator

	outDenominator := twoM - inDenominator
	if outDenominator == 0 {
		return omegaIn, 0, nil
	}
	omegaOut = (twoM - 2*mIn) / outDenominator
	return omegaIn, omegaOut, nil
}

// MultilayerSBMEstimate is the parameter estimate of a multilayer SBM fit:
// within/between-community edge propensities, the interlayer coupling
// probability, and the realized community count.
type MultilayerSBMEstimate struct {
	ThetaIn  float64
	ThetaOut float64
	P        float64
	K        int
}

// EstimateMultilayerSBM fits the multilayer SBM parameters to a partition.
// Theta estimates pool the per-layer community strengths; the coupling
// probability p derives from the model-specific label persistence across
// interlayer edges. A single-community partition pins p to 1, the omega
// limit as coupling goes to infinity.
func EstimateMultilayerSBM(ml *graph.Multilayer, m partition.Membership, model graph.Model) (*MultilayerSBMEstimate, error) {
	if !model.Valid() {
		return nil, fmt.Errorf("estimation: unknown topology model %q", model)
	}
	k, err := m.NumCommunities()
	if err != nil {
		return nil, fmt.Errorf("estimation: invalid membership: %w", err)
	}

	numLayers := ml.NumLayers()
	layerWeight := ml.LayerWeights()

	// Per-layer within-community weight and community strengths.
	mtIn := make([]float64, numLayers)
	kappa := make([]map[int]float64, numLayers)
	for t := range kappa {
		kappa[t] = make(map[int]float64)
	}
	for _, e := range ml.Intralayer.Edges {
		t := ml.Layers[e.Source]
		if m[e.Source] == m[e.Target] && ml.Layers[e.Source] == ml.Layers[e.Target] {
			mtIn[t] += e.Weight
		}
		kappa[t][m[e.Source]] += e.Weight
		kappa[t][m[e.Target]] += e.Weight
	}

	var inNumerator, inDenominator, outNumerator, outDenominator float64
	for t := 0; t < numLayers; t++ {
		if layerWeight[t] == 0 {
			continue
		}
		var sumKappaSqr float64
		for _, kt := range kappa[t] {
			sumKappaSqr += kt * kt
		}
		twoMt := 2 * layerWeight[t]
		inNumerator += 2 * mtIn[t]
		inDenominator += sumKappaSqr / twoMt
		outNumerator += twoMt - 2*mtIn[t]
		outDenominator += twoMt - sumKappaSqr/twoMt
	}
	if inDenominator == 0 {
		return nil, fmt.Errorf("estimation: partition has no community strength in any layer")
	}

	est := &MultilayerSBMEstimate{K: k}
	est.ThetaIn = inNumerator / inDenominator
	if outDenominator != 0 {
		est.ThetaOut = outNumerator / outDenominator
	}

	pers := persistence(ml, m, model)
	if k == 1 {
		// With one community p cannot be estimated; p = 1 matches the
		// omega -> infinity limit.
		est.P = 1.0
	} else {
		p := (float64(k)*pers - 1) / float64(k-1)
		if p < 0 {
			p = 0
		}
		est.P = p
	}
	return est, nil
}

// persistence is the fraction of interlayer couplings whose endpoints share
// a community, normalized per topology model.
func persistence(ml *graph.Multilayer, m partition.Membership, model graph.Model) float64 {
	T := ml.NumLayers()
	switch model {
	case graph.Multilevel:
		// Average per-layer persistence of incoming couplings.
		perLayer := make([]float64, T)
		for _, e := range ml.Interlayer.Edges {
			if m[e.Source] == m[e.Target] {
				perLayer[ml.Layers[e.Target]]++
			}
		}
		sizes := ml.LayerSizes()
		var sum float64
		for t := 0; t < T; t++ {
			if sizes[t] > 0 {
				sum += perLayer[t] / float64(sizes[t])
			}
		}
		return sum / float64(T-1)
	case graph.Multiplex:
		n := ml.Intralayer.NumNodes / T
		var same float64
		for _, e := range ml.Interlayer.Edges {
			if m[e.Source] == m[e.Target] {
				same++
			}
		}
		return same / float64(n*T*(T-1))
	default: // temporal
		n := ml.Intralayer.NumNodes / T
		var same float64
		for _, e := range ml.Interlayer.Edges {
			if m[e.Source] == m[e.Target] {
				same++
			}
		}
		return same / float64(n*(T-1))
	}
}
