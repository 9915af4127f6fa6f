// Package champ implements the CHAMP partition-selection algorithm: from
// linear quality coefficients of candidate partitions it computes, via
// halfspace-intersection geometry, the region of resolution-parameter space
// over which each partition dominates all others.
package champ

import (
	"fmt"

	"github.com/xueyiren/ModularityPruning/pkg/graph"
	"github.com/xueyiren/ModularityPruning/pkg/louvain"
	"github.com/xueyiren/ModularityPruning/pkg/partition"
)

// Coefficients2D computes, for every membership, the pair (A, P) that makes
// its quality affine in the resolution parameter: Q(gamma) = A - gamma*P.
// A is the within-community edge weight (doubled for undirected graphs) and
// P the configuration-model expectation term.
func Coefficients2D(g *graph.Graph, memberships []partition.Membership) (aHats, pHats []float64, err error) {
	for i, m := range memberships {
		if len(m) != g.NumNodes {
			return nil, nil, fmt.Errorf("membership %d has length %d, want %d", i, len(m), g.NumNodes)
		}
	}

	aHats = make([]float64, len(memberships))
	pHats = make([]float64, len(memberships))
	for i, m := range memberships {
		aHats[i] = intraCommunityWeight(g, m)
		pHats[i] = nullModelTerm(g, m)
	}
	return aHats, pHats, nil
}

// Coefficients3D computes, for every membership, the triple (A, P, C) with
// Q(gamma, omega) = A - gamma*P + omega*C over the multilayer graph. When
// both the intralayer and interlayer graphs are directed, P is computed by
// restricting the partition to each layer's induced subgraph and using the
// partition's own quality decomposition at gamma=0 and gamma=1; this is
// slower than the closed form but sidesteps sign and degree subtleties in
// the fully directed case.
func Coefficients3D(ml *graph.Multilayer, memberships []partition.Membership) (aHats, pHats, cHats []float64, err error) {
	if err := ml.Validate(); err != nil {
		return nil, nil, nil, err
	}
	for i, m := range memberships {
		if len(m) != ml.Intralayer.NumNodes {
			return nil, nil, nil, fmt.Errorf("membership %d has length %d, want %d",
				i, len(m), ml.Intralayer.NumNodes)
		}
	}

	aHats = make([]float64, len(memberships))
	pHats = make([]float64, len(memberships))
	cHats = make([]float64, len(memberships))

	bothDirected := ml.Intralayer.Directed && ml.Interlayer.Directed
	for i, m := range memberships {
		aHats[i] = intraCommunityWeight(ml.Intralayer, m)
		cHats[i] = intraCommunityWeight(ml.Interlayer, m)

		if bothDirected {
			pHats[i], err = nullModelTermByDecomposition(ml, m)
			if err != nil {
				return nil, nil, nil, err
			}
		} else {
			pHats[i] = nullModelTermPerLayer(ml, m)
		}
	}
	return aHats, pHats, cHats, nil
}

// intraCommunityWeight is the A (or C) coefficient: summed weight of edges
// whose endpoints share a community, doubled when the graph is undirected
// since each such edge contributes to both directions of the quality sum.
func intraCommunityWeight(g *graph.Graph, m partition.Membership) float64 {
	var sum float64
	for _, e := range g.Edges {
		if m[e.Source] == m[e.Target] {
			sum += e.Weight
		}
	}
	if !g.Directed {
		sum *= 2
	}
	return sum
}

// nullModelTerm is the single-layer P coefficient.
func nullModelTerm(g *graph.Graph, m partition.Membership) float64 {
	w := g.TotalWeight()
	if w == 0 {
		return 0
	}
	if g.Directed {
		kOut := make(map[int]float64)
		kIn := make(map[int]float64)
		for v := 0; v < g.NumNodes; v++ {
			kOut[m[v]] += g.OutStrength(v)
			kIn[m[v]] += g.InStrength(v)
		}
		var sum float64
		for c, out := range kOut {
			sum += out * kIn[c]
		}
		return sum / w
	}
	k := make(map[int]float64)
	for v := 0; v < g.NumNodes; v++ {
		k[m[v]] += g.Strength(v)
	}
	var sum float64
	for _, kc := range k {
		sum += kc * kc
	}
	return sum / (2 * w)
}

// nullModelTermPerLayer computes the multilayer P coefficient directly from
// per-layer community strengths and per-layer total edge weight.
func nullModelTermPerLayer(ml *graph.Multilayer, m partition.Membership) float64 {
	g := ml.Intralayer
	numLayers := ml.NumLayers()
	layerWeight := ml.LayerWeights()

	if g.Directed {
		kOut := make([]map[int]float64, numLayers)
		kIn := make([]map[int]float64, numLayers)
		for t := 0; t < numLayers; t++ {
			kOut[t] = make(map[int]float64)
			kIn[t] = make(map[int]float64)
		}
		for _, e := range g.Edges {
			t := ml.Layers[e.Source]
			kOut[t][m[e.Source]] += e.Weight
			kIn[t][m[e.Target]] += e.Weight
		}
		var sum float64
		for t := 0; t < numLayers; t++ {
			if layerWeight[t] == 0 {
				continue
			}
			for c, out := range kOut[t] {
				sum += out * kIn[t][c] / layerWeight[t]
			}
		}
		return sum
	}

	k := make([]map[int]float64, numLayers)
	for t := range k {
		k[t] = make(map[int]float64)
	}
	for _, e := range g.Edges {
		t := ml.Layers[e.Source]
		k[t][m[e.Source]] += e.Weight
		k[t][m[e.Target]] += e.Weight
	}
	var sum float64
	for t := 0; t < numLayers; t++ {
		if layerWeight[t] == 0 {
			continue
		}
		for _, kc := range k[t] {
			sum += kc * kc / (2 * layerWeight[t])
		}
	}
	return sum
}

// nullModelTermByDecomposition isolates P per layer through the partition
// quality function: Q_layer(0) - Q_layer(1) leaves exactly the null term.
func nullModelTermByDecomposition(ml *graph.Multilayer, m partition.Membership) (float64, error) {
	var pHat float64
	for _, vertices := range ml.LayerVertices() {
		if len(vertices) == 0 {
			continue
		}
		sub, err := ml.Intralayer.Subgraph(vertices)
		if err != nil {
			return 0, err
		}
		subMembership := make(partition.Membership, len(vertices))
		for i, v := range vertices {
			subMembership[i] = m[v]
		}
		layerPart, err := louvain.NewPartition(sub, subMembership)
		if err != nil {
			return 0, err
		}
		pHat += layerPart.Quality(0) - layerPart.Quality(1)
	}
	return pHat, nil
}
