package louvain

import (
	"fmt"
	"math/rand"

	"github.com/xueyiren/ModularityPruning/pkg/graph"
	"github.com/xueyiren/ModularityPruning/pkg/partition"
)

// OptimizeMultilayer implements Optimizer. It maximizes the combined
// objective
//
//	sum_t [ Q_t(gamma) ] + omega * C
//
// by local moves over the shared vertex set: each layer contributes a
// configuration-model term with its own total edge weight, and interlayer
// edges reward co-assignment with weight omega. Aggregation is not applied
// across layers; local moves alone are a valid (if weaker) optimizer for
// the collaborator contract.
func (l *Louvain) OptimizeMultilayer(ml *graph.Multilayer, gamma, omega float64) (*MultilayerPartition, error) {
	if err := ml.Validate(); err != nil {
		return nil, fmt.Errorf("invalid multilayer graph: %w", err)
	}

	n := ml.Intralayer.NumNodes
	intra := newWorkGraph(ml.Intralayer)
	inter := newWorkGraph(ml.Interlayer)
	layerWeight := ml.LayerWeights()
	numLayers := ml.NumLayers()

	comm := make([]int, n)
	for i := range comm {
		comm[i] = i
	}

	// Per-community, per-layer strength sums for the null term.
	commLayerDeg := make([][]float64, n)
	for i := range commLayerDeg {
		commLayerDeg[i] = make([]float64, numLayers)
		commLayerDeg[i][ml.Layers[i]] = intra.deg[i]
	}

	rng := rand.New(rand.NewSource(l.Seed))
	order := rng.Perm(n)

	for iteration := 0; iteration < l.MaxIterations; iteration++ {
		moves := 0
		for _, node := range order {
			layer := ml.Layers[node]
			current := comm[node]

			intraToComm := map[int]float64{current: 0}
			for idx, nb := range intra.adj[node] {
				intraToComm[comm[nb]] += intra.w[node][idx]
			}
			interToComm := make(map[int]float64)
			for idx, nb := range inter.adj[node] {
				interToComm[comm[nb]] += inter.w[node][idx]
				if _, ok := intraToComm[comm[nb]]; !ok {
					intraToComm[comm[nb]] = 0
				}
			}

			commLayerDeg[current][layer] -= intra.deg[node]

			gain := func(c int) float64 {
				g := intraToComm[c]
				if layerWeight[layer] > 0 {
					g -= gamma * intra.deg[node] * commLayerDeg[c][layer] / (2 * layerWeight[layer])
				}
				return g + omega*interToComm[c]
			}

			best, bestGain := current, gain(current)
			for c := range intraToComm {
				if c == current {
					continue
				}
				if g := gain(c); g > bestGain {
					best, bestGain = c, g
				}
			}

			commLayerDeg[best][layer] += intra.deg[node]
			if best != current {
				comm[node] = best
				moves++
			}
		}
		if moves == 0 {
			break
		}
	}

	return NewMultilayerPartition(ml, partition.Canonical(comm))
}
