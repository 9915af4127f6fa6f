package louvain

import (
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/xueyiren/ModularityPruning/pkg/graph"
	"github.com/xueyiren/ModularityPruning/pkg/partition"
)

// Louvain is a Louvain-style modularity optimizer with a resolution
// parameter: repeated local moves followed by community aggregation, until
// no level improves the partition.
type Louvain struct {
	MaxLevels     int
	MaxIterations int
	Seed          int64
	Logger        zerolog.Logger
}

// NewLouvain creates an optimizer with the given random seed and default
// level/iteration budgets.
func NewLouvain(seed int64) *Louvain {
	return &Louvain{
		MaxLevels:     10,
		MaxIterations: 100,
		Seed:          seed,
		Logger:        zerolog.Nop(),
	}
}

// workGraph is the internal symmetric adjacency representation used during
// optimization. Directed input edges are treated as symmetric support;
// quality reporting stays with the Partition type.
type workGraph struct {
	n        int
	adj      [][]int
	w        [][]float64
	deg      []float64
	selfLoop []float64
	total    float64
}

func newWorkGraph(g *graph.Graph) *workGraph {
	wg := &workGraph{
		n:        g.NumNodes,
		adj:      make([][]int, g.NumNodes),
		w:        make([][]float64, g.NumNodes),
		deg:      make([]float64, g.NumNodes),
		selfLoop: make([]float64, g.NumNodes),
	}
	for _, e := range g.Edges {
		wg.addEdge(e.Source, e.Target, e.Weight)
	}
	return wg
}

func (wg *workGraph) addEdge(u, v int, weight float64) {
	if u == v {
		wg.selfLoop[u] += weight
		wg.deg[u] += 2 * weight
		wg.total += weight
		return
	}
	wg.adj[u] = append(wg.adj[u], v)
	wg.w[u] = append(wg.w[u], weight)
	wg.adj[v] = append(wg.adj[v], u)
	wg.w[v] = append(wg.w[v], weight)
	wg.deg[u] += weight
	wg.deg[v] += weight
	wg.total += weight
}

// Optimize implements Optimizer.
func (l *Louvain) Optimize(g *graph.Graph, gamma float64) (*Partition, error) {
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("invalid graph: %w", err)
	}

	rng := rand.New(rand.NewSource(l.Seed))
	wg := newWorkGraph(g)

	// membership[v] tracks the community of original vertex v across levels.
	membership := make(partition.Membership, g.NumNodes)
	for v := range membership {
		membership[v] = v
	}

	for level := 0; level < l.MaxLevels; level++ {
		comm := make([]int, wg.n)
		for i := range comm {
			comm[i] = i
		}

		moves := l.localMoves(wg, comm, gamma, rng)
		next, mapping := aggregate(wg, comm)

		l.Logger.Debug().
			Int("level", level).
			Int("moves", moves).
			Int("communities", next.n).
			Msg("louvain level complete")

		for v := range membership {
			membership[v] = mapping[comm[membership[v]]]
		}
		if next.n == wg.n {
			break
		}
		wg = next
	}

	return NewPartition(g, partition.Canonical(membership))
}

// localMoves repeatedly sweeps all nodes in random order, moving each to the
// neighboring community with the best quality gain, until a full sweep makes
// no move or the iteration budget runs out. Returns the total move count.
func (l *Louvain) localMoves(wg *workGraph, comm []int, gamma float64, rng *rand.Rand) int {
	commDeg := make([]float64, wg.n)
	for i := range comm {
		commDeg[comm[i]] += wg.deg[i]
	}

	order := rng.Perm(wg.n)
	totalMoves := 0
	for iteration := 0; iteration < l.MaxIterations; iteration++ {
		moves := 0
		for _, node := range order {
			current := comm[node]

			// Weight from node to each adjacent community.
			toComm := map[int]float64{current: 0}
			for idx, nb := range wg.adj[node] {
				toComm[comm[nb]] += wg.w[node][idx]
			}

			// Remove node from its community before evaluating gains.
			commDeg[current] -= wg.deg[node]

			best, bestGain := current, l.gain(wg, toComm[current], commDeg[current], node, gamma)
			for c, weight := range toComm {
				if c == current {
					continue
				}
				if g := l.gain(wg, weight, commDeg[c], node, gamma); g > bestGain {
					best, bestGain = c, g
				}
			}

			commDeg[best] += wg.deg[node]
			if best != current {
				comm[node] = best
				moves++
			}
		}
		totalMoves += moves
		if moves == 0 {
			break
		}
	}
	return totalMoves
}

// gain is the quality change of joining a community, up to terms constant
// in the choice of community.
func (l *Louvain) gain(wg *workGraph, weightToComm, commDeg float64, node int, gamma float64) float64 {
	return weightToComm - gamma*wg.deg[node]*commDeg/(2*wg.total)
}

// aggregate collapses communities into supernodes, turning intra-community
// weight into self-loops. Returns the aggregated graph and the dense
// community index mapping.
func aggregate(wg *workGraph, comm []int) (*workGraph, []int) {
	mapping := make([]int, wg.n)
	for i := range mapping {
		mapping[i] = -1
	}
	next := 0
	for _, c := range comm {
		if mapping[c] == -1 {
			mapping[c] = next
			next++
		}
	}

	agg := &workGraph{
		n:        next,
		adj:      make([][]int, next),
		w:        make([][]float64, next),
		deg:      make([]float64, next),
		selfLoop: make([]float64, next),
	}

	cross := make([]map[int]float64, next)
	for i := range cross {
		cross[i] = make(map[int]float64)
	}
	for node := 0; node < wg.n; node++ {
		cu := mapping[comm[node]]
		agg.selfLoop[cu] += wg.selfLoop[node]
		for idx, nb := range wg.adj[node] {
			cv := mapping[comm[nb]]
			if cu == cv {
				// Each intra-community edge is seen from both endpoints.
				agg.selfLoop[cu] += wg.w[node][idx] / 2
			} else if cu < cv {
				cross[cu][cv] += wg.w[node][idx]
			}
		}
	}

	for cu, neighbors := range cross {
		for cv, weight := range neighbors {
			agg.adj[cu] = append(agg.adj[cu], cv)
			agg.w[cu] = append(agg.w[cu], weight)
			agg.adj[cv] = append(agg.adj[cv], cu)
			agg.w[cv] = append(agg.w[cv], weight)
			agg.deg[cu] += weight
			agg.deg[cv] += weight
			agg.total += weight
		}
	}
	for c := 0; c < next; c++ {
		agg.deg[c] += 2 * agg.selfLoop[c]
		agg.total += agg.selfLoop[c]
	}

	return agg, mapping
}
