package louvain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xueyiren/ModularityPruning/pkg/graph"
	"github.com/xueyiren/ModularityPruning/pkg/partition"
)

// twoCliques builds two complete graphs on cliqueSize vertices joined by a
// single bridge edge between vertices 0 and cliqueSize.
func twoCliques(t *testing.T, cliqueSize int) *graph.Graph {
	t.Helper()
	g := graph.NewGraph(2*cliqueSize, false)
	for _, base := range []int{0, cliqueSize} {
		for i := 0; i < cliqueSize; i++ {
			for j := i + 1; j < cliqueSize; j++ {
				require.NoError(t, g.AddUnweightedEdge(base+i, base+j))
			}
		}
	}
	require.NoError(t, g.AddUnweightedEdge(0, cliqueSize))
	return g
}

func TestPartitionQualityUndirected(t *testing.T) {
	// 4-cycle split into two adjacent pairs: A = 2*2, P = (4^2+4^2)/(2*4).
	g := graph.NewGraph(4, false)
	require.NoError(t, g.AddUnweightedEdge(0, 1))
	require.NoError(t, g.AddUnweightedEdge(1, 2))
	require.NoError(t, g.AddUnweightedEdge(2, 3))
	require.NoError(t, g.AddUnweightedEdge(3, 0))

	p, err := NewPartition(g, partition.Membership{0, 0, 1, 1})
	require.NoError(t, err)
	require.InDelta(t, 4.0, p.Quality(0), 1e-12)
	require.InDelta(t, 0.0, p.Quality(1), 1e-12)
	require.InDelta(t, 2.0, p.Quality(0.5), 1e-12)
	require.Equal(t, 2, p.NumCommunities())
}

func TestPartitionQualityDirected(t *testing.T) {
	g := graph.NewGraph(3, true)
	require.NoError(t, g.AddUnweightedEdge(0, 1))
	require.NoError(t, g.AddUnweightedEdge(1, 0))
	require.NoError(t, g.AddUnweightedEdge(0, 2))

	p, err := NewPartition(g, partition.Membership{0, 0, 1})
	require.NoError(t, err)
	// A = 2; P = (kOut_0 * kIn_0 + kOut_1 * kIn_1) / W = (3*2 + 0*1) / 3.
	require.InDelta(t, 2.0, p.Quality(0), 1e-12)
	require.InDelta(t, 0.0, p.Quality(1), 1e-12)
}

func TestPartitionMembershipLengthMismatch(t *testing.T) {
	g := graph.NewGraph(3, false)
	_, err := NewPartition(g, partition.Membership{0, 0})
	require.Error(t, err)
}

func TestLouvainFindsPlantedCliques(t *testing.T) {
	g := twoCliques(t, 5)
	p, err := NewLouvain(42).Optimize(g, 1.0)
	require.NoError(t, err)
	require.Equal(t,
		partition.Membership{0, 0, 0, 0, 0, 1, 1, 1, 1, 1},
		p.Membership)

	// The planted split must not score below the trivial partitions.
	allOne, err := NewPartition(g, make(partition.Membership, 10))
	require.NoError(t, err)
	require.Greater(t, p.Quality(1.0), allOne.Quality(1.0))
}

func TestLouvainResolutionExtremes(t *testing.T) {
	g := twoCliques(t, 5)

	// Near zero resolution the null term vanishes and any connected graph
	// collapses into one community.
	low, err := NewLouvain(7).Optimize(g, 0.01)
	require.NoError(t, err)
	require.Equal(t, 1, low.NumCommunities())

	// At extreme resolution no merge gain is positive.
	high, err := NewLouvain(7).Optimize(g, 50.0)
	require.NoError(t, err)
	require.Equal(t, 10, high.NumCommunities())
}

func TestLouvainDeterministicForSeed(t *testing.T) {
	g := twoCliques(t, 4)
	a, err := NewLouvain(3).Optimize(g, 1.0)
	require.NoError(t, err)
	b, err := NewLouvain(3).Optimize(g, 1.0)
	require.NoError(t, err)
	require.True(t, a.Membership.Equal(b.Membership))
}

// twoLayerCliques builds a temporal 2-layer network whose layers each hold
// two 4-cliques, with identity interlayer coupling.
func twoLayerCliques(t *testing.T) *graph.Multilayer {
	t.Helper()
	n := 16
	intra := graph.NewGraph(n, false)
	for _, base := range []int{0, 4, 8, 12} {
		for i := 0; i < 4; i++ {
			for j := i + 1; j < 4; j++ {
				require.NoError(t, intra.AddUnweightedEdge(base+i, base+j))
			}
		}
	}
	inter := graph.NewGraph(n, true)
	for i := 0; i < 8; i++ {
		require.NoError(t, inter.AddUnweightedEdge(i, i+8))
	}
	layers := make([]int, n)
	for i := 8; i < n; i++ {
		layers[i] = 1
	}
	return graph.NewMultilayer(intra, inter, layers)
}

func TestOptimizeMultilayerAlignsLayers(t *testing.T) {
	ml := twoLayerCliques(t)

	// Strong coupling pulls each clique's copies into one community.
	mp, err := NewLouvain(11).OptimizeMultilayer(ml, 1.0, 3.0)
	require.NoError(t, err)
	require.Equal(t, 2, mp.NumCommunities())
	require.Equal(t,
		partition.Membership{0, 0, 0, 0, 1, 1, 1, 1, 0, 0, 0, 0, 1, 1, 1, 1},
		mp.Membership)
}

func TestOptimizeMultilayerZeroCoupling(t *testing.T) {
	ml := twoLayerCliques(t)

	// With no coupling reward the per-layer cliques stay separate.
	mp, err := NewLouvain(11).OptimizeMultilayer(ml, 1.0, 0.0)
	require.NoError(t, err)
	require.Equal(t, 4, mp.NumCommunities())
}

func TestMultilayerPartitionQualities(t *testing.T) {
	ml := twoLayerCliques(t)
	aligned := partition.Membership{0, 0, 0, 0, 1, 1, 1, 1, 0, 0, 0, 0, 1, 1, 1, 1}
	mp, err := NewMultilayerPartition(ml, aligned)
	require.NoError(t, err)

	// Each layer holds 12 internal edges, all within-community, so the
	// intralayer observed weight is 2 * 24.
	require.InDelta(t, 48.0, mp.IntralayerQuality(0), 1e-12)

	// Per layer: two communities of strength 12 each, layer weight 12,
	// null term 2 * 12^2 / 24 = 12 per layer.
	require.InDelta(t, 48.0-24.0, mp.IntralayerQuality(1), 1e-12)

	// All 8 interlayer couplings connect co-assigned vertices.
	require.InDelta(t, 8.0, mp.InterlayerQuality(0), 1e-12)
}

func TestSweepGammasDeduplicates(t *testing.T) {
	g := twoCliques(t, 5)
	opt := NewLouvain(42)

	unique, err := SweepGammas(opt, g, []float64{0.01, 0.02, 1.0, 1.1, 50.0}, SweepOptions{Workers: 2, ChunkSize: 2})
	require.NoError(t, err)
	require.Len(t, unique, 3)

	cliques := partition.Key(partition.Membership{0, 0, 0, 0, 0, 1, 1, 1, 1, 1})
	require.Contains(t, unique, cliques)
	require.Contains(t, unique, partition.Key(make(partition.Membership, 10)))
}

func TestSweepGammasOmegasDeduplicates(t *testing.T) {
	ml := twoLayerCliques(t)
	opt := NewLouvain(11)

	unique, err := SweepGammasOmegas(opt, ml, []float64{1.0}, []float64{0.0, 3.0}, SweepOptions{Workers: 2})
	require.NoError(t, err)
	require.NotEmpty(t, unique)
	for _, m := range unique {
		require.Len(t, m, 16)
	}
}
