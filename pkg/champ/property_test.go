package champ

import (
	"math"
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/xueyiren/ModularityPruning/pkg/graph"
	"github.com/xueyiren/ModularityPruning/pkg/louvain"
	"github.com/xueyiren/ModularityPruning/pkg/partition"
)

// Randomized contract check: for any graph and candidate set, the affine
// coefficients must reproduce the quality function evaluated directly.
func TestCoefficientQualityContractProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 60

	properties := gopter.NewProperties(parameters)

	properties.Property("2D coefficients reproduce partition quality", prop.ForAll(
		func(seed int64, directed bool) bool {
			rng := rand.New(rand.NewSource(seed))
			n := 6 + rng.Intn(15)
			g := graph.NewGraph(n, directed)
			for i := 0; i < n; i++ {
				for j := 0; j < n; j++ {
					if i == j || (!directed && j <= i) {
						continue
					}
					if rng.Float64() < 0.35 {
						if err := g.AddEdge(i, j, 0.5+rng.Float64()); err != nil {
							return false
						}
					}
				}
			}
			if g.EdgeCount() == 0 {
				return true
			}

			memberships := make([]partition.Membership, 3)
			for k := range memberships {
				m := make(partition.Membership, n)
				for v := range m {
					m[v] = rng.Intn(1 + k + rng.Intn(4))
				}
				memberships[k] = partition.Canonical(m)
			}

			aHats, pHats, err := Coefficients2D(g, memberships)
			if err != nil {
				return false
			}
			for i, m := range memberships {
				part, err := louvain.NewPartition(g, m)
				if err != nil {
					return false
				}
				if math.Abs(part.Quality(0)-aHats[i]) > 1e-10 {
					return false
				}
				if math.Abs((part.Quality(0)-part.Quality(1))-pHats[i]) > 1e-10 {
					return false
				}
				// Spot-check the affine form away from the anchors.
				gamma := rng.Float64() * 3
				if math.Abs(part.Quality(gamma)-(aHats[i]-gamma*pHats[i])) > 1e-9 {
					return false
				}
			}
			return true
		},
		gen.Int64(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
