// Package louvain provides partition quality evaluation and a Louvain-style
// community detection optimizer with single-layer and multilayer resolution
// parameters.
package louvain

import (
	"github.com/xueyiren/ModularityPruning/pkg/graph"
)

// Optimizer abstracts the community detection collaborator used by the
// resolution-parameter estimators and sweeps. Implementations must be safe
// for concurrent use from the sweep worker pools.
type Optimizer interface {
	// Optimize detects communities in g at resolution gamma.
	Optimize(g *graph.Graph, gamma float64) (*Partition, error)

	// OptimizeMultilayer detects communities in ml at intralayer resolution
	// gamma and interlayer coupling omega.
	OptimizeMultilayer(ml *graph.Multilayer, gamma, omega float64) (*MultilayerPartition, error)
}
