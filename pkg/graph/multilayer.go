package graph

import (
	"fmt"
)

// Model enumerates the supported multilayer topology models. The model
// governs which structural invariants hold for the interlayer graph and
// which closed-form omega update the estimators use.
type Model string

const (
	Temporal   Model = "temporal"
	Multilevel Model = "multilevel"
	Multiplex  Model = "multiplex"
)

// Valid reports whether m is a known topology model.
func (m Model) Valid() bool {
	switch m {
	case Temporal, Multilevel, Multiplex:
		return true
	}
	return false
}

// Multilayer bundles the intralayer graph, the interlayer graph and the
// layer assignment of a multilayer network. Both graphs share one vertex
// set; Layers[v] is the 0-indexed, contiguous layer of vertex v.
type Multilayer struct {
	Intralayer *Graph
	Interlayer *Graph
	Layers     []int
}

// NewMultilayer bundles the intralayer and interlayer graphs with the layer
// assignment. It performs no model-specific validation; see
// CheckConsistency.
func NewMultilayer(intralayer, interlayer *Graph, layers []int) *Multilayer {
	return &Multilayer{Intralayer: intralayer, Interlayer: interlayer, Layers: layers}
}

// NumLayers returns max(layer assignment) + 1.
func (ml *Multilayer) NumLayers() int {
	maxLayer := -1
	for _, l := range ml.Layers {
		if l > maxLayer {
			maxLayer = l
		}
	}
	return maxLayer + 1
}

// LayerWeights returns the total intralayer edge weight per layer, indexed
// by the source vertex's layer.
func (ml *Multilayer) LayerWeights() []float64 {
	weights := make([]float64, ml.NumLayers())
	for _, e := range ml.Intralayer.Edges {
		weights[ml.Layers[e.Source]] += e.Weight
	}
	return weights
}

// LayerSizes returns the number of vertices in each layer.
func (ml *Multilayer) LayerSizes() []int {
	sizes := make([]int, ml.NumLayers())
	for _, l := range ml.Layers {
		sizes[l]++
	}
	return sizes
}

// LayerVertices returns, per layer, the vertices assigned to it in
// ascending vertex order.
func (ml *Multilayer) LayerVertices() [][]int {
	vertices := make([][]int, ml.NumLayers())
	for v, l := range ml.Layers {
		vertices[l] = append(vertices[l], v)
	}
	return vertices
}

// Validate checks the basic cross-graph invariants that hold regardless of
// topology model.
func (ml *Multilayer) Validate() error {
	if err := ml.Intralayer.Validate(); err != nil {
		return fmt.Errorf("intralayer graph: %w", err)
	}
	if err := ml.Interlayer.Validate(); err != nil {
		return fmt.Errorf("interlayer graph: %w", err)
	}
	if len(ml.Layers) != ml.Intralayer.NumNodes {
		return fmt.Errorf("layer assignment length %d does not match vertex count %d",
			len(ml.Layers), ml.Intralayer.NumNodes)
	}
	for v, l := range ml.Layers {
		if l < 0 {
			return fmt.Errorf("vertex %d has negative layer %d", v, l)
		}
	}
	return nil
}
