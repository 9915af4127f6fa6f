// Package graph provides the weighted graph and multilayer graph types used
// by the CHAMP partition-selection routines and the resolution parameter
// estimators.
package graph

import (
	"fmt"
)

// Edge is a single weighted edge. For undirected graphs the (Source, Target)
// order carries no meaning.
type Edge struct {
	Source int     `json:"source"`
	Target int     `json:"target"`
	Weight float64 `json:"weight"`
}

// Graph represents a weighted graph as a flat edge list with cached vertex
// strengths (weighted degrees). Directedness is fixed at construction.
type Graph struct {
	NumNodes int    `json:"num_nodes"`
	Directed bool   `json:"directed"`
	Edges    []Edge `json:"edges"`

	inStrength  []float64 // weighted in-degree (equals strength for undirected)
	outStrength []float64 // weighted out-degree (equals strength for undirected)
	totalWeight float64
}

// NewGraph creates an empty graph with numNodes vertices.
func NewGraph(numNodes int, directed bool) *Graph {
	return &Graph{
		NumNodes:    numNodes,
		Directed:    directed,
		inStrength:  make([]float64, numNodes),
		outStrength: make([]float64, numNodes),
	}
}

// AddEdge adds a weighted edge from u to v.
func (g *Graph) AddEdge(u, v int, weight float64) error {
	if u < 0 || u >= g.NumNodes || v < 0 || v >= g.NumNodes {
		return fmt.Errorf("node index out of range: u=%d, v=%d, numNodes=%d", u, v, g.NumNodes)
	}
	if weight <= 0 {
		return fmt.Errorf("edge weight must be positive: %f", weight)
	}

	g.Edges = append(g.Edges, Edge{Source: u, Target: v, Weight: weight})
	g.totalWeight += weight

	if g.Directed {
		g.outStrength[u] += weight
		g.inStrength[v] += weight
		return nil
	}

	// Undirected: the edge contributes to both endpoints. A self-loop
	// contributes twice to its single endpoint.
	g.inStrength[u] += weight
	g.outStrength[u] += weight
	g.inStrength[v] += weight
	g.outStrength[v] += weight
	return nil
}

// AddUnweightedEdge adds an edge with weight 1.
func (g *Graph) AddUnweightedEdge(u, v int) error {
	return g.AddEdge(u, v, 1.0)
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.Edges) }

// TotalWeight returns the sum of all edge weights.
func (g *Graph) TotalWeight() float64 { return g.totalWeight }

// Strength returns the total weighted degree of node v. For directed graphs
// this is the sum of in- and out-strengths.
func (g *Graph) Strength(v int) float64 {
	if g.Directed {
		return g.inStrength[v] + g.outStrength[v]
	}
	return g.inStrength[v]
}

// InStrength returns the weighted in-degree of node v.
func (g *Graph) InStrength(v int) float64 { return g.inStrength[v] }

// OutStrength returns the weighted out-degree of node v.
func (g *Graph) OutStrength(v int) float64 { return g.outStrength[v] }

// Subgraph returns the subgraph induced by the given vertices. Vertices are
// renumbered 0..len(vertices)-1 in the order supplied; edges with an endpoint
// outside the set are dropped.
func (g *Graph) Subgraph(vertices []int) (*Graph, error) {
	index := make(map[int]int, len(vertices))
	for i, v := range vertices {
		if v < 0 || v >= g.NumNodes {
			return nil, fmt.Errorf("vertex %d out of range for subgraph of %d-node graph", v, g.NumNodes)
		}
		if _, ok := index[v]; ok {
			return nil, fmt.Errorf("duplicate vertex %d in subgraph selection", v)
		}
		index[v] = i
	}

	sub := NewGraph(len(vertices), g.Directed)
	for _, e := range g.Edges {
		u, uOK := index[e.Source]
		v, vOK := index[e.Target]
		if uOK && vOK {
			if err := sub.AddEdge(u, v, e.Weight); err != nil {
				return nil, err
			}
		}
	}
	return sub, nil
}

// Validate checks basic structural consistency.
func (g *Graph) Validate() error {
	if g.NumNodes <= 0 {
		return fmt.Errorf("graph must have positive number of nodes")
	}
	for _, e := range g.Edges {
		if e.Source < 0 || e.Source >= g.NumNodes || e.Target < 0 || e.Target >= g.NumNodes {
			return fmt.Errorf("edge %d-%d out of range for %d-node graph", e.Source, e.Target, g.NumNodes)
		}
		if e.Weight <= 0 {
			return fmt.Errorf("non-positive weight %f for edge %d-%d", e.Weight, e.Source, e.Target)
		}
	}
	return nil
}
