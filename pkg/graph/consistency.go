package graph

import (
	"fmt"
	"strings"
)

// ConsistencyError aggregates every violated structural rule found while
// validating a multilayer graph. All violations are collected so callers get
// a complete diagnostic rather than just the first failure.
type ConsistencyError struct {
	Violations []string
}

func (e *ConsistencyError) Error() string {
	return "input graph is malformed\n" + strings.Join(e.Violations, "\n")
}

// CheckConsistency validates the structure of the multilayer graph against
// the declared topology model. It applies the full rule set in order and
// returns a *ConsistencyError naming every violated rule, or nil if the
// graph is well formed.
func CheckConsistency(ml *Multilayer, model Model) error {
	if !model.Valid() {
		return &ConsistencyError{Violations: []string{fmt.Sprintf("unknown topology model %q", model)}}
	}

	T := ml.NumLayers()
	mt := ml.LayerWeights()
	nt := ml.LayerSizes()
	n := 0
	if T > 0 {
		n = ml.Intralayer.NumNodes / T
	}

	allPositive := func(xs []float64) bool {
		for _, x := range xs {
			if x <= 0 {
				return false
			}
		}
		return true
	}
	allEqual := func(xs []int, v int) bool {
		for _, x := range xs {
			if x != v {
				return false
			}
		}
		return true
	}
	noCrossLayerIntraEdges := func() bool {
		for _, e := range ml.Intralayer.Edges {
			if ml.Layers[e.Source] != ml.Layers[e.Target] {
				return false
			}
		}
		return true
	}
	maxInterlayerInDegree := func() int {
		inDeg := make([]int, ml.Interlayer.NumNodes)
		maxDeg := 0
		for _, e := range ml.Interlayer.Edges {
			inDeg[e.Target]++
			if inDeg[e.Target] > maxDeg {
				maxDeg = inDeg[e.Target]
			}
		}
		return maxDeg
	}
	allLayersNonempty := func() bool {
		for _, s := range nt {
			if s <= 0 {
				return false
			}
		}
		return true
	}

	rules := []struct {
		ok      bool
		message string
	}{
		{T > 1,
			"graph must have multiple layers"},
		{ml.Interlayer.Directed,
			"interlayer graph should be directed"},
		{ml.Interlayer.NumNodes == ml.Intralayer.NumNodes,
			"inter-layer and intra-layer graphs must be of the same size"},
		{len(ml.Layers) == ml.Intralayer.NumNodes,
			"layer membership vector must have length matching graph size"},
		{allPositive(mt),
			"all layers of graph must contain edges"},
		{noCrossLayerIntraEdges(),
			"intralayer graph should not contain edges across layers"},
		{model != Temporal || ml.Interlayer.EdgeCount() == n*(T-1),
			"interlayer temporal graph must contain (nodes per layer) * (number of layers - 1) edges"},
		{model != Temporal || (ml.Interlayer.NumNodes%T == 0 && ml.Intralayer.NumNodes%T == 0),
			"vertex count of a temporal graph should be a multiple of the number of layers"},
		{model != Temporal || allEqual(nt, n),
			"temporal networks must have the same number of nodes in every layer"},
		{model != Multilevel || allLayersNonempty(),
			"all layers of a multilevel graph must be consecutive and nonempty"},
		{model != Multilevel || maxInterlayerInDegree() <= 1,
			"multilevel networks should have at most one interlayer in-edge per node"},
		{model != Multiplex || allEqual(nt, n),
			"multiplex networks must have the same number of nodes in every layer"},
		{model != Multiplex || ml.Interlayer.EdgeCount() == n*T*(T-1),
			"multiplex interlayer networks must contain edges between all pairs of layers"},
	}

	var violations []string
	for _, rule := range rules {
		if !rule.ok {
			violations = append(violations, rule.message)
		}
	}
	if len(violations) > 0 {
		return &ConsistencyError{Violations: violations}
	}
	return nil
}
