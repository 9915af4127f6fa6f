package champ

import (
	"github.com/xueyiren/ModularityPruning/pkg/champ/internal/geom"
)

// Halfspace is the inequality dot(Normal, x) + Offset <= 0 in the lifted
// space whose last coordinate is the quality axis.
type Halfspace struct {
	Normal []float64
	Offset float64
}

// HalfspacesFromCoefficients2D converts (A, P) pairs into halfspace normal
// form in the lifted (gamma, Q) plane:
//
//	Q >= A - P*gamma
//	-P*gamma - Q + A <= 0
//	(-P, -1) . (gamma, Q) + A <= 0
func HalfspacesFromCoefficients2D(aHats, pHats []float64) []Halfspace {
	hs := make([]Halfspace, len(aHats))
	for i := range aHats {
		hs[i] = Halfspace{Normal: []float64{-pHats[i], -1}, Offset: aHats[i]}
	}
	return hs
}

// halfspacesFromCoefficients3D lifts (A, P, C) triples into the
// (gamma, omega, Q) space: -P*gamma + C*omega - Q + A <= 0.
func halfspacesFromCoefficients3D(aHats, pHats, cHats []float64) []Halfspace {
	hs := make([]Halfspace, len(aHats))
	for i := range aHats {
		hs[i] = Halfspace{Normal: []float64{-pHats[i], cHats[i], -1}, Offset: aHats[i]}
	}
	return hs
}

// toGeom2D converts lifted-plane halfspaces into the geometry package's 2D
// representation.
func toGeom2D(hs []Halfspace) []geom.Halfspace {
	out := make([]geom.Halfspace, len(hs))
	for i, h := range hs {
		out[i] = geom.Halfspace{Normal: [2]float64{h.Normal[0], h.Normal[1]}, Offset: h.Offset}
	}
	return out
}
