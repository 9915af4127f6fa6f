package estimation

import (
	"errors"
	"fmt"
	"math"

	"github.com/xueyiren/ModularityPruning/pkg/graph"
)

// ErrDegenerateEstimate reports SBM estimates for which the closed-form
// resolution parameter is undefined: equal or non-positive within/between
// propensities.
var ErrDegenerateEstimate = errors.New("estimation: SBM estimate admits no resolution parameter")

// GammaEstimate computes the maximum-likelihood resolution parameter
// equivalent to a two-block planted-partition fit:
//
//	gamma = (thetaIn - thetaOut) / (ln thetaIn - ln thetaOut)
//
// It fails with ErrDegenerateEstimate when thetaIn == thetaOut or either
// propensity is non-positive, since the logarithms are then undefined.
func GammaEstimate(thetaIn, thetaOut float64) (float64, error) {
	if thetaIn <= 0 || thetaOut <= 0 || thetaIn == thetaOut {
		return 0, fmt.Errorf("%w: theta_in=%g, theta_out=%g", ErrDegenerateEstimate, thetaIn, thetaOut)
	}
	return (thetaIn - thetaOut) / (math.Log(thetaIn) - math.Log(thetaOut)), nil
}

// OmegaUpdate returns the model-specific closed-form interlayer resolution
// update. Temporal and multilevel couplings act across a single layer
// boundary (factor 2); multiplex coupling spans all T layers. The update is
// capped at omegaMax, which is also the value reported as p approaches 1
// (infinite coupling).
func OmegaUpdate(model graph.Model, omegaMax float64, numLayers int) func(thetaIn, thetaOut, p float64, k int) float64 {
	factor := 2.0
	if model == graph.Multiplex {
		factor = float64(numLayers)
	}
	return func(thetaIn, thetaOut, p float64, k int) float64 {
		if p <= 0 {
			return 0
		}
		if p >= 1 {
			return omegaMax
		}
		omega := math.Log(1+p*float64(k)/(1-p)) / (factor * (thetaIn - thetaOut))
		if omega > omegaMax {
			return omegaMax
		}
		return omega
	}
}
