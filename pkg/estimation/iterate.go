package estimation

import (
	"fmt"
	"math"

	"github.com/xueyiren/ModularityPruning/pkg/graph"
	"github.com/xueyiren/ModularityPruning/pkg/louvain"
)

// Status classifies how a fixed-point loop terminated.
type Status int

const (
	// StatusConverged means every parameter delta fell under its tolerance.
	StatusConverged Status = iota
	// StatusExhausted means the iteration budget ran out; the last computed
	// values are still returned for caller inspection.
	StatusExhausted
)

func (s Status) String() string {
	switch s {
	case StatusConverged:
		return "converged"
	case StatusExhausted:
		return "exhausted"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// DegenerateError reports a resolution parameter combination whose detected
// partition yields SBM estimates with no defined parameter update.
type DegenerateError struct {
	Gamma    float64
	Omega    float64 // zero for the monolayer loop
	ThetaIn  float64
	ThetaOut float64
}

func (e *DegenerateError) Error() string {
	if e.Omega != 0 {
		return fmt.Sprintf("estimation: gamma=%.3f, omega=%.3f resulted in degenerate partition (theta_in=%g, theta_out=%g)",
			e.Gamma, e.Omega, e.ThetaIn, e.ThetaOut)
	}
	return fmt.Sprintf("estimation: gamma=%.3f resulted in degenerate partition (theta_in=%g, theta_out=%g)",
		e.Gamma, e.ThetaIn, e.ThetaOut)
}

// CouplingError reports an estimated interlayer coupling probability
// outside [0, 1], which marks the current resolution parameter combination
// as unrecoverable.
type CouplingError struct {
	Gamma float64
	Omega float64
	P     float64
}

func (e *CouplingError) Error() string {
	return fmt.Sprintf("estimation: gamma=%.3f, omega=%.3f resulted in impossible estimate p=%.3f",
		e.Gamma, e.Omega, e.P)
}

// MonolayerResult is the outcome of the single-parameter fixed-point loop.
type MonolayerResult struct {
	Gamma      float64
	Partition  *louvain.Partition
	Iterations int
	Status     Status
}

// IterateGamma alternates community detection at the current gamma with
// single-layer SBM estimation and the closed-form gamma update, until the
// move falls under the configured tolerance or the iteration budget is
// exhausted. Exhaustion is reported through the result status, not an
// error; degenerate estimates abort with a *DegenerateError.
func IterateGamma(opt louvain.Optimizer, g *graph.Graph, cfg *Config) (*MonolayerResult, error) {
	logger := cfg.CreateLogger()
	gamma := cfg.GammaStart()
	tol := cfg.GammaTol()
	maxIter := cfg.MaxIter()

	var part *louvain.Partition
	for iteration := 0; iteration < maxIter; iteration++ {
		var err error
		part, err = opt.Optimize(g, gamma)
		if err != nil {
			return nil, fmt.Errorf("estimation: community detection at gamma=%.3f: %w", gamma, err)
		}

		omegaIn, omegaOut, err := EstimateSingleLayerSBM(g, part.Membership)
		if err != nil {
			return nil, err
		}

		lastGamma := gamma
		gamma, err = GammaEstimate(omegaIn, omegaOut)
		if err != nil {
			return nil, &DegenerateError{Gamma: lastGamma, ThetaIn: omegaIn, ThetaOut: omegaOut}
		}

		logger.Debug().
			Int("iteration", iteration).
			Float64("gamma_old", lastGamma).
			Float64("gamma_new", gamma).
			Msg("gamma update")

		if math.Abs(gamma-lastGamma) < tol {
			return &MonolayerResult{Gamma: gamma, Partition: part, Iterations: iteration + 1, Status: StatusConverged}, nil
		}
	}

	logger.Warn().
		Float64("gamma", gamma).
		Int("max_iter", maxIter).
		Msg("gamma failed to converge within iteration budget")
	return &MonolayerResult{Gamma: gamma, Partition: part, Iterations: maxIter, Status: StatusExhausted}, nil
}

// MultilayerResult is the outcome of the two-parameter fixed-point loop.
type MultilayerResult struct {
	Gamma      float64
	Omega      float64
	Partition  *louvain.MultilayerPartition
	K          int
	Iterations int
	Status     Status
}

// IterateGammaOmega is the two-parameter variant of IterateGamma for
// multilayer graphs. The graph structure is validated against the topology
// model before the loop starts; convergence requires the gamma and omega
// deltas to fall under their tolerances simultaneously. An estimated
// coupling probability outside [0, 1] aborts with a *CouplingError.
func IterateGammaOmega(opt louvain.Optimizer, ml *graph.Multilayer, model graph.Model, cfg *Config) (*MultilayerResult, error) {
	if err := graph.CheckConsistency(ml, model); err != nil {
		return nil, err
	}

	logger := cfg.CreateLogger()
	gamma := cfg.GammaStart()
	omega := cfg.OmegaStart()
	gammaTol := cfg.GammaTol()
	omegaTol := cfg.OmegaTol()
	maxIter := cfg.MaxIter()
	updateOmega := OmegaUpdate(model, cfg.OmegaMax(), ml.NumLayers())

	var (
		part *louvain.MultilayerPartition
		k    int
	)
	for iteration := 0; iteration < maxIter; iteration++ {
		var err error
		part, err = opt.OptimizeMultilayer(ml, gamma, omega)
		if err != nil {
			return nil, fmt.Errorf("estimation: community detection at gamma=%.3f, omega=%.3f: %w", gamma, omega, err)
		}

		est, err := EstimateMultilayerSBM(ml, part.Membership, model)
		if err != nil {
			return nil, err
		}
		k = est.K

		if est.P < 0 || est.P > 1 {
			return nil, &CouplingError{Gamma: gamma, Omega: omega, P: est.P}
		}

		lastGamma, lastOmega := gamma, omega
		gamma, err = GammaEstimate(est.ThetaIn, est.ThetaOut)
		if err != nil {
			return nil, &DegenerateError{Gamma: lastGamma, Omega: lastOmega, ThetaIn: est.ThetaIn, ThetaOut: est.ThetaOut}
		}
		omega = updateOmega(est.ThetaIn, est.ThetaOut, est.P, est.K)

		logger.Debug().
			Int("iteration", iteration).
			Int("communities", est.K).
			Float64("gamma_old", lastGamma).
			Float64("gamma_new", gamma).
			Float64("omega_old", lastOmega).
			Float64("omega_new", omega).
			Float64("p", est.P).
			Msg("parameter update")

		if math.Abs(gamma-lastGamma) < gammaTol && math.Abs(omega-lastOmega) < omegaTol {
			return &MultilayerResult{
				Gamma: gamma, Omega: omega, Partition: part, K: k,
				Iterations: iteration + 1, Status: StatusConverged,
			}, nil
		}
	}

	logger.Warn().
		Float64("gamma", gamma).
		Float64("omega", omega).
		Int("max_iter", maxIter).
		Msg("parameters failed to converge within iteration budget")
	return &MultilayerResult{
		Gamma: gamma, Omega: omega, Partition: part, K: k,
		Iterations: maxIter, Status: StatusExhausted,
	}, nil
}
