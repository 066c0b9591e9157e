package genetic

import "math/rand/v2"

// BoundedPerturbator applies gaussian weight mutation with range clamping
// Each gene is, with probability rate, either replaced by a fresh draw or nudged by noise
type BoundedPerturbator struct {
	Min, Max float64

	// Power is the standard deviation of additive noise
	Power float64

	// ReplaceRate is the per-gene probability of a fresh draw instead of a nudge
	ReplaceRate float64

	// InitMean and InitStdDev shape fresh draws
	InitMean, InitStdDev float64
}

// Perturb mutates genes in place
func (bp *BoundedPerturbator) Perturb(solution *[]float64, rate float64, rng *rand.Rand) {
	if solution == nil || len(*solution) == 0 {
		return
	}

	genes := *solution
	for i := range genes {
		if rng.Float64() >= rate {
			continue
		}
		if rng.Float64() < bp.ReplaceRate {
			genes[i] = bp.clamp(bp.InitMean + rng.NormFloat64()*bp.InitStdDev)
			continue
		}
		genes[i] = bp.clamp(genes[i] + rng.NormFloat64()*bp.Power)
	}
}

// Initializer returns an InitializerFunc drawing length genes from the init distribution
func (bp *BoundedPerturbator) Initializer(length int) InitializerFunc[[]float64] {
	return func(rng *rand.Rand) []float64 {
		genes := make([]float64, length)
		for i := range genes {
			genes[i] = bp.clamp(bp.InitMean + rng.NormFloat64()*bp.InitStdDev)
		}
		return genes
	}
}

func (bp *BoundedPerturbator) clamp(v float64) float64 {
	if v < bp.Min {
		return bp.Min
	}
	if v > bp.Max {
		return bp.Max
	}
	return v
}
