// Package genetic provides a generic-first genetic algorithm framework
// 1. Has zero knowledge of game-specific types
// 2. Evaluates whole generations in one batch so candidates can share an environment
// 3. Operators are interfaces; concrete tournament, roulette, crossover and bounded
// perturbation implementations live here
package genetic

import (
	"math/rand/v2"
	"slices"
)

// --- Concrete Operator Implementations ---

// TournamentSelector implements tournament selection
// Randomly samples small groups and selects the best from each group
type TournamentSelector[S Solution, F Numeric] struct {
	// TournamentSize is the number of candidates to compete in each tournament
	TournamentSize int
}

// Select implements the Selector interface using tournament selection
func (ts *TournamentSelector[S, F]) Select(pool *Pool[S, F], size int, rng *rand.Rand) []Candidate[S, F] {
	poolSize := len(pool.Members)
	if poolSize == 0 {
		return nil
	}

	tournSize := min(ts.TournamentSize, poolSize)
	if tournSize < 1 {
		tournSize = min(2, poolSize)
	}

	selected := make([]Candidate[S, F], 0, size)
	for len(selected) < size {
		winner := pool.Members[rng.IntN(poolSize)]
		for i := 1; i < tournSize; i++ {
			if c := pool.Members[rng.IntN(poolSize)]; c.Score > winner.Score {
				winner = c
			}
		}
		selected = append(selected, winner)
	}

	return selected
}

// RouletteSelector implements fitness-proportionate selection
// Scores are shifted so the worst candidate has zero weight; a flat pool selects uniformly
type RouletteSelector[S Solution, F Numeric] struct{}

// Select implements roulette wheel selection
func (rs *RouletteSelector[S, F]) Select(pool *Pool[S, F], size int, rng *rand.Rand) []Candidate[S, F] {
	if len(pool.Members) == 0 {
		return nil
	}

	floor := float64(pool.Members[0].Score)
	for _, c := range pool.Members[1:] {
		floor = min(floor, float64(c.Score))
	}

	total := 0.0
	cumulative := make([]float64, len(pool.Members))
	for i, c := range pool.Members {
		total += float64(c.Score) - floor
		cumulative[i] = total
	}

	selected := make([]Candidate[S, F], size)
	for i := 0; i < size; i++ {
		if total <= 0 {
			selected[i] = pool.Members[rng.IntN(len(pool.Members))]
			continue
		}
		spin := rng.Float64() * total
		j, _ := slices.BinarySearch(cumulative, spin)
		selected[i] = pool.Members[min(j, len(pool.Members)-1)]
	}

	return selected
}

// UniformCombiner performs uniform crossover between solutions
// Each element has equal probability of coming from either parent
type UniformCombiner[S ~[]T, T any, F Numeric] struct {
	// MixProbability is the chance of taking from parent 1 vs parent 2
	MixProbability float64
}

// Combine creates offspring using uniform crossover
func (uc *UniformCombiner[S, T, F]) Combine(parents []Candidate[S, F], rng *rand.Rand) []S {
	if len(parents) < 2 {
		if len(parents) == 1 {
			return []S{slices.Clone(parents[0].Data)}
		}
		return []S{}
	}

	parent1, parent2 := parents[0].Data, parents[1].Data
	length := min(len(parent1), len(parent2))

	offspring1 := make(S, length)
	offspring2 := make(S, length)

	for i := 0; i < length; i++ {
		if rng.Float64() < uc.MixProbability {
			offspring1[i] = parent1[i]
			offspring2[i] = parent2[i]
		} else {
			offspring1[i] = parent2[i]
			offspring2[i] = parent1[i]
		}
	}

	return []S{offspring1, offspring2}
}

// NPointCombiner performs N-point crossover between solutions
// The solution is split at N random points and segments are alternated
type NPointCombiner[S ~[]T, T any, F Numeric] struct {
	// Points is the number of crossover points
	Points int
}

// Combine creates offspring using N-point crossover
func (nc *NPointCombiner[S, T, F]) Combine(parents []Candidate[S, F], rng *rand.Rand) []S {
	if len(parents) < 2 {
		if len(parents) == 1 {
			return []S{slices.Clone(parents[0].Data)}
		}
		return []S{}
	}

	parent1, parent2 := parents[0].Data, parents[1].Data
	length := min(len(parent1), len(parent2))

	points := make([]int, 0, nc.Points+2)
	points = append(points, 0)
	for i := 0; i < nc.Points && length > 1; i++ {
		points = append(points, rng.IntN(length-1)+1)
	}
	points = append(points, length)
	slices.Sort(points)

	offspring1 := make(S, length)
	offspring2 := make(S, length)

	useParent1 := true
	for i := 0; i < len(points)-1; i++ {
		for j := points[i]; j < points[i+1]; j++ {
			if useParent1 {
				offspring1[j] = parent1[j]
				offspring2[j] = parent2[j]
			} else {
				offspring1[j] = parent2[j]
				offspring2[j] = parent1[j]
			}
		}
		useParent1 = !useParent1
	}

	return []S{offspring1, offspring2}
}
