package genetic

import (
	"context"
	"math/rand/v2"
)

// --- Core Type Constraints ---

// Solution represents any type that can be used as a solution encoding
type Solution any

// Numeric constrains types to numeric values for fitness scores
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// --- Core Data Structures ---

// Candidate represents a potential solution with its evaluated quality score
// S is the solution type, F is the fitness/quality score type
type Candidate[S Solution, F Numeric] struct {
	// Data holds the encoded solution representation
	Data S
	// Score represents the quality/fitness of this solution (higher = better)
	Score F
}

// Pool represents a collection of solution candidates
// This is the working set of solutions at any given iteration
type Pool[S Solution, F Numeric] struct {
	// Members contains all candidates in this pool
	Members []Candidate[S, F]
	// Generation tracks the iteration number this pool represents, starting at 0
	Generation int
	// Stats holds statistical information about this pool
	Stats PoolStats[F]
}

// PoolStats contains statistical information about a candidate pool
type PoolStats[F Numeric] struct {
	BestScore    F
	WorstScore   F
	AverageScore F
}

// --- Function Types for Flexibility ---

// BatchEvaluatorFunc scores a whole generation at once
// Candidates of one generation may interact (e.g. share one simulated world), so the
// evaluator receives every solution and returns scores in the same order
type BatchEvaluatorFunc[S Solution, F Numeric] func(ctx context.Context, solutions []S, generation int) ([]F, error)

// InitializerFunc creates an initial solution candidate
type InitializerFunc[S Solution] func(rng *rand.Rand) S

// TerminationFunc determines if the algorithm should stop
// Returns true when termination criteria are met
type TerminationFunc[S Solution, F Numeric] func(pool *Pool[S, F], generation int) bool

// ReporterFunc observes each evaluated generation and the best candidate seen so far
type ReporterFunc[S Solution, F Numeric] func(pool *Pool[S, F], best Candidate[S, F])

// --- Core Operators as Interfaces ---

// Selector defines the selection operator for choosing candidates for reproduction
type Selector[S Solution, F Numeric] interface {
	// Select chooses candidates from the pool for reproduction
	// The size parameter indicates how many candidates to select
	Select(pool *Pool[S, F], size int, rng *rand.Rand) []Candidate[S, F]
}

// Combiner defines the recombination operator for creating new solutions
type Combiner[S Solution, F Numeric] interface {
	// Combine creates offspring from parent solutions
	// Offspring never alias parent data
	Combine(parents []Candidate[S, F], rng *rand.Rand) []S
}

// Perturbator defines the mutation operator for introducing variation
type Perturbator[S Solution] interface {
	// Perturb modifies a solution in-place to introduce variation
	// The rate parameter is the per-element mutation probability (0-1)
	Perturb(solution *S, rate float64, rng *rand.Rand)
}
