package genetic

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
)

var (
	// ErrEmptyPool is returned when the engine has no candidates to work with
	ErrEmptyPool = errors.New("no candidates available")

	// ErrScoreCount is returned when an evaluator returns the wrong number of scores
	ErrScoreCount = errors.New("evaluator returned wrong number of scores")
)

// --- Algorithm Engine ---

// Engine is the main genetic algorithm execution engine
// It coordinates all operators and manages the evolution process
type Engine[S Solution, F Numeric] struct {
	// Core operators
	evaluator   BatchEvaluatorFunc[S, F]
	initializer InitializerFunc[S]
	selector    Selector[S, F]
	combiner    Combiner[S, F]
	perturbator Perturbator[S]
	terminator  TerminationFunc[S, F]
	reporter    ReporterFunc[S, F]

	// Configuration
	config EngineConfig

	// State
	rng         *rand.Rand
	currentPool *Pool[S, F]
	best        Candidate[S, F]
	hasBest     bool
	history     []PoolStats[F]
}

// EngineConfig holds configuration parameters for the algorithm
type EngineConfig struct {
	// PoolSize is the number of candidates maintained in each generation
	PoolSize int
	// EliteCount is the number of best solutions carried unchanged into the next generation
	EliteCount int
	// PerturbationRate is the per-element mutation probability handed to the perturbator
	PerturbationRate float64
	// MaxIterations is the maximum number of generations evaluated, including the first
	MaxIterations int
	// Seed for random number generation (0 for random seed)
	Seed uint64
}

// NewEngine creates a new genetic algorithm engine with the specified operators
func NewEngine[S Solution, F Numeric](
	evaluator BatchEvaluatorFunc[S, F],
	initializer InitializerFunc[S],
	selector Selector[S, F],
	combiner Combiner[S, F],
	perturbator Perturbator[S],
	config EngineConfig,
) *Engine[S, F] {
	var rng *rand.Rand
	if config.Seed == 0 {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	} else {
		rng = rand.New(rand.NewPCG(config.Seed, config.Seed))
	}

	return &Engine[S, F]{
		evaluator:   evaluator,
		initializer: initializer,
		selector:    selector,
		combiner:    combiner,
		perturbator: perturbator,
		config:      config,
		rng:         rng,
		history:     make([]PoolStats[F], 0, max(config.MaxIterations, 0)),
	}
}

// SetTerminator sets a custom termination condition
func (e *Engine[S, F]) SetTerminator(terminator TerminationFunc[S, F]) {
	e.terminator = terminator
}

// SetReporter registers a per-generation observer
func (e *Engine[S, F]) SetReporter(reporter ReporterFunc[S, F]) {
	e.reporter = reporter
}

// Run executes the genetic algorithm until termination
// Cancellation is checked between generations; the last complete pool is returned with ctx.Err()
func (e *Engine[S, F]) Run(ctx context.Context) (*Pool[S, F], error) {
	if e.config.PoolSize < 1 {
		return nil, ErrEmptyPool
	}

	if err := e.initializePool(ctx); err != nil {
		return nil, err
	}

	for {
		if e.terminator != nil && e.terminator(e.currentPool, e.currentPool.Generation) {
			break
		}
		if e.currentPool.Generation+1 >= e.config.MaxIterations {
			break
		}

		select {
		case <-ctx.Done():
			return e.currentPool, ctx.Err()
		default:
		}

		if err := e.evolveGeneration(ctx); err != nil {
			return e.currentPool, err
		}
	}

	return e.currentPool, nil
}

// initializePool creates and evaluates the initial population
func (e *Engine[S, F]) initializePool(ctx context.Context) error {
	solutions := make([]S, e.config.PoolSize)
	for i := range solutions {
		solutions[i] = e.initializer(e.rng)
	}
	return e.commit(ctx, solutions, 0)
}

// evolveGeneration creates and evaluates the next generation
func (e *Engine[S, F]) evolveGeneration(ctx context.Context) error {
	next := make([]S, 0, e.config.PoolSize)

	// Elites race again unchanged
	for _, c := range e.selectElite() {
		next = append(next, c.Data)
	}

	for len(next) < e.config.PoolSize {
		parents := e.selector.Select(e.currentPool, 2, e.rng)
		offspring := e.combiner.Combine(parents, e.rng)
		if len(offspring) == 0 {
			return fmt.Errorf("generation %d: %w", e.currentPool.Generation+1, ErrEmptyPool)
		}

		for i := range offspring {
			e.perturbator.Perturb(&offspring[i], e.config.PerturbationRate, e.rng)
			next = append(next, offspring[i])
			if len(next) >= e.config.PoolSize {
				break
			}
		}
	}

	return e.commit(ctx, next, e.currentPool.Generation+1)
}

// commit evaluates solutions as one generation and makes them the current pool
func (e *Engine[S, F]) commit(ctx context.Context, solutions []S, generation int) error {
	scores, err := e.evaluator(ctx, solutions, generation)
	if err != nil {
		return fmt.Errorf("evaluate generation %d: %w", generation, err)
	}
	if len(scores) != len(solutions) {
		return fmt.Errorf("generation %d: %w: want %d, got %d", generation, ErrScoreCount, len(solutions), len(scores))
	}

	members := make([]Candidate[S, F], len(solutions))
	for i := range solutions {
		members[i] = Candidate[S, F]{Data: solutions[i], Score: scores[i]}
		if !e.hasBest || members[i].Score > e.best.Score {
			e.best = members[i]
			e.hasBest = true
		}
	}

	e.currentPool = &Pool[S, F]{
		Members:    members,
		Generation: generation,
		Stats:      e.calculateStats(members),
	}
	e.history = append(e.history, e.currentPool.Stats)

	if e.reporter != nil {
		e.reporter(e.currentPool, e.best)
	}
	return nil
}

// selectElite returns the best performing candidates for preservation
func (e *Engine[S, F]) selectElite() []Candidate[S, F] {
	if e.config.EliteCount <= 0 {
		return nil
	}

	ranked := slices.Clone(e.currentPool.Members)
	slices.SortStableFunc(ranked, func(a, b Candidate[S, F]) int {
		return cmp.Compare(b.Score, a.Score)
	})

	eliteCount := min(e.config.EliteCount, len(ranked), e.config.PoolSize)
	return ranked[:eliteCount]
}

// calculateStats computes statistical measures for a candidate pool
func (e *Engine[S, F]) calculateStats(candidates []Candidate[S, F]) PoolStats[F] {
	if len(candidates) == 0 {
		return PoolStats[F]{}
	}

	stats := PoolStats[F]{
		BestScore:  candidates[0].Score,
		WorstScore: candidates[0].Score,
	}

	total := F(0)
	for _, c := range candidates {
		stats.BestScore = max(stats.BestScore, c.Score)
		stats.WorstScore = min(stats.WorstScore, c.Score)
		total += c.Score
	}

	stats.AverageScore = total / F(len(candidates))

	return stats
}

// History returns the statistical history of the evolution process
func (e *Engine[S, F]) History() []PoolStats[F] {
	return e.history
}

// Best returns the best candidate evaluated so far across all generations
func (e *Engine[S, F]) Best() (Candidate[S, F], error) {
	if !e.hasBest {
		return Candidate[S, F]{}, ErrEmptyPool
	}
	return e.best, nil
}

