// Package trainer evolves learned controllers: every generation races all its
// genomes in one shared simulation and the accumulated rewards become their fitness
package trainer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/lixenwraith/lanerace/genetic"
	"github.com/lixenwraith/lanerace/genetic/persistence"
	"github.com/lixenwraith/lanerace/genetic/tracking"
	"github.com/lixenwraith/lanerace/neural"
	"github.com/lixenwraith/lanerace/parameter"
	"github.com/lixenwraith/lanerace/race"
)

// Report summarises one evaluated generation
type Report struct {
	Generation int // 1-based, as displayed
	Best       float64
	Average    float64
	Worst      float64
	BestEver   float64
	Ticks      int // simulation ticks the generation lasted
	Dodged     int // enemies culled during the generation
	TicksAlive int // alive ticks summed over agents
	Crashes    int // agents that crashed, the rest were cut off by max_ticks

	// Leader is the player id of the generation's fittest agent
	Leader       int
	LeaderDodges int
	LeaderPeak   float64 // highest running fitness the leader reached
}

func (r Report) String() string {
	return fmt.Sprintf("gen %d: best=%.2f avg=%.2f worst=%.2f best-ever=%.2f ticks=%d dodged=%d crashes=%d alive-ticks=%d leader=#%d (dodges=%d peak=%.2f)",
		r.Generation, r.Best, r.Average, r.Worst, r.BestEver, r.Ticks, r.Dodged, r.Crashes, r.TicksAlive,
		r.Leader, r.LeaderDodges, r.LeaderPeak)
}

// Result is the outcome of a training run
type Result struct {
	Best    genetic.Candidate[[]float64, float64]
	Reached bool // fitness threshold met
	Saved   bool

	// BestGeneration is the 1-based generation Best was found in
	BestGeneration int

	// Generations counts fully evaluated generations; an interrupted one is not included
	Generations int

	// History holds the fitness statistics of every completed generation
	History []genetic.PoolStats[float64]
}

// Trainer owns the generation counter and wires the engine to the simulation
type Trainer struct {
	cfg    *Config
	shape  neural.Shape
	runner Runner
	store  *persistence.Manager
	ledger *tracking.Ledger
	rng    *rand.Rand

	generation int
	completed  int
	lastTicks  int
	lastDodged int

	bestEver       float64
	bestGeneration int

	// OnReport is called after each generation, may be nil
	OnReport func(Report)
}

// New validates the config and creates a trainer
// store may be nil to skip saving the winner
func New(cfg *Config, runner Runner, store *persistence.Manager) (*Trainer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if runner == nil {
		runner = Headless{}
	}

	seed := cfg.Neat.Seed
	var rng *rand.Rand
	if seed == 0 {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	} else {
		rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}

	return &Trainer{
		cfg:    cfg,
		shape:  cfg.Shape(),
		runner: runner,
		store:  store,
		ledger: tracking.NewLedger(cfg.Neat.PopSize),
		rng:    rng,
	}, nil
}

// Generation returns the 1-based number of the generation being or last evaluated
func (t *Trainer) Generation() int {
	return t.generation
}

// Run evolves until the fitness threshold, the generation cap or cancellation
// The best genome seen is saved on every exit path that evaluated at least one generation
func (t *Trainer) Run(ctx context.Context) (Result, error) {
	bp := t.cfg.Perturbator()
	engine := genetic.NewEngine(
		t.evaluate,
		bp.Initializer(t.shape.GeneCount()),
		t.cfg.Selector(),
		t.cfg.Combiner(),
		bp,
		t.cfg.EngineConfig(),
	)

	var result Result
	if !t.cfg.Neat.NoFitnessTermination {
		threshold := t.cfg.Neat.FitnessThreshold
		engine.SetTerminator(func(pool *genetic.Pool[[]float64, float64], _ int) bool {
			if pool.Stats.BestScore >= threshold {
				result.Reached = true
				return true
			}
			return false
		})
	}
	engine.SetReporter(t.report)

	log.Printf("trainer: shape %s, population %d, up to %d generations", t.shape, t.cfg.Neat.PopSize, t.cfg.Neat.MaxGenerations)
	_, runErr := engine.Run(ctx)

	best, err := engine.Best()
	if err != nil {
		return result, errors.Join(runErr, err)
	}
	result.Best = best
	result.BestGeneration = t.bestGeneration
	result.Generations = t.completed
	result.History = engine.History()
	logHistory(result.History)

	if t.store != nil {
		if err := t.store.Save(persistence.FromCandidate(t.shape, best, t.bestGeneration)); err != nil {
			return result, errors.Join(runErr, fmt.Errorf("save model: %w", err))
		}
		result.Saved = true
		log.Printf("trainer: best model (fitness %.2f) saved to %s", best.Score, t.store.FilePath())
	}

	return result, runErr
}

// evaluate races every genome of one generation in a shared simulation
func (t *Trainer) evaluate(ctx context.Context, genomes [][]float64, generation int) ([]float64, error) {
	t.generation = generation + 1

	factory := DecisionFactory(t.shape)
	controllers := make([]race.Controller, len(genomes))
	for i, genes := range genomes {
		decide, err := factory(genes)
		if err != nil {
			return nil, fmt.Errorf("genome %d: %w", i, err)
		}
		controllers[i] = race.NewLearnedController(decide)
	}

	t.ledger.Reset(len(genomes))

	simCfg := race.TrainingConfig(t.ledger)
	simCfg.Rewards = t.cfg.Rewards()
	simCfg.MaxTicks = t.cfg.Neat.MaxTicks
	simCfg.Rng = t.rng
	sim := race.NewSimulation(simCfg, controllers)

	if err := t.runner.Run(ctx, sim, t.generation); err != nil {
		return nil, err
	}

	t.lastTicks = sim.Tick()
	t.lastDodged = sim.Score()
	return t.ledger.Scores(), nil
}

// report runs once per committed generation
func (t *Trainer) report(pool *genetic.Pool[[]float64, float64], best genetic.Candidate[[]float64, float64]) {
	t.completed = pool.Generation + 1
	if t.bestGeneration == 0 || best.Score > t.bestEver {
		t.bestEver = best.Score
		t.bestGeneration = t.completed
	}

	totals := t.ledger.Totals()
	r := Report{
		Generation: t.completed,
		Best:       pool.Stats.BestScore,
		Average:    pool.Stats.AverageScore,
		Worst:      pool.Stats.WorstScore,
		BestEver:   best.Score,
		Ticks:      t.lastTicks,
		Dodged:     t.lastDodged,
		TicksAlive: int(totals.Get(tracking.MetricTicksAlive, 0)),
		Crashes:    int(totals.Get(tracking.MetricCrashes, 0)),
	}

	if r.Leader = t.leader(); r.Leader >= 0 {
		summary := t.ledger.Summary(r.Leader)
		r.LeaderDodges = int(summary.Get(tracking.MetricDodges, 0))
		r.LeaderPeak = summary.Get(tracking.PeakKey(tracking.MetricFitness), 0)
	}

	log.Printf("trainer: %s", r)
	if t.OnReport != nil {
		t.OnReport(r)
	}
}

// leader returns the fittest agent of the last generation, -1 when none raced
func (t *Trainer) leader() int {
	idx := -1
	for i := range t.ledger.Len() {
		if idx < 0 || t.ledger.Fitness(i) > t.ledger.Fitness(idx) {
			idx = i
		}
	}
	return idx
}

// logHistory writes the end-of-run fitness trajectory
func logHistory(history []genetic.PoolStats[float64]) {
	if len(history) == 0 {
		return
	}
	first, last := history[0], history[len(history)-1]
	log.Printf("trainer: %d generation(s), best %.2f -> %.2f, average %.2f -> %.2f",
		len(history), first.BestScore, last.BestScore, first.AverageScore, last.AverageScore)
}

// DecisionFactory builds decision functions of the given shape from gene vectors
func DecisionFactory(shape neural.Shape) race.DecisionFactory {
	return func(params []float64) (race.DecisionFunc, error) {
		net, err := shape.Decode(params)
		if err != nil {
			return nil, err
		}
		return net.Activate, nil
	}
}

// LoadController restores the saved model as a learned controller
func LoadController(store *persistence.Manager) (*race.LearnedController, persistence.ModelDTO, error) {
	model, err := store.Load()
	if err != nil {
		return nil, model, err
	}

	shape := model.Shape()
	if shape.Inputs != parameter.SensorCount || shape.Outputs != parameter.ActionCount {
		return nil, model, fmt.Errorf("model %s: shape %s does not fit the game", store.FilePath(), shape)
	}

	decide, err := DecisionFactory(shape)(model.Genes)
	if err != nil {
		return nil, model, fmt.Errorf("model %s: %w", store.FilePath(), err)
	}
	return race.NewLearnedController(decide), model, nil
}
