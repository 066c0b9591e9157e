package trainer

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/lixenwraith/lanerace/genetic"
	"github.com/lixenwraith/lanerace/neural"
	"github.com/lixenwraith/lanerace/parameter"
	"github.com/lixenwraith/lanerace/race"
)

// ErrInvalidConfig wraps every hyperparameter validation failure
var ErrInvalidConfig = errors.New("invalid training config")

// Config stores the hyperparameters of a training run
type Config struct {
	Neat         NeatConfig
	Genome       GenomeConfig
	Reproduction ReproductionConfig
	Reward       RewardConfig
}

// NeatConfig holds run-level parameters
type NeatConfig struct {
	PopSize              int     `ini:"pop_size"`
	FitnessThreshold     float64 `ini:"fitness_threshold"`
	NoFitnessTermination bool    `ini:"no_fitness_termination"`
	MaxGenerations       int     `ini:"max_generations"`
	MaxTicks             int     `ini:"max_ticks"` // per generation, 0 runs until every agent crashed
	Seed                 uint64  `ini:"seed"`      // 0 seeds from the runtime source
}

// GenomeConfig holds the network shape and weight mutation parameters
type GenomeConfig struct {
	NumInputs         int     `ini:"num_inputs"`
	NumOutputs        int     `ini:"num_outputs"`
	NumHidden         int     `ini:"num_hidden"`
	ActivationDefault string  `ini:"activation_default"`
	WeightInitMean    float64 `ini:"weight_init_mean"`
	WeightInitStdev   float64 `ini:"weight_init_stdev"`
	WeightMinValue    float64 `ini:"weight_min_value"`
	WeightMaxValue    float64 `ini:"weight_max_value"`
	WeightMutateRate  float64 `ini:"weight_mutate_rate"`
	WeightMutatePower float64 `ini:"weight_mutate_power"`
	WeightReplaceRate float64 `ini:"weight_replace_rate"`
}

// ReproductionConfig holds selection and crossover parameters
type ReproductionConfig struct {
	Elitism        int     `ini:"elitism"`
	Selection      string  `ini:"selection"` // tournament | roulette
	TournamentSize int     `ini:"tournament_size"`
	Crossover      string  `ini:"crossover"` // uniform | two_point
	CrossoverMix   float64 `ini:"crossover_mix"`
}

// RewardConfig holds the fitness shaping of a generation
type RewardConfig struct {
	Survival float64 `ini:"survival"`
	Dodge    float64 `ini:"dodge"`
	Crash    float64 `ini:"crash"`
}

// NewConfig returns the built-in hyperparameters
func NewConfig() *Config {
	return &Config{
		Neat: NeatConfig{
			PopSize:          parameter.GAPoolSize,
			FitnessThreshold: parameter.GAFitnessThreshold,
			MaxGenerations:   parameter.GAMaxGenerations,
			MaxTicks:         parameter.GAMaxTicksPerGeneration,
		},
		Genome: GenomeConfig{
			NumInputs:         parameter.SensorCount,
			NumOutputs:        parameter.ActionCount,
			NumHidden:         parameter.GAHiddenNodes,
			ActivationDefault: parameter.GAActivation,
			WeightInitStdev:   parameter.GAWeightInitStdDev,
			WeightMinValue:    parameter.GAWeightMin,
			WeightMaxValue:    parameter.GAWeightMax,
			WeightMutateRate:  parameter.GAPerturbationRate,
			WeightMutatePower: parameter.GAPerturbationPower,
			WeightReplaceRate: parameter.GAReplaceRate,
		},
		Reproduction: ReproductionConfig{
			Elitism:        parameter.GAEliteCount,
			Selection:      "tournament",
			TournamentSize: parameter.GATournamentSize,
			Crossover:      "uniform",
			CrossoverMix:   parameter.GACrossoverMixProbability,
		},
		Reward: RewardConfig{
			Survival: parameter.RewardSurvival,
			Dodge:    parameter.RewardDodge,
			Crash:    parameter.RewardCrash,
		},
	}
}

// LoadConfig loads hyperparameters from an INI file over the built-in defaults
// Keys absent from the file keep their default value
func LoadConfig(filePath string) (*Config, error) {
	file, err := ini.LoadSources(ini.LoadOptions{
		SpaceBeforeInlineComment: true,
	}, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file '%s': %w", filePath, err)
	}

	config := NewConfig()

	sections := []struct {
		name   string
		target any
	}{
		{"NEAT", &config.Neat},
		{"DefaultGenome", &config.Genome},
		{"DefaultReproduction", &config.Reproduction},
		{"Reward", &config.Reward},
	}
	for _, s := range sections {
		if err := file.Section(s.name).MapTo(s.target); err != nil {
			return nil, fmt.Errorf("failed to map [%s] section: %w", s.name, err)
		}
	}

	config.Genome.ActivationDefault = strings.ToLower(strings.TrimSpace(config.Genome.ActivationDefault))
	config.Reproduction.Selection = strings.ToLower(strings.TrimSpace(config.Reproduction.Selection))
	config.Reproduction.Crossover = strings.ToLower(strings.TrimSpace(config.Reproduction.Crossover))

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config '%s': %w", filePath, err)
	}
	return config, nil
}

// Validate checks every hyperparameter
func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
	}

	if c.Neat.PopSize < 1 {
		return invalid("pop_size must be positive, got %d", c.Neat.PopSize)
	}
	if c.Neat.MaxGenerations < 1 {
		return invalid("max_generations must be positive, got %d", c.Neat.MaxGenerations)
	}
	if c.Neat.MaxTicks < 0 {
		return invalid("max_ticks cannot be negative")
	}

	// The sensor vector and the action set are fixed by the game
	if c.Genome.NumInputs != parameter.SensorCount {
		return invalid("num_inputs must be %d, got %d", parameter.SensorCount, c.Genome.NumInputs)
	}
	if c.Genome.NumOutputs != parameter.ActionCount {
		return invalid("num_outputs must be %d, got %d", parameter.ActionCount, c.Genome.NumOutputs)
	}
	if err := c.Shape().Validate(); err != nil {
		return invalid("%v", err)
	}
	if c.Genome.WeightMaxValue < c.Genome.WeightMinValue {
		return invalid("weight_max_value cannot be less than weight_min_value")
	}
	if c.Genome.WeightInitStdev < 0 || c.Genome.WeightMutatePower < 0 {
		return invalid("weight_init_stdev and weight_mutate_power cannot be negative")
	}
	for name, p := range map[string]float64{
		"weight_mutate_rate":  c.Genome.WeightMutateRate,
		"weight_replace_rate": c.Genome.WeightReplaceRate,
		"crossover_mix":       c.Reproduction.CrossoverMix,
	} {
		if p < 0 || p > 1 {
			return invalid("%s must be between 0 and 1, got %v", name, p)
		}
	}

	if c.Reproduction.Elitism < 0 || c.Reproduction.Elitism > c.Neat.PopSize {
		return invalid("elitism must be within [0, pop_size], got %d", c.Reproduction.Elitism)
	}
	switch c.Reproduction.Selection {
	case "tournament":
		if c.Reproduction.TournamentSize < 1 {
			return invalid("tournament_size must be positive")
		}
	case "roulette":
	default:
		return invalid("unknown selection '%s', must be 'tournament' or 'roulette'", c.Reproduction.Selection)
	}
	switch c.Reproduction.Crossover {
	case "uniform", "two_point":
	default:
		return invalid("unknown crossover '%s', must be 'uniform' or 'two_point'", c.Reproduction.Crossover)
	}

	if err := c.Rewards().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Shape returns the network topology of every genome
func (c *Config) Shape() neural.Shape {
	return neural.Shape{
		Inputs:     c.Genome.NumInputs,
		Hidden:     c.Genome.NumHidden,
		Outputs:    c.Genome.NumOutputs,
		Activation: c.Genome.ActivationDefault,
	}
}

// Rewards returns the simulation reward shaping
func (c *Config) Rewards() race.Rewards {
	return race.Rewards{
		Survival: c.Reward.Survival,
		Dodge:    c.Reward.Dodge,
		Crash:    c.Reward.Crash,
	}
}

// EngineConfig returns the evolution engine parameters
func (c *Config) EngineConfig() genetic.EngineConfig {
	return genetic.EngineConfig{
		PoolSize:         c.Neat.PopSize,
		EliteCount:       c.Reproduction.Elitism,
		PerturbationRate: c.Genome.WeightMutateRate,
		MaxIterations:    c.Neat.MaxGenerations,
		Seed:             c.Neat.Seed,
	}
}

// Perturbator returns the bounded weight mutation operator, also used for initial genomes
func (c *Config) Perturbator() *genetic.BoundedPerturbator {
	return &genetic.BoundedPerturbator{
		Min:         c.Genome.WeightMinValue,
		Max:         c.Genome.WeightMaxValue,
		Power:       c.Genome.WeightMutatePower,
		ReplaceRate: c.Genome.WeightReplaceRate,
		InitMean:    c.Genome.WeightInitMean,
		InitStdDev:  c.Genome.WeightInitStdev,
	}
}

// Selector returns the configured parent selection operator
func (c *Config) Selector() genetic.Selector[[]float64, float64] {
	if c.Reproduction.Selection == "roulette" {
		return &genetic.RouletteSelector[[]float64, float64]{}
	}
	return &genetic.TournamentSelector[[]float64, float64]{TournamentSize: c.Reproduction.TournamentSize}
}

// Combiner returns the configured crossover operator
func (c *Config) Combiner() genetic.Combiner[[]float64, float64] {
	if c.Reproduction.Crossover == "two_point" {
		return &genetic.NPointCombiner[[]float64, float64, float64]{Points: 2}
	}
	return &genetic.UniformCombiner[[]float64, float64, float64]{MixProbability: c.Reproduction.CrossoverMix}
}
