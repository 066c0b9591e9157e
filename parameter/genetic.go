package parameter

// Persistence and config locations
const (
	// ModelPath is the default location of the trained model blob
	ModelPath = "./best_model.gob.gz"

	// ConfigPath is the default evolution hyperparameter file
	ConfigPath = "./config/feedforward.ini"
)

// Evolution - engine defaults, overridden by the INI config
const (
	// GAPoolSize is the number of agents racing in each generation
	GAPoolSize = 50

	// GAEliteCount is preserved best performers per generation
	GAEliteCount = 2

	// GAMaxGenerations caps a training run
	GAMaxGenerations = 50

	// GAFitnessThreshold stops training once the best agent reaches it
	GAFitnessThreshold = 1000.0

	// GATournamentSize for selection pressure
	GATournamentSize = 3

	// GACrossoverMixProbability for uniform crossover
	GACrossoverMixProbability = 0.5

	// GAPerturbationRate is the per-gene probability of mutation (0.0-1.0)
	GAPerturbationRate = 0.8

	// GAPerturbationPower is the gaussian standard deviation of a weight mutation
	GAPerturbationPower = 0.5

	// GAWeightInitStdDev spreads initial random weights
	GAWeightInitStdDev = 1.0

	// GAWeightMin and GAWeightMax bound every gene
	GAWeightMin = -30.0
	GAWeightMax = 30.0

	// GAReplaceRate is the share of mutations that redraw a gene instead of nudging it
	GAReplaceRate = 0.1

	// GAHiddenNodes is the default hidden layer width (0 = direct input to output)
	GAHiddenNodes = 0

	// GAActivation is the default node activation
	GAActivation = "sigmoid"

	// GAMaxTicksPerGeneration ends a generation whose agents never crash (0 = unlimited)
	GAMaxTicksPerGeneration = 20000
)

// Reward shaping, must keep |crash| >= dodge > survival
const (
	// RewardSurvival is added to every alive agent each tick
	RewardSurvival = 0.1

	// RewardDodge is added to every alive agent per culled enemy
	RewardDodge = 1.0

	// RewardCrash is added to an agent when it collides
	RewardCrash = -1.0
)
