package race

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/lixenwraith/lanerace/parameter"
	"github.com/lixenwraith/lanerace/vmath"
)

// Mode selects termination and reward semantics of a simulation
type Mode uint8

const (
	// ModeSingle runs one player until its first collision, scoring dodged enemies
	ModeSingle Mode = iota
	// ModeTraining runs a population until every agent has crashed, writing fitness to a sink
	ModeTraining
)

func (m Mode) String() string {
	if m == ModeTraining {
		return "training"
	}
	return "single"
}

// Rewards holds the training fitness deltas
type Rewards struct {
	Survival float64 // per alive tick
	Dodge    float64 // per culled enemy, to every alive agent
	Crash    float64 // on collision
}

// DefaultRewards returns the standard reward shaping
func DefaultRewards() Rewards {
	return Rewards{
		Survival: parameter.RewardSurvival,
		Dodge:    parameter.RewardDodge,
		Crash:    parameter.RewardCrash,
	}
}

// ErrRewardOrder is returned when reward magnitudes break crash >= dodge > survival
var ErrRewardOrder = errors.New("reward ordering must satisfy |crash| >= dodge > survival > 0")

// Validate checks the relative ordering of rewards
func (r Rewards) Validate() error {
	if r.Survival <= 0 || r.Dodge <= r.Survival || r.Crash >= 0 || -r.Crash < r.Dodge {
		return fmt.Errorf("%w: got survival=%v dodge=%v crash=%v", ErrRewardOrder, r.Survival, r.Dodge, r.Crash)
	}
	return nil
}

// Config parameterises a simulation run
type Config struct {
	Track         *Track
	Mode          Mode
	SpawnInterval int
	StartSpeed    float64
	SpeedStep     float64
	DeltaScale    float64
	Rewards       Rewards

	// MaxTicks ends the run after this many ticks, 0 runs until every player crashed
	MaxTicks int

	// Rng drives enemy lanes; nil seeds from the runtime source
	Rng *rand.Rand

	// Sink receives fitness deltas in training mode, may be nil
	Sink FitnessSink
}

// DefaultConfig returns the single-player configuration used for human play
func DefaultConfig() Config {
	return Config{
		Track:         DefaultTrack(),
		Mode:          ModeSingle,
		SpawnInterval: parameter.SpawnInterval,
		StartSpeed:    parameter.StartSpeed,
		SpeedStep:     parameter.SpeedStepSingle,
		DeltaScale:    parameter.DeltaScale,
		Rewards:       DefaultRewards(),
	}
}

// TrainingConfig returns the configuration for a training generation
func TrainingConfig(sink FitnessSink) Config {
	cfg := DefaultConfig()
	cfg.Mode = ModeTraining
	cfg.SpeedStep = parameter.SpeedStepTraining
	cfg.MaxTicks = parameter.GAMaxTicksPerGeneration
	cfg.Sink = sink
	return cfg
}

// Agent pairs a player car with its controller
type Agent struct {
	Player     *Player
	Controller Controller
}

// StepResult reports what happened during one tick
type StepResult struct {
	Tick    int
	Spawned bool
	// Crashed lists player ids removed this tick, in agent order
	Crashed []int
	Culled  int
	Alive   int
	Over    bool
}

// Simulation owns all actor state of one run
// Every method must be called from a single goroutine; state is consistent between Step calls
type Simulation struct {
	cfg     Config
	track   *Track
	spawner *Spawner

	agents  []*Agent
	active  []*Agent
	enemies []*Enemy

	speed  float64
	scroll float64
	score  int
	tick   int
	over   bool
}

// NewSimulation creates a run with one agent per controller, player ids follow controller order
// Single mode requires exactly one controller
func NewSimulation(cfg Config, controllers []Controller) *Simulation {
	if cfg.Track == nil {
		cfg.Track = DefaultTrack()
	}
	if cfg.Mode == ModeSingle && len(controllers) != 1 {
		panic(fmt.Sprintf("race: single mode needs one controller, got %d", len(controllers)))
	}
	if cfg.DeltaScale <= 0 {
		cfg.DeltaScale = parameter.DeltaScale
	}
	if cfg.StartSpeed <= 0 {
		cfg.StartSpeed = parameter.StartSpeed
	}
	if cfg.SpawnInterval <= 0 {
		cfg.SpawnInterval = parameter.SpawnInterval
	}
	rng := cfg.Rng
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	s := &Simulation{
		cfg:     cfg,
		track:   cfg.Track,
		spawner: NewSpawner(cfg.Track, cfg.SpawnInterval, rng),
		agents:  make([]*Agent, len(controllers)),
		active:  make([]*Agent, 0, len(controllers)),
		speed:   cfg.StartSpeed,
	}
	for i, c := range controllers {
		a := &Agent{Player: NewPlayer(cfg.Track, i), Controller: c}
		s.agents[i] = a
		s.active = append(s.active, a)
	}
	s.over = len(s.active) == 0
	return s
}

// Step advances the simulation by one tick, a no-op once the run is over
func (s *Simulation) Step() StepResult {
	if s.over {
		return StepResult{Tick: s.tick, Alive: len(s.active), Over: true}
	}

	s.tick++
	res := StepResult{Tick: s.tick}
	training := s.cfg.Mode == ModeTraining

	// Background scroll
	s.scroll += s.speed
	if s.scroll >= s.track.Height {
		s.scroll = 0
	}

	// Spawn
	if e := s.spawner.Tick(s.speed); e != nil {
		s.enemies = append(s.enemies, e)
		res.Spawned = true
	}

	// Decide and steer
	for _, a := range s.active {
		sensors := Sense(s.track, a.Player, s.enemies, s.speed)
		a.Player.Move(a.Controller.Decide(sensors))
		if training {
			s.reward(a.Player.ID, RewardSurvival, s.cfg.Rewards.Survival)
		}
	}

	// Enemies advance
	for _, e := range s.enemies {
		e.Move(s.cfg.DeltaScale)
	}

	// Collisions, retained set rebuilt after the full pass
	retained := s.active[:0]
	for _, a := range s.active {
		if !s.collides(a.Player.Box) {
			retained = append(retained, a)
			continue
		}
		if training {
			s.reward(a.Player.ID, RewardCrash, s.cfg.Rewards.Crash)
		}
		a.Player.Alive = false
		res.Crashed = append(res.Crashed, a.Player.ID)
	}
	clear(s.active[len(retained):])
	s.active = retained

	// Cull enemies past the bottom edge
	kept := s.enemies[:0]
	for _, e := range s.enemies {
		if e.Y <= s.track.Height {
			kept = append(kept, e)
			continue
		}
		res.Culled++
		s.score++
		if training {
			for _, a := range s.active {
				s.reward(a.Player.ID, RewardDodge, s.cfg.Rewards.Dodge)
			}
		} else {
			for _, a := range s.active {
				a.Player.Score++
			}
		}
		s.speed += s.cfg.SpeedStep
	}
	clear(s.enemies[len(kept):])
	s.enemies = kept

	res.Alive = len(s.active)
	switch {
	case res.Alive == 0:
		s.over = true
	case s.cfg.Mode == ModeSingle && len(res.Crashed) > 0:
		s.over = true
	case s.cfg.MaxTicks > 0 && s.tick >= s.cfg.MaxTicks:
		s.over = true
	}
	res.Over = s.over
	return res
}

func (s *Simulation) collides(box vmath.Rect) bool {
	for _, e := range s.enemies {
		if box.Intersects(e.Box) {
			return true
		}
	}
	return false
}

func (s *Simulation) reward(agent int, kind RewardKind, delta float64) {
	if s.cfg.Sink != nil {
		s.cfg.Sink.Reward(agent, kind, delta)
	}
}

// AddEnemy injects an enemy into the active set
func (s *Simulation) AddEnemy(e *Enemy) {
	s.enemies = append(s.enemies, e)
}

// Stop ends the run at the current tick boundary
func (s *Simulation) Stop() {
	s.over = true
}

// Over reports whether the run has ended
func (s *Simulation) Over() bool { return s.over }

// Tick returns the number of completed ticks
func (s *Simulation) Tick() int { return s.tick }

// Speed returns the current enemy speed
func (s *Simulation) Speed() float64 { return s.speed }

// Score returns the number of enemies culled so far
func (s *Simulation) Score() int { return s.score }

// Alive returns the size of the active player set
func (s *Simulation) Alive() int { return len(s.active) }

func (s *Simulation) Track() *Track { return s.track }

func (s *Simulation) Spawner() *Spawner { return s.spawner }

func (s *Simulation) Enemies() []*Enemy { return s.enemies }

// Agents returns every agent including eliminated ones, indexed by player id
func (s *Simulation) Agents() []*Agent { return s.agents }

// Active returns the agents still racing
func (s *Simulation) Active() []*Agent { return s.active }

func (s *Simulation) Mode() Mode { return s.cfg.Mode }

// ScrollOffset returns the cosmetic background offset in [0, track height)
func (s *Simulation) ScrollOffset() float64 { return s.scroll }
