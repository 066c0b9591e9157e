package race

import "github.com/lixenwraith/lanerace/parameter"

// Controller chooses one action per tick from the player's sensors
type Controller interface {
	Decide(s Sensors) Action
}

// InputSource exposes the two held-direction signals of a human player
type InputSource interface {
	Held() (left, right bool)
}

// HumanController maps held keys to actions, left wins when both are held
type HumanController struct {
	Input InputSource
}

func (h HumanController) Decide(Sensors) Action {
	left, right := h.Input.Held()
	switch {
	case left:
		return ActionLeft
	case right:
		return ActionRight
	}
	return ActionNone
}

// DecisionFunc scores each action for a sensor vector
type DecisionFunc func(inputs []float64) ([]float64, error)

// DecisionFactory builds a decision function from trained parameters
type DecisionFactory func(params []float64) (DecisionFunc, error)

// LearnedController picks the highest scoring action of a trained decision function
type LearnedController struct {
	decide DecisionFunc
}

// NewLearnedController wraps a decision function
func NewLearnedController(fn DecisionFunc) *LearnedController {
	return &LearnedController{decide: fn}
}

// Decide returns ActionNone when the decision function fails or returns the wrong arity
func (c *LearnedController) Decide(s Sensors) Action {
	out, err := c.decide(s.Slice())
	if err != nil || len(out) != parameter.ActionCount {
		return ActionNone
	}
	return ArgMax(out)
}

// ArgMax maps decision outputs to the action with the largest score, first index wins ties
func ArgMax(outputs []float64) Action {
	best := 0
	for i := 1; i < len(outputs); i++ {
		if outputs[i] > outputs[best] {
			best = i
		}
	}
	return Action(best)
}

// ControllerFunc adapts a plain function to Controller
type ControllerFunc func(s Sensors) Action

func (f ControllerFunc) Decide(s Sensors) Action {
	return f(s)
}

// RewardKind tags the event behind a fitness delta
type RewardKind uint8

const (
	RewardSurvival RewardKind = iota
	RewardDodge
	RewardCrash
)

func (k RewardKind) String() string {
	switch k {
	case RewardSurvival:
		return "survival"
	case RewardDodge:
		return "dodge"
	case RewardCrash:
		return "crash"
	}
	return "unknown"
}

// FitnessSink receives per-agent reward deltas during training runs
type FitnessSink interface {
	Reward(agent int, kind RewardKind, delta float64)
}
