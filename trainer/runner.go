package trainer

import (
	"context"

	"github.com/lixenwraith/lanerace/race"
)

// Runner drives one generation's simulation until it is over
// The generation number is passed through for display only
type Runner interface {
	Run(ctx context.Context, sim *race.Simulation, generation int) error
}

// RunnerFunc adapts a plain function to Runner
type RunnerFunc func(ctx context.Context, sim *race.Simulation, generation int) error

func (f RunnerFunc) Run(ctx context.Context, sim *race.Simulation, generation int) error {
	return f(ctx, sim, generation)
}

// checkEvery is the tick interval between cancellation checks of a headless run
const checkEvery = 256

// Headless steps the simulation as fast as possible without rendering
type Headless struct{}

func (Headless) Run(ctx context.Context, sim *race.Simulation, _ int) error {
	for !sim.Over() {
		sim.Step()
		if sim.Tick()%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				sim.Stop()
				return err
			}
		}
	}
	return nil
}
