// Package tracking records per-agent metrics of a training generation and
// serves as the fitness sink of the simulation
package tracking

import "github.com/lixenwraith/lanerace/race"

// Ledger holds one collector per agent, indexed by player id
// Collectors are reused across generations
type Ledger struct {
	collectors []*Collector
}

// NewLedger creates a ledger for n agents
func NewLedger(n int) *Ledger {
	l := &Ledger{}
	l.Reset(n)
	return l
}

// Reset prepares the ledger for a generation of n agents
func (l *Ledger) Reset(n int) {
	for len(l.collectors) < n {
		l.collectors = append(l.collectors, NewCollector())
	}
	l.collectors = l.collectors[:n]
	for _, c := range l.collectors {
		c.Reset()
	}
}

// Reward implements race.FitnessSink
// Survival rewards mark an alive tick; dodges and crashes are counted as events
func (l *Ledger) Reward(agent int, kind race.RewardKind, delta float64) {
	if agent < 0 || agent >= len(l.collectors) {
		return
	}
	c := l.collectors[agent]

	switch kind {
	case race.RewardSurvival:
		c.Collect(MetricBundle{MetricFitness: delta})
	case race.RewardDodge:
		c.Add(MetricFitness, delta)
		c.Add(MetricDodges, 1)
	case race.RewardCrash:
		c.Add(MetricFitness, delta)
		c.Add(MetricCrashes, 1)
	}
}

// Len returns the number of tracked agents
func (l *Ledger) Len() int {
	return len(l.collectors)
}

// Fitness returns the accumulated fitness of one agent
func (l *Ledger) Fitness(agent int) float64 {
	return l.collectors[agent].Sum(MetricFitness)
}

// Scores returns every agent's fitness in player id order
func (l *Ledger) Scores() []float64 {
	scores := make([]float64, len(l.collectors))
	for i, c := range l.collectors {
		scores[i] = c.Sum(MetricFitness)
	}
	return scores
}

// Summary returns the finalized metrics of one agent
func (l *Ledger) Summary(agent int) MetricBundle {
	return l.collectors[agent].Finalize()
}

// Totals sums every agent's metrics, peak values excluded
func (l *Ledger) Totals() MetricBundle {
	total := make(MetricBundle)
	for _, c := range l.collectors {
		total[MetricTicksAlive] += float64(c.ticks)
		for key, sum := range c.sums {
			total[key] += sum
		}
	}
	return total
}
