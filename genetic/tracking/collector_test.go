package tracking

import (
	"math"
	"testing"

	"github.com/lixenwraith/lanerace/race"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCollector_Accumulation(t *testing.T) {
	c := NewCollector()

	c.Collect(MetricBundle{"distance": 10.0})
	c.Collect(MetricBundle{"distance": 20.0})
	c.Collect(MetricBundle{"distance": -5.0})
	c.Add("events", 1)

	result := c.Finalize()

	if result[MetricTicksAlive] != 3 {
		t.Errorf("expected 3 ticks, got %v", result[MetricTicksAlive])
	}
	if result["distance"] != 25.0 {
		t.Errorf("expected distance 25.0, got %v", result["distance"])
	}
	if result["peak_distance"] != 30.0 {
		t.Errorf("expected peak_distance 30.0, got %v", result["peak_distance"])
	}
	if result["events"] != 1 {
		t.Errorf("expected 1 event, got %v", result["events"])
	}
}

func TestCollector_Reset(t *testing.T) {
	c := NewCollector()

	c.Collect(MetricBundle{"x": 10.0})
	c.Reset()
	c.Collect(MetricBundle{"x": 5.0})

	result := c.Finalize()

	if result[MetricTicksAlive] != 1 {
		t.Errorf("expected 1 tick after reset, got %v", result[MetricTicksAlive])
	}
	if result["x"] != 5.0 {
		t.Errorf("expected x 5.0 after reset, got %v", result["x"])
	}
}

func TestLedger_RewardKinds(t *testing.T) {
	l := NewLedger(2)

	l.Reward(0, race.RewardSurvival, 0.1)
	l.Reward(0, race.RewardSurvival, 0.1)
	l.Reward(0, race.RewardDodge, 1)
	l.Reward(1, race.RewardSurvival, 0.1)
	l.Reward(1, race.RewardCrash, -1)
	l.Reward(5, race.RewardCrash, -1) // unknown agent ignored

	if !approx(l.Fitness(0), 1.2) {
		t.Errorf("expected fitness 1.2, got %v", l.Fitness(0))
	}
	if !approx(l.Fitness(1), -0.9) {
		t.Errorf("expected fitness -0.9, got %v", l.Fitness(1))
	}

	s0 := l.Summary(0)
	if s0[MetricTicksAlive] != 2 || s0[MetricDodges] != 1 || s0.Get(MetricCrashes, 0) != 0 {
		t.Errorf("unexpected summary for agent 0: %v", s0)
	}
	s1 := l.Summary(1)
	if s1[MetricTicksAlive] != 1 || s1[MetricCrashes] != 1 {
		t.Errorf("unexpected summary for agent 1: %v", s1)
	}

	scores := l.Scores()
	if len(scores) != 2 || !approx(scores[0], 1.2) || !approx(scores[1], -0.9) {
		t.Errorf("unexpected scores %v", scores)
	}

	totals := l.Totals()
	if totals[MetricTicksAlive] != 3 || totals[MetricDodges] != 1 || totals[MetricCrashes] != 1 {
		t.Errorf("unexpected totals %v", totals)
	}
}

func TestLedger_ResetReusesCollectors(t *testing.T) {
	l := NewLedger(3)
	first := l.collectors[0]
	l.Reward(0, race.RewardSurvival, 0.1)

	l.Reset(2)
	if l.Len() != 2 {
		t.Fatalf("expected 2 agents, got %d", l.Len())
	}
	if l.collectors[0] != first {
		t.Error("expected collector to be reused")
	}
	if l.Fitness(0) != 0 {
		t.Error("expected collector to be reset")
	}

	l.Reset(4)
	if l.Len() != 4 || l.Fitness(3) != 0 {
		t.Errorf("expected 4 clean agents, got %d", l.Len())
	}
}

func TestCollector_PeakOfNegativeSum(t *testing.T) {
	c := NewCollector()

	c.Add(MetricFitness, -1)
	c.Collect(MetricBundle{MetricFitness: 0.1})
	c.Add(MetricFitness, -0.5)

	result := c.Finalize()
	if got := result.Get(PeakKey(MetricFitness), 0); !approx(got, -0.9) {
		t.Errorf("expected peak_fitness -0.9, got %v", got)
	}
	if !approx(result[MetricFitness], -1.4) {
		t.Errorf("expected fitness -1.4, got %v", result[MetricFitness])
	}
}

func TestMetricBundle_Get(t *testing.T) {
	b := MetricBundle{"x": 1}
	if b.Get("x", 5) != 1 || b.Get("missing", 5) != 5 {
		t.Errorf("unexpected lookups in %v", b)
	}
}
