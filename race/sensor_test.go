package race

import (
	"math"
	"math/rand/v2"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSense_NoEnemiesReadsClear(t *testing.T) {
	track := DefaultTrack()
	p := NewPlayer(track, 0)

	s := Sense(track, p, nil, 5)

	if !approx(s[SensorLane], 1.0/3.0) {
		t.Errorf("expected lane 1/3, got %v", s[SensorLane])
	}
	for _, i := range []int{SensorFront, SensorLeft, SensorRight} {
		if s[i] != 1 {
			t.Errorf("sensor %d: expected sentinel 1, got %v", i, s[i])
		}
	}
	if !approx(s[SensorSpeed], 0.25) {
		t.Errorf("expected speed 0.25, got %v", s[SensorSpeed])
	}
}

func TestSense_ClosestThreatPerLane(t *testing.T) {
	track := DefaultTrack()
	p := NewPlayer(track, 0) // lane 1, y 580

	enemies := []*Enemy{
		NewEnemyInLane(track, 1, 100, 5), // gap 480
		NewEnemyInLane(track, 1, 280, 5), // gap 300, closest ahead
		NewEnemyInLane(track, 1, 650, 5), // behind, ignored
		NewEnemyInLane(track, 0, 510, 5), // left gap 70
		NewEnemyInLane(track, 2, 580, 5), // right gap 0, level with player
		NewEnemyInLane(track, 3, 400, 5), // two lanes away, ignored
	}

	s := Sense(track, p, enemies, 5)

	if !approx(s[SensorFront], 300.0/700.0) {
		t.Errorf("front: expected %v, got %v", 300.0/700.0, s[SensorFront])
	}
	if !approx(s[SensorLeft], 70.0/700.0) {
		t.Errorf("left: expected %v, got %v", 70.0/700.0, s[SensorLeft])
	}
	if s[SensorRight] != 0 {
		t.Errorf("right: expected 0, got %v", s[SensorRight])
	}
}

func TestSense_EdgeLanesUseSentinel(t *testing.T) {
	track := DefaultTrack()
	p := NewPlayer(track, 0)
	p.Lane = 0
	p.Move(ActionNone)

	// An enemy in the last lane must never leak into the missing left lane
	enemies := []*Enemy{NewEnemyInLane(track, 3, 300, 5)}
	s := Sense(track, p, enemies, 5)
	if s[SensorLeft] != 1 {
		t.Errorf("left of lane 0: expected sentinel, got %v", s[SensorLeft])
	}
	if s[SensorLane] != 0 {
		t.Errorf("expected lane 0, got %v", s[SensorLane])
	}

	p.Lane = 3
	p.Move(ActionNone)
	enemies = []*Enemy{NewEnemyInLane(track, 0, 300, 5)}
	s = Sense(track, p, enemies, 5)
	if s[SensorRight] != 1 {
		t.Errorf("right of last lane: expected sentinel, got %v", s[SensorRight])
	}
	if s[SensorLane] != 1 {
		t.Errorf("expected lane 1.0, got %v", s[SensorLane])
	}
}

func TestSense_SpeedClamped(t *testing.T) {
	track := DefaultTrack()
	s := Sense(track, NewPlayer(track, 0), nil, 55)
	if s[SensorSpeed] != 1 {
		t.Errorf("expected speed clamped to 1, got %v", s[SensorSpeed])
	}
}

func TestSense_BoundedOverReachableStates(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 13))
	checked := 0

	probe := ControllerFunc(func(s Sensors) Action {
		if len(s.Slice()) != 5 {
			t.Fatalf("expected 5 sensors, got %d", len(s.Slice()))
		}
		for i, v := range s {
			if v < 0 || v > 1 || math.IsNaN(v) {
				t.Fatalf("sensor %d out of range: %v", i, v)
			}
		}
		checked++
		return Action(rng.IntN(3))
	})

	cfg := TrainingConfig(nil)
	cfg.Rng = rand.New(rand.NewPCG(5, 5))
	cfg.SpawnInterval = 7
	cfg.MaxTicks = 3000
	sim := NewSimulation(cfg, []Controller{probe, probe, probe, probe})
	for !sim.Over() {
		sim.Step()
	}
	if checked == 0 {
		t.Fatal("no sensor vectors produced")
	}
}
