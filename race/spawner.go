package race

import "math/rand/v2"

// Spawner emits one enemy every Interval ticks
type Spawner struct {
	interval int
	timer    int
	track    *Track
	rng      *rand.Rand
}

// NewSpawner creates a spawner; rng drives the lane choice and may be seeded for replay
func NewSpawner(track *Track, interval int, rng *rand.Rand) *Spawner {
	if interval < 1 {
		interval = 1
	}
	return &Spawner{
		interval: interval,
		track:    track,
		rng:      rng,
	}
}

// Tick advances the timer and returns a new enemy when the interval elapses, nil otherwise
func (s *Spawner) Tick(speed float64) *Enemy {
	s.timer++
	if s.timer < s.interval {
		return nil
	}
	s.timer = 0
	return NewEnemy(s.track, speed, s.rng)
}

// Timer returns ticks elapsed since the last spawn
func (s *Spawner) Timer() int {
	return s.timer
}

// Reset restarts the interval
func (s *Spawner) Reset() {
	s.timer = 0
}
