package race

import "github.com/lixenwraith/lanerace/vmath"

// ActorView is the render-facing copy of an actor
type ActorView struct {
	Lane int
	Box  vmath.Rect
}

// Snapshot is a read-only copy of the simulation state for rendering and reporting
type Snapshot struct {
	Tick    int
	Speed   float64
	Scroll  float64
	Score   int
	Alive   int
	Over    bool
	Players []ActorView
	Enemies []ActorView
}

// Snapshot copies the current state; the result does not alias simulation memory
func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:    s.tick,
		Speed:   s.speed,
		Scroll:  s.scroll,
		Score:   s.score,
		Alive:   len(s.active),
		Over:    s.over,
		Players: make([]ActorView, len(s.active)),
		Enemies: make([]ActorView, len(s.enemies)),
	}
	for i, a := range s.active {
		snap.Players[i] = ActorView{Lane: a.Player.Lane, Box: a.Player.Box}
	}
	for i, e := range s.enemies {
		snap.Enemies[i] = ActorView{Lane: e.Lane, Box: e.Box}
	}
	return snap
}
