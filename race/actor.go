package race

import (
	"fmt"
	"math/rand/v2"

	"github.com/lixenwraith/lanerace/parameter"
	"github.com/lixenwraith/lanerace/vmath"
)

// Action is a discrete steering decision, ordered as decision function outputs
type Action uint8

const (
	ActionLeft Action = iota
	ActionNone
	ActionRight
)

func (a Action) String() string {
	switch a {
	case ActionLeft:
		return "left"
	case ActionNone:
		return "none"
	case ActionRight:
		return "right"
	}
	return fmt.Sprintf("action(%d)", uint8(a))
}

// Player is a car steered between lanes at a fixed height
type Player struct {
	ID    int
	Lane  int
	X, Y  float64
	Box   vmath.Rect
	Alive bool
	Score int

	track *Track
}

// NewPlayer places a player in the start lane near the bottom of the track
func NewPlayer(track *Track, id int) *Player {
	p := &Player{
		ID:    id,
		Lane:  defaultLane(track),
		Y:     track.PlayerY,
		Alive: true,
		track: track,
	}
	p.X = track.LaneX(p.Lane)
	p.updateBox()
	return p
}

// Move applies an action; lane changes saturate at the track edges
func (p *Player) Move(action Action) {
	switch action {
	case ActionLeft:
		if p.Lane > 0 {
			p.Lane--
		}
	case ActionRight:
		if p.Lane < p.track.LaneCount()-1 {
			p.Lane++
		}
	}
	p.X = p.track.LaneX(p.Lane)
	p.updateBox()
}

func (p *Player) updateBox() {
	p.Box = vmath.RectAround(p.X, p.Y, p.track.CarWidth, p.track.CarHeight)
}

// Enemy is a car driving down a single lane
type Enemy struct {
	Lane  int
	X, Y  float64
	Box   vmath.Rect
	Speed float64

	track *Track
}

// NewEnemy creates an enemy in a uniformly random lane just above the visible area
func NewEnemy(track *Track, speed float64, rng *rand.Rand) *Enemy {
	return NewEnemyInLane(track, rng.IntN(track.LaneCount()), -track.CarHeight, speed)
}

// NewEnemyInLane creates an enemy at an explicit lane and height
func NewEnemyInLane(track *Track, lane int, y, speed float64) *Enemy {
	if speed <= 0 {
		panic(fmt.Sprintf("race: enemy speed must be positive, got %v", speed))
	}
	e := &Enemy{
		Lane:  lane,
		X:     track.LaneX(lane),
		Y:     y,
		Speed: speed,
		track: track,
	}
	e.updateBox()
	return e
}

// Move advances the enemy down the track by speed scaled by dtScale
func (e *Enemy) Move(dtScale float64) {
	e.Y += e.Speed * dtScale
	e.updateBox()
}

func (e *Enemy) updateBox() {
	e.Box = vmath.RectAround(e.X, e.Y, e.track.CarWidth, e.track.CarHeight)
}

// defaultLane is the configured start lane, clamped onto narrower tracks
func defaultLane(track *Track) int {
	return max(0, min(parameter.PlayerStartLane, track.LaneCount()-1))
}
