package race

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/lixenwraith/lanerace/parameter"
)

func TestPlayerMove_SaturatesAtEdges(t *testing.T) {
	track := DefaultTrack()
	rng := rand.New(rand.NewPCG(7, 7))

	for start := 0; start < track.LaneCount(); start++ {
		p := NewPlayer(track, 0)
		p.Lane = start
		for i := 0; i < 500; i++ {
			p.Move(Action(rng.IntN(3)))
			if !track.ValidLane(p.Lane) {
				t.Fatalf("lane %d escaped track after %d moves", p.Lane, i)
			}
			if p.X != track.Lanes[p.Lane] {
				t.Fatalf("expected x %v for lane %d, got %v", track.Lanes[p.Lane], p.Lane, p.X)
			}
		}
	}

	p := NewPlayer(track, 0)
	for i := 0; i < 10; i++ {
		p.Move(ActionLeft)
	}
	if p.Lane != 0 {
		t.Errorf("expected lane 0 after repeated left, got %d", p.Lane)
	}
	for i := 0; i < 10; i++ {
		p.Move(ActionRight)
	}
	if p.Lane != track.LaneCount()-1 {
		t.Errorf("expected lane %d after repeated right, got %d", track.LaneCount()-1, p.Lane)
	}
}

func TestPlayer_DefaultPlacement(t *testing.T) {
	track := DefaultTrack()
	p := NewPlayer(track, 3)

	if p.Lane != parameter.PlayerStartLane {
		t.Errorf("expected start lane %d, got %d", parameter.PlayerStartLane, p.Lane)
	}
	if p.X != 175 || p.Y != 580 {
		t.Errorf("expected (175,580), got (%v,%v)", p.X, p.Y)
	}
	if !p.Alive {
		t.Error("new player should be alive")
	}
	if p.Box.Width != 50 || p.Box.Height != 100 {
		t.Errorf("expected 50x100 box, got %vx%v", p.Box.Width, p.Box.Height)
	}
}

func TestPlayer_StartLaneClampedToTrack(t *testing.T) {
	for lanes := 1; lanes <= 3; lanes++ {
		track := DefaultTrack()
		track.Lanes = track.Lanes[:lanes]

		p := NewPlayer(track, 0)
		want := min(parameter.PlayerStartLane, lanes-1)
		if p.Lane != want {
			t.Errorf("%d lanes: expected start lane %d, got %d", lanes, want, p.Lane)
		}
		if p.X != track.Lanes[want] {
			t.Errorf("%d lanes: expected x %v, got %v", lanes, track.Lanes[want], p.X)
		}
	}
}

// Scenario: start in lane 1, steer right twice
func TestPlayerMove_RightTwiceReachesLastLane(t *testing.T) {
	track := DefaultTrack()
	p := NewPlayer(track, 0)

	p.Move(ActionRight)
	p.Move(ActionRight)

	if p.Lane != 3 {
		t.Errorf("expected lane 3, got %d", p.Lane)
	}
	if p.X != 375 {
		t.Errorf("expected x 375, got %v", p.X)
	}
}

func TestEnemy_SpawnsAboveTrackInRandomLane(t *testing.T) {
	track := DefaultTrack()
	rng := rand.New(rand.NewPCG(1, 2))
	seen := make(map[int]bool)

	for i := 0; i < 200; i++ {
		e := NewEnemy(track, 5, rng)
		if !track.ValidLane(e.Lane) {
			t.Fatalf("invalid lane %d", e.Lane)
		}
		if e.Y != -track.CarHeight {
			t.Fatalf("expected y %v, got %v", -track.CarHeight, e.Y)
		}
		if e.Box.Bottom() > 0 {
			t.Fatalf("enemy should start above the visible area, bottom at %v", e.Box.Bottom())
		}
		seen[e.Lane] = true
	}
	if len(seen) != track.LaneCount() {
		t.Errorf("expected every lane to be used, saw %d", len(seen))
	}
}

func TestEnemyMove_Monotonic(t *testing.T) {
	track := DefaultTrack()
	for _, speed := range []float64{0.01, 1, 5, 17.5} {
		e := NewEnemyInLane(track, 2, -100, speed)
		prev := e.Y
		for i := 0; i < 100; i++ {
			e.Move(1)
			if e.Y < prev {
				t.Fatalf("speed %v: y decreased from %v to %v", speed, prev, e.Y)
			}
			prev = e.Y
		}
		if cx, cy := e.Box.Center(); math.Abs(cx-e.X) > 1e-9 || math.Abs(cy-e.Y) > 1e-9 {
			t.Errorf("box not centred on enemy: (%v,%v) vs (%v,%v)", cx, cy, e.X, e.Y)
		}
	}
}

func TestNewEnemy_RejectsNonPositiveSpeed(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for zero speed")
		}
	}()
	NewEnemyInLane(DefaultTrack(), 0, 0, 0)
}
