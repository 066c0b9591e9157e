package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/lanerace/race"
)

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestKeyTable_Lookup(t *testing.T) {
	kt := DefaultKeyTable()

	tests := []struct {
		name string
		ev   *tcell.EventKey
		want Intent
	}{
		{"arrow left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), IntentLeft},
		{"arrow right", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), IntentRight},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), IntentQuit},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), IntentQuit},
		{"q", runeKey('q'), IntentQuit},
		{"upper D", runeKey('D'), IntentRight},
		{"h", runeKey('h'), IntentLeft},
		{"m", runeKey('m'), IntentToggleMute},
		{"unbound", runeKey('x'), IntentNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := kt.Lookup(tt.ev); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestKeyState_HoldExpires(t *testing.T) {
	ks := NewKeyState(nil, 2)

	ks.HandleEvent(runeKey('a'))
	for tick := 0; tick < 2; tick++ {
		if left, right := ks.Held(); !left || right {
			t.Fatalf("tick %d: expected left held, got %v %v", tick, left, right)
		}
		ks.Tick()
	}
	if left, _ := ks.Held(); left {
		t.Error("expected hold to expire")
	}
}

func TestKeyState_OppositeReleases(t *testing.T) {
	ks := NewKeyState(nil, 5)

	ks.HandleEvent(runeKey('a'))
	ks.HandleEvent(runeKey('d'))
	if left, right := ks.Held(); left || !right {
		t.Errorf("expected only right held, got %v %v", left, right)
	}

	ks.Release()
	if left, right := ks.Held(); left || right {
		t.Error("expected nothing held after release")
	}
}

func TestKeyState_NonKeyEvents(t *testing.T) {
	ks := NewKeyState(nil, 1)
	if got := ks.HandleEvent(tcell.NewEventResize(80, 24)); got != IntentNone {
		t.Errorf("expected none for resize, got %v", got)
	}
	if got := ks.HandleEvent(runeKey('q')); got != IntentQuit {
		t.Errorf("expected quit, got %v", got)
	}
}

// One press moves the human-controlled car exactly one lane
func TestKeyState_DrivesHumanController(t *testing.T) {
	ks := NewKeyState(nil, 1)
	ctrl := race.HumanController{Input: ks}
	player := race.NewPlayer(race.DefaultTrack(), 0)

	ks.HandleEvent(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	for range 3 {
		player.Move(ctrl.Decide(race.Sensors{}))
		ks.Tick()
	}
	if player.Lane != 2 {
		t.Errorf("expected lane 2, got %d", player.Lane)
	}
}
