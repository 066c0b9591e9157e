package race

import (
	"errors"
	"testing"
)

type keys struct{ left, right bool }

func (k keys) Held() (bool, bool) { return k.left, k.right }

func TestHumanController(t *testing.T) {
	tests := []struct {
		name        string
		left, right bool
		want        Action
	}{
		{"idle", false, false, ActionNone},
		{"left", true, false, ActionLeft},
		{"right", false, true, ActionRight},
		{"both prefers left", true, true, ActionLeft},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := HumanController{Input: keys{tt.left, tt.right}}
			if got := c.Decide(Sensors{}); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestArgMax_FirstIndexWinsTies(t *testing.T) {
	tests := []struct {
		out  []float64
		want Action
	}{
		{[]float64{0.9, 0.1, 0.2}, ActionLeft},
		{[]float64{0.1, 0.9, 0.2}, ActionNone},
		{[]float64{0.1, 0.2, 0.9}, ActionRight},
		{[]float64{0.5, 0.5, 0.5}, ActionLeft},
		{[]float64{0.1, 0.7, 0.7}, ActionNone},
	}
	for _, tt := range tests {
		if got := ArgMax(tt.out); got != tt.want {
			t.Errorf("%v: expected %v, got %v", tt.out, tt.want, got)
		}
	}
}

func TestLearnedController(t *testing.T) {
	var seen []float64
	c := NewLearnedController(func(in []float64) ([]float64, error) {
		seen = in
		return []float64{0, 0, 1}, nil
	})

	s := Sensors{0.1, 0.2, 0.3, 0.4, 0.5}
	if got := c.Decide(s); got != ActionRight {
		t.Errorf("expected right, got %v", got)
	}
	if len(seen) != 5 || seen[4] != 0.5 {
		t.Errorf("decision function received %v", seen)
	}

	failing := NewLearnedController(func([]float64) ([]float64, error) {
		return nil, errors.New("boom")
	})
	if got := failing.Decide(s); got != ActionNone {
		t.Errorf("expected none on error, got %v", got)
	}

	short := NewLearnedController(func([]float64) ([]float64, error) {
		return []float64{1}, nil
	})
	if got := short.Decide(s); got != ActionNone {
		t.Errorf("expected none on wrong arity, got %v", got)
	}
}

func TestRewardsValidate(t *testing.T) {
	if err := DefaultRewards().Validate(); err != nil {
		t.Errorf("default rewards rejected: %v", err)
	}

	bad := []Rewards{
		{Survival: 0, Dodge: 1, Crash: -2},
		{Survival: 1, Dodge: 0.5, Crash: -2},
		{Survival: 0.1, Dodge: 1, Crash: -0.5},
		{Survival: 0.1, Dodge: 1, Crash: 5},
	}
	for _, r := range bad {
		if err := r.Validate(); !errors.Is(err, ErrRewardOrder) {
			t.Errorf("%+v: expected ErrRewardOrder, got %v", r, err)
		}
	}
}
