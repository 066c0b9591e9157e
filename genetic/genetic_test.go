package genetic

import (
	"math/rand/v2"
	"testing"
)

func testRng() *rand.Rand {
	return rand.New(rand.NewPCG(42, 42))
}

func poolOf(scores ...float64) *Pool[[]float64, float64] {
	p := &Pool[[]float64, float64]{}
	for i, s := range scores {
		p.Members = append(p.Members, Candidate[[]float64, float64]{Data: []float64{float64(i)}, Score: s})
	}
	return p
}

func TestTournamentSelector_FavoursFitter(t *testing.T) {
	sel := &TournamentSelector[[]float64, float64]{TournamentSize: 3}
	picked := sel.Select(poolOf(1, 2, 3), 1000, testRng())

	if len(picked) != 1000 {
		t.Fatalf("expected 1000 selections, got %d", len(picked))
	}
	counts := map[float64]int{}
	for _, c := range picked {
		counts[c.Score]++
	}
	if counts[3] <= counts[1] {
		t.Errorf("expected best to win more often than worst, got %v", counts)
	}
}

func TestRouletteSelector(t *testing.T) {
	sel := &RouletteSelector[[]float64, float64]{}

	// Shifted weights leave the worst candidate with zero share
	for _, c := range sel.Select(poolOf(-4, 6), 100, testRng()) {
		if c.Score != 6 {
			t.Fatalf("expected only the fitter candidate, got score %v", c.Score)
		}
	}

	counts := map[float64]int{}
	for _, c := range sel.Select(poolOf(2, 2), 200, testRng()) {
		counts[c.Data[0]]++
	}
	if counts[0] == 0 || counts[1] == 0 {
		t.Errorf("flat pool should select uniformly, got %v", counts)
	}

	if got := sel.Select(&Pool[[]float64, float64]{}, 3, testRng()); got != nil {
		t.Errorf("expected nil from empty pool, got %v", got)
	}
}

func TestUniformCombiner(t *testing.T) {
	p1 := Candidate[[]float64, float64]{Data: []float64{1, 2, 3, 4, 5, 6}}
	p2 := Candidate[[]float64, float64]{Data: []float64{-1, -2, -3, -4, -5, -6}}

	uc := &UniformCombiner[[]float64, float64, float64]{MixProbability: 0.5}
	kids := uc.Combine([]Candidate[[]float64, float64]{p1, p2}, testRng())
	if len(kids) != 2 {
		t.Fatalf("expected 2 offspring, got %d", len(kids))
	}
	for i := range p1.Data {
		a, b := kids[0][i], kids[1][i]
		if a != -b || (a != p1.Data[i] && a != p2.Data[i]) {
			t.Errorf("gene %d: offspring not complementary: %v %v", i, a, b)
		}
	}

	kids[0][0] = 99
	if p1.Data[0] == 99 || p2.Data[0] == 99 {
		t.Error("offspring alias parent data")
	}

	solo := uc.Combine([]Candidate[[]float64, float64]{p1}, testRng())
	solo[0][0] = 42
	if p1.Data[0] == 42 {
		t.Error("single-parent clone aliases parent data")
	}
}

func TestNPointCombiner_SinglePoint(t *testing.T) {
	zeros := Candidate[[]float64, float64]{Data: make([]float64, 10)}
	ones := Candidate[[]float64, float64]{Data: []float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}}

	nc := &NPointCombiner[[]float64, float64, float64]{Points: 1}
	kids := nc.Combine([]Candidate[[]float64, float64]{zeros, ones}, testRng())

	switches := 0
	for i := 1; i < len(kids[0]); i++ {
		if kids[0][i] != kids[0][i-1] {
			switches++
		}
		if kids[0][i]+kids[1][i] != 1 {
			t.Errorf("gene %d: offspring not complementary", i)
		}
	}
	if switches != 1 {
		t.Errorf("expected exactly one crossover point, got %d", switches)
	}
}

func TestBoundedPerturbator(t *testing.T) {
	bp := &BoundedPerturbator{Min: -1, Max: 1, Power: 100, ReplaceRate: 0.1, InitStdDev: 1}
	rng := testRng()

	genes := []float64{0.5, -0.5, 0}
	bp.Perturb(&genes, 0, rng)
	if genes[0] != 0.5 || genes[1] != -0.5 || genes[2] != 0 {
		t.Errorf("rate 0 must leave genes untouched, got %v", genes)
	}

	changed := false
	for range 10 {
		bp.Perturb(&genes, 1, rng)
		for _, g := range genes {
			if g < -1 || g > 1 {
				t.Fatalf("gene %v outside bounds", g)
			}
		}
		if genes[0] != 0.5 {
			changed = true
		}
	}
	if !changed {
		t.Error("rate 1 should mutate genes")
	}

	fresh := bp.Initializer(12)(rng)
	if len(fresh) != 12 {
		t.Errorf("expected 12 genes, got %d", len(fresh))
	}
	for _, g := range fresh {
		if g < -1 || g > 1 {
			t.Errorf("initial gene %v outside bounds", g)
		}
	}

	var empty []float64
	bp.Perturb(&empty, 1, rng)
	bp.Perturb(nil, 1, rng)
}
