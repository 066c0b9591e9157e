package persistence

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/lixenwraith/lanerace/genetic"
	"github.com/lixenwraith/lanerace/neural"
)

func testModel() ModelDTO {
	shape := neural.Shape{Inputs: 5, Outputs: 3, Activation: "sigmoid"}
	genes := make([]float64, shape.GeneCount())
	for i := range genes {
		genes[i] = float64(i%7) - 3
	}
	return FromCandidate(shape, genetic.Candidate[[]float64, float64]{Data: genes, Score: 412.5}, 17)
}

func TestManager_RoundTrip(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "models", "best.gob.gz"))
	want := testModel()

	if m.Exists() {
		t.Fatal("expected no model before save")
	}
	if err := m.Save(want); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !m.Exists() {
		t.Fatal("expected model after save")
	}

	got, err := m.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.Shape() != want.Shape() {
		t.Errorf("expected shape %s, got %s", want.Shape(), got.Shape())
	}
	if !slices.Equal(got.Genes, want.Genes) {
		t.Errorf("genes differ after round trip")
	}
	if got.Fitness != 412.5 || got.Generation != 17 {
		t.Errorf("expected fitness 412.5 gen 17, got %v gen %d", got.Fitness, got.Generation)
	}

	// Same decisions before and after
	before, _ := want.Network()
	after, err := got.Network()
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	in := []float64{0.33, 1, 0.2, 1, 0.25}
	a, _ := before.Activate(in)
	b, _ := after.Activate(in)
	if !slices.Equal(a, b) {
		t.Errorf("expected identical outputs, got %v and %v", a, b)
	}
}

func TestManager_MissingModel(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "absent.gob.gz"))

	_, err := m.Load()
	if !errors.Is(err, ErrModelNotFound) {
		t.Errorf("expected ErrModelNotFound, got %v", err)
	}
}

func TestManager_CorruptModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.gob.gz")
	if err := os.WriteFile(path, []byte("not a model"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := NewManager(path).Load()
	if err == nil || errors.Is(err, ErrModelNotFound) {
		t.Errorf("expected decode error, got %v", err)
	}
}

func TestFromCandidate_CopiesGenes(t *testing.T) {
	genes := []float64{1, 2, 3}
	dto := FromCandidate(neural.Shape{}, genetic.Candidate[[]float64, float64]{Data: genes}, 0)
	genes[0] = 9
	if dto.Genes[0] != 1 {
		t.Error("dto aliases candidate genes")
	}
}
