package persistence

import (
	"slices"

	"github.com/lixenwraith/lanerace/genetic"
	"github.com/lixenwraith/lanerace/neural"
)

// ModelDTO is the serializable trained model: the winning genome and the network shape it decodes into
type ModelDTO struct {
	Inputs     int
	Hidden     int
	Outputs    int
	Activation string
	Genes      []float64
	Fitness    float64
	Generation int // 1-based generation the genes were found in
}

// FromCandidate converts an engine candidate to DTO
func FromCandidate(shape neural.Shape, best genetic.Candidate[[]float64, float64], generation int) ModelDTO {
	return ModelDTO{
		Inputs:     shape.Inputs,
		Hidden:     shape.Hidden,
		Outputs:    shape.Outputs,
		Activation: shape.Activation,
		Genes:      slices.Clone(best.Data),
		Fitness:    best.Score,
		Generation: generation,
	}
}

// Shape returns the network topology the genes belong to
func (dto ModelDTO) Shape() neural.Shape {
	return neural.Shape{
		Inputs:     dto.Inputs,
		Hidden:     dto.Hidden,
		Outputs:    dto.Outputs,
		Activation: dto.Activation,
	}
}

// Network decodes the stored genes
func (dto ModelDTO) Network() (*neural.Network, error) {
	return dto.Shape().Decode(dto.Genes)
}
