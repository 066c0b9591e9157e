// Package neural provides the fixed-topology feed-forward network that learned controllers
// run. A flat gene vector decodes into layer weights so the genetic engine can evolve it.
package neural

import (
	"errors"
	"fmt"
)

// ErrGeneCount is returned when a gene vector does not match the network shape
var ErrGeneCount = errors.New("gene count does not match network shape")

// Shape describes a network topology; Hidden 0 connects inputs straight to outputs
type Shape struct {
	Inputs     int
	Hidden     int
	Outputs    int
	Activation string
}

// Validate checks layer sizes and the activation name
func (s Shape) Validate() error {
	if s.Inputs < 1 || s.Outputs < 1 || s.Hidden < 0 {
		return fmt.Errorf("invalid shape %d-%d-%d", s.Inputs, s.Hidden, s.Outputs)
	}
	if _, err := LookupActivation(s.Activation); err != nil {
		return err
	}
	return nil
}

// GeneCount returns the number of weights and biases the shape needs
func (s Shape) GeneCount() int {
	if s.Hidden == 0 {
		return (s.Inputs + 1) * s.Outputs
	}
	return (s.Inputs+1)*s.Hidden + (s.Hidden+1)*s.Outputs
}

func (s Shape) String() string {
	return fmt.Sprintf("%d-%d-%d/%s", s.Inputs, s.Hidden, s.Outputs, s.Activation)
}

// layer is a dense layer, weights row-major by output node, bias last in each row
type layer struct {
	in, out int
	weights []float64
}

func (l *layer) forward(in, out []float64, act Activation) {
	stride := l.in + 1
	for o := 0; o < l.out; o++ {
		row := l.weights[o*stride : (o+1)*stride]
		sum := row[l.in]
		for i, v := range in {
			sum += v * row[i]
		}
		out[o] = act(sum)
	}
}

// Network is a decoded, runnable phenotype
type Network struct {
	shape  Shape
	act    Activation
	layers []layer
}

// Decode builds a network from a gene vector; the genes are copied
func (s Shape) Decode(genes []float64) (*Network, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if len(genes) != s.GeneCount() {
		return nil, fmt.Errorf("%w: shape %s needs %d, got %d", ErrGeneCount, s, s.GeneCount(), len(genes))
	}
	act, _ := LookupActivation(s.Activation)

	sizes := []int{s.Inputs, s.Outputs}
	if s.Hidden > 0 {
		sizes = []int{s.Inputs, s.Hidden, s.Outputs}
	}

	n := &Network{shape: s, act: act}
	offset := 0
	for i := 0; i+1 < len(sizes); i++ {
		l := layer{in: sizes[i], out: sizes[i+1]}
		count := (l.in + 1) * l.out
		l.weights = make([]float64, count)
		copy(l.weights, genes[offset:offset+count])
		offset += count
		n.layers = append(n.layers, l)
	}
	return n, nil
}

// Activate runs the network on one input vector
func (n *Network) Activate(inputs []float64) ([]float64, error) {
	if len(inputs) != n.shape.Inputs {
		return nil, fmt.Errorf("network expects %d inputs, got %d", n.shape.Inputs, len(inputs))
	}
	values := inputs
	for i := range n.layers {
		l := &n.layers[i]
		out := make([]float64, l.out)
		l.forward(values, out, n.act)
		values = out
	}
	return values, nil
}

// Shape returns the topology the network was decoded with
func (n *Network) Shape() Shape {
	return n.shape
}
