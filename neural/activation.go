package neural

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// Activation transforms a node's weighted input
type Activation func(x float64) float64

var activations = map[string]Activation{
	"sigmoid":  Sigmoid,
	"tanh":     math.Tanh,
	"relu":     ReLU,
	"identity": Identity,
	"clamped":  Clamped,
}

// LookupActivation returns the activation registered under name
func LookupActivation(name string) (Activation, error) {
	if fn, ok := activations[name]; ok {
		return fn, nil
	}
	return nil, fmt.Errorf("unknown activation %q (known: %s)", name, strings.Join(ActivationNames(), ", "))
}

// ActivationNames lists registered activations in sorted order
func ActivationNames() []string {
	names := make([]string, 0, len(activations))
	for name := range activations {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Sigmoid is the steep logistic used by NEAT-style networks
func Sigmoid(x float64) float64 {
	z := max(-60, min(60, 4.9*x))
	return 1.0 / (1.0 + math.Exp(-z))
}

func ReLU(x float64) float64 {
	return math.Max(0, x)
}

func Identity(x float64) float64 {
	return x
}

// Clamped limits output to [-1, 1]
func Clamped(x float64) float64 {
	return max(-1, min(1, x))
}
