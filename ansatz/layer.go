// Package ansatz provides the variational circuit strategies shipped with
// the engine.
package ansatz

import (
	"github.com/pkg/errors"

	typesClassifier "github.com/rpplayground/QClassify/types/classifier"
	"github.com/rpplayground/QClassify/types/quantum"
)

// RotationLayer is a hardware-efficient ansatz: each layer entangles
// adjacent allocated qubits with a two-qubit gate, then rotates every qubit
// by its own trainable angle. With L layers over n qubits the strategy
// consumes L*n weights, in layer-major order.
type RotationLayer struct {
	// Axis is the per-qubit rotation gate. Defaults to GateRY.
	Axis quantum.Gate
	// Entangler is the two-qubit gate chained across adjacent qubits before
	// each rotation sweep. Defaults to GateCZ. A single-qubit allocation
	// skips entanglement entirely.
	Entangler quantum.Gate
	// Layers is the number of entangle-rotate repetitions. Defaults to 1.
	Layers int
}

var _ typesClassifier.VariationalStrategy = RotationLayer{}

func (r RotationLayer) axis() quantum.Gate {
	if r.Axis == "" {
		return quantum.GateRY
	}
	return r.Axis
}

func (r RotationLayer) entangler() quantum.Gate {
	if r.Entangler == "" {
		return quantum.GateCZ
	}
	return r.Entangler
}

func (r RotationLayer) layers() int {
	if r.Layers < 1 {
		return 1
	}
	return r.Layers
}

func (r RotationLayer) ParameterCount(qubits []int) int {
	return r.layers() * len(qubits)
}

func (r RotationLayer) Build(weights []float64, qubits []int) (
	quantum.Fragment,
	error,
) {
	axis := r.axis()
	if !axis.Parametrized() || axis.Arity() != 1 {
		return nil, errors.Wrapf(
			typesClassifier.ErrConfiguration,
			"gate %q is not a single-qubit rotation",
			axis,
		)
	}
	entangler := r.entangler()
	if entangler.Arity() != 2 {
		return nil, errors.Wrapf(
			typesClassifier.ErrConfiguration,
			"gate %q is not a two-qubit entangler",
			entangler,
		)
	}
	expected := r.ParameterCount(qubits)
	if len(weights) != expected {
		return nil, errors.Wrapf(
			typesClassifier.ErrConfiguration,
			"rotation layer over %d qubits expects %d weights, got %d",
			len(qubits),
			expected,
			len(weights),
		)
	}

	fragment := make(quantum.Fragment, 0, expected+r.layers()*len(qubits))
	for layer := 0; layer < r.layers(); layer++ {
		for i := 0; i+1 < len(qubits); i++ {
			fragment = append(fragment, quantum.Instruction{
				Gate:   entangler,
				Qubits: []int{qubits[i], qubits[i+1]},
			})
		}
		offset := layer * len(qubits)
		for i, q := range qubits {
			fragment = append(fragment, quantum.Instruction{
				Gate:   axis,
				Params: []float64{weights[offset+i]},
				Qubits: []int{q},
			})
		}
	}
	return fragment, nil
}
