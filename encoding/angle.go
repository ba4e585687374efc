package encoding

import (
	"github.com/pkg/errors"

	typesClassifier "github.com/rpplayground/QClassify/types/classifier"
	"github.com/rpplayground/QClassify/types/quantum"
)

// Angle rotates each allocated qubit by its own parameter about a fixed
// axis: parameter i becomes a rotation of qubit i. One parameter per qubit.
type Angle struct {
	// Axis is the rotation gate, one of GateRX, GateRY, GateRZ.
	// Defaults to GateRY.
	Axis quantum.Gate
}

var _ typesClassifier.EncodingStrategy = Angle{}

func (a Angle) axis() quantum.Gate {
	if a.Axis == "" {
		return quantum.GateRY
	}
	return a.Axis
}

func (a Angle) Dimension(qubits []int) int {
	return len(qubits)
}

func (a Angle) Build(params []float64, qubits []int) (quantum.Fragment, error) {
	axis := a.axis()
	if !axis.Parametrized() || axis.Arity() != 1 {
		return nil, errors.Wrapf(
			typesClassifier.ErrConfiguration,
			"gate %q is not a single-qubit rotation",
			axis,
		)
	}
	if len(params) != len(qubits) {
		return nil, errors.Wrapf(
			typesClassifier.ErrConfiguration,
			"angle encoding over %d qubits expects %d parameters, got %d",
			len(qubits),
			len(qubits),
			len(params),
		)
	}

	fragment := make(quantum.Fragment, 0, len(qubits))
	for i, q := range qubits {
		fragment = append(fragment, quantum.Instruction{
			Gate:   axis,
			Params: []float64{params[i]},
			Qubits: []int{q},
		})
	}
	return fragment, nil
}

// SuperposedAngle prepends a Hadamard on every qubit before the per-qubit
// rotation, encoding into phase relative to the uniform superposition.
type SuperposedAngle struct {
	Axis quantum.Gate
}

var _ typesClassifier.EncodingStrategy = SuperposedAngle{}

func (s SuperposedAngle) Dimension(qubits []int) int {
	return len(qubits)
}

func (s SuperposedAngle) Build(params []float64, qubits []int) (
	quantum.Fragment,
	error,
) {
	rotations, err := Angle{Axis: s.Axis}.Build(params, qubits)
	if err != nil {
		return nil, err
	}

	fragment := make(quantum.Fragment, 0, 2*len(qubits))
	for _, q := range qubits {
		fragment = append(fragment, quantum.Instruction{
			Gate:   quantum.GateH,
			Qubits: []int{q},
		})
	}
	return append(fragment, rotations...), nil
}
