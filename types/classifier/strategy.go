// Package classifier declares the strategy contracts the classifier engine
// composes: preprocessing, state encoding, the variational ansatz,
// measurement, and classical post-processing. Concrete strategies live in
// the encoding, ansatz, and measurement packages; the engine in the
// top-level classifier package holds these interfaces and never depends on
// a concrete implementation.
package classifier

import (
	"context"

	"github.com/rpplayground/QClassify/types/quantum"
)

// Preprocessor maps a raw feature vector to the parameter vector consumed
// by an encoding strategy. The output length may differ from the input
// length. Implementations must be pure functions of their input.
type Preprocessor interface {
	Transform(features []float64) ([]float64, error)
}

// EncodingStrategy builds the state-preparation fragment from a preprocessed
// parameter vector and the classifier's qubit allocation. Dimension declares
// the parameter count the strategy expects for a given allocation, so the
// encoder can reject mismatched input before building anything.
type EncodingStrategy interface {
	Dimension(qubits []int) int
	Build(params []float64, qubits []int) (quantum.Fragment, error)
}

// VariationalStrategy builds the trainable ansatz fragment from a weight
// vector and the qubit allocation. ParameterCount declares the weight vector
// length the strategy expects for a given allocation.
type VariationalStrategy interface {
	ParameterCount(qubits []int) int
	Build(weights []float64, qubits []int) (quantum.Fragment, error)
}

// MeasurementStrategy declares which allocated qubits are read out.
type MeasurementStrategy interface {
	Spec(qubits []int) (quantum.MeasurementSpec, error)
}

// Postprocessor maps raw measurement statistics to the classifier's scalar
// output, commonly a class probability in [0, 1].
type Postprocessor interface {
	Output(result *quantum.Result) (float64, error)
}

// Objective scores a single model output against its label. The trainer and
// evaluator aggregate per-example losses into a mean over the dataset.
type Objective interface {
	Name() string
	Loss(output float64, label int) (float64, error)
}

// Model is the evaluation primitive the trainer, evaluator, and external
// collaborators (e.g. decision-boundary sweeps) call per data point. It must
// be safe for concurrent use.
type Model interface {
	Evaluate(ctx context.Context, features, weights []float64) (float64, error)
}
