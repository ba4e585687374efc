package classifier

import (
	"github.com/pkg/errors"

	typesClassifier "github.com/rpplayground/QClassify/types/classifier"
	"github.com/rpplayground/QClassify/types/quantum"
)

// ProcessingStage pairs the variational circuit strategy with the
// measurement strategy: the trainable half of the assembled program.
type ProcessingStage struct {
	variational typesClassifier.VariationalStrategy
	measurement typesClassifier.MeasurementStrategy
}

// NewProcessingStage builds the stage; both strategies are required.
func NewProcessingStage(
	variational typesClassifier.VariationalStrategy,
	measurement typesClassifier.MeasurementStrategy,
) (*ProcessingStage, error) {
	if variational == nil {
		return nil, errors.Wrap(
			typesClassifier.ErrConfiguration,
			"no variational strategy",
		)
	}
	if measurement == nil {
		return nil, errors.Wrap(
			typesClassifier.ErrConfiguration,
			"no measurement strategy",
		)
	}
	return &ProcessingStage{
		variational: variational,
		measurement: measurement,
	}, nil
}

// ParameterCount reports the weight vector length the stage expects for the
// given allocation.
func (s *ProcessingStage) ParameterCount(qubits []int) int {
	return s.variational.ParameterCount(qubits)
}

// Build produces the variational fragment and measurement spec for one
// weight vector.
func (s *ProcessingStage) Build(weights []float64, qubits []int) (
	quantum.Fragment,
	quantum.MeasurementSpec,
	error,
) {
	if expected := s.variational.ParameterCount(qubits); len(weights) != expected {
		return nil, quantum.MeasurementSpec{}, errors.Wrapf(
			typesClassifier.ErrConfiguration,
			"variational stage expects %d weights, got %d",
			expected,
			len(weights),
		)
	}

	fragment, err := s.variational.Build(weights, qubits)
	if err != nil {
		return nil, quantum.MeasurementSpec{}, errors.Wrap(err, "variational")
	}

	spec, err := s.measurement.Spec(qubits)
	if err != nil {
		return nil, quantum.MeasurementSpec{}, errors.Wrap(err, "measurement")
	}
	return fragment, spec, nil
}
