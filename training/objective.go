// Package training drives derivative-free optimization of a classifier
// over a labeled dataset and provides fixed-weight evaluation under the
// same objectives.
package training

import (
	"math"

	"github.com/pkg/errors"

	typesClassifier "github.com/rpplayground/QClassify/types/classifier"
)

// ClampEpsilon bounds model outputs away from exactly 0 and 1 before they
// reach a logarithm. Outputs inside [0,1] are clamped into
// [ClampEpsilon, 1-ClampEpsilon]; outputs outside [0,1] are rejected as
// numeric errors rather than coerced.
const ClampEpsilon = 1e-12

// CrossEntropy is the reference objective: binary cross-entropy of the
// model's class-1 probability against a {0,1} label.
type CrossEntropy struct{}

var _ typesClassifier.Objective = CrossEntropy{}

func (CrossEntropy) Name() string {
	return "cross-entropy"
}

func (CrossEntropy) Loss(output float64, label int) (float64, error) {
	p, err := clamp(output)
	if err != nil {
		return 0, errors.Wrap(err, "cross-entropy")
	}
	if err := checkLabel(label); err != nil {
		return 0, errors.Wrap(err, "cross-entropy")
	}
	if label == 1 {
		return -math.Log(p), nil
	}
	return -math.Log(1 - p), nil
}

// SquaredError scores the squared distance between the model output and the
// label. It tolerates outputs outside [0,1] and is useful with
// post-processors that emit general statistics rather than probabilities.
type SquaredError struct{}

var _ typesClassifier.Objective = SquaredError{}

func (SquaredError) Name() string {
	return "squared-error"
}

func (SquaredError) Loss(output float64, label int) (float64, error) {
	if err := checkLabel(label); err != nil {
		return 0, errors.Wrap(err, "squared-error")
	}
	diff := output - float64(label)
	return diff * diff, nil
}

func clamp(p float64) (float64, error) {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return 0, errors.Wrapf(
			typesClassifier.ErrNumeric,
			"model output %v outside [0,1]",
			p,
		)
	}
	if p < ClampEpsilon {
		return ClampEpsilon, nil
	}
	if p > 1-ClampEpsilon {
		return 1 - ClampEpsilon, nil
	}
	return p, nil
}

func checkLabel(label int) error {
	if label != 0 && label != 1 {
		return errors.Wrapf(
			typesClassifier.ErrConfiguration,
			"label %d is not binary",
			label,
		)
	}
	return nil
}
