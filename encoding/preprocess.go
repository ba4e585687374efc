// Package encoding provides the preprocessing and state-encoding strategies
// shipped with the engine.
package encoding

import (
	"math"

	"github.com/pkg/errors"

	typesClassifier "github.com/rpplayground/QClassify/types/classifier"
)

// Identity passes features through unchanged. The trivial, and default,
// preprocessing strategy.
type Identity struct{}

var _ typesClassifier.Preprocessor = Identity{}

func (Identity) Transform(features []float64) ([]float64, error) {
	return append([]float64(nil), features...), nil
}

// Scale multiplies every feature by a fixed factor, e.g. to map a unit
// domain onto rotation angles.
type Scale struct {
	Factor float64
}

var _ typesClassifier.Preprocessor = Scale{}

func (s Scale) Transform(features []float64) ([]float64, error) {
	scaled := make([]float64, len(features))
	for i, f := range features {
		scaled[i] = f * s.Factor
	}
	return scaled, nil
}

// Normalize rescales the feature vector to unit Euclidean norm.
type Normalize struct{}

var _ typesClassifier.Preprocessor = Normalize{}

func (Normalize) Transform(features []float64) ([]float64, error) {
	var sum float64
	for _, f := range features {
		sum += f * f
	}
	if sum == 0 {
		return nil, errors.Wrap(
			typesClassifier.ErrNumeric,
			"cannot normalize zero vector",
		)
	}
	norm := math.Sqrt(sum)
	normalized := make([]float64, len(features))
	for i, f := range features {
		normalized[i] = f / norm
	}
	return normalized, nil
}
