// Package classifier composes the pluggable stages declared in
// types/classifier into an executable model: feature encoding, the
// variational processing stage, backend execution, and training entry
// points.
package classifier

import (
	"github.com/pkg/errors"

	"github.com/rpplayground/QClassify/encoding"
	typesClassifier "github.com/rpplayground/QClassify/types/classifier"
	"github.com/rpplayground/QClassify/types/quantum"
)

// FeatureEncoder turns a raw feature vector into the state-preparation
// fragment of a circuit: it runs the preprocessor, checks the result
// against the encoding strategy's declared dimension, and builds the
// fragment over the classifier's qubit allocation.
type FeatureEncoder struct {
	preprocessor typesClassifier.Preprocessor
	strategy     typesClassifier.EncodingStrategy
}

// NewFeatureEncoder builds an encoder. A nil preprocessor defaults to the
// identity transform; the encoding strategy is required.
func NewFeatureEncoder(
	preprocessor typesClassifier.Preprocessor,
	strategy typesClassifier.EncodingStrategy,
) (*FeatureEncoder, error) {
	if strategy == nil {
		return nil, errors.Wrap(
			typesClassifier.ErrConfiguration,
			"no encoding strategy",
		)
	}
	if preprocessor == nil {
		preprocessor = encoding.Identity{}
	}
	return &FeatureEncoder{
		preprocessor: preprocessor,
		strategy:     strategy,
	}, nil
}

// Build produces the encoding fragment for one feature vector.
func (e *FeatureEncoder) Build(features []float64, qubits []int) (
	quantum.Fragment,
	error,
) {
	params, err := e.preprocessor.Transform(features)
	if err != nil {
		return nil, errors.Wrap(err, "preprocess")
	}

	if dimension := e.strategy.Dimension(qubits); len(params) != dimension {
		return nil, errors.Wrapf(
			typesClassifier.ErrConfiguration,
			"encoding expects %d parameters, preprocessing produced %d",
			dimension,
			len(params),
		)
	}

	fragment, err := e.strategy.Build(params, qubits)
	if err != nil {
		return nil, errors.Wrap(err, "encode")
	}
	return fragment, nil
}
