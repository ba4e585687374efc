// Package measurement provides the measurement specs and classical
// post-processing strategies shipped with the engine.
package measurement

import (
	"strings"

	"github.com/pkg/errors"

	typesClassifier "github.com/rpplayground/QClassify/types/classifier"
	"github.com/rpplayground/QClassify/types/quantum"
)

const defaultRegister = "c"

// Single measures one allocated qubit, addressed by its position within the
// allocation. Index 0 is the top wire.
type Single struct {
	Index    int
	Register string
}

var _ typesClassifier.MeasurementStrategy = Single{}

func (s Single) Spec(qubits []int) (quantum.MeasurementSpec, error) {
	if s.Index < 0 || s.Index >= len(qubits) {
		return quantum.MeasurementSpec{}, errors.Wrapf(
			typesClassifier.ErrConfiguration,
			"measurement index %d outside allocation of %d qubits",
			s.Index,
			len(qubits),
		)
	}
	register := s.Register
	if register == "" {
		register = defaultRegister
	}
	return quantum.MeasurementSpec{
		Qubits:   []int{qubits[s.Index]},
		Register: register,
	}, nil
}

// All measures every allocated qubit in allocation order.
type All struct {
	Register string
}

var _ typesClassifier.MeasurementStrategy = All{}

func (a All) Spec(qubits []int) (quantum.MeasurementSpec, error) {
	if len(qubits) == 0 {
		return quantum.MeasurementSpec{}, errors.Wrap(
			typesClassifier.ErrConfiguration,
			"empty qubit allocation",
		)
	}
	register := a.Register
	if register == "" {
		register = defaultRegister
	}
	return quantum.MeasurementSpec{
		Qubits:   append([]int(nil), qubits...),
		Register: register,
	}, nil
}

// UpProbability maps measurement statistics to the probability that the
// measured bit at Bit reads 1. With a Single spec and Bit 0 this is the
// canonical top-qubit class probability.
type UpProbability struct {
	Bit int
}

var _ typesClassifier.Postprocessor = UpProbability{}

func (u UpProbability) Output(result *quantum.Result) (float64, error) {
	var p float64
	for outcome, probability := range result.Probabilities {
		if err := checkProbability(probability); err != nil {
			return 0, err
		}
		if u.Bit >= len(outcome) {
			return 0, errors.Wrapf(
				typesClassifier.ErrConfiguration,
				"bit %d outside %d-bit outcome",
				u.Bit,
				len(outcome),
			)
		}
		if outcome[u.Bit] == '1' {
			p += probability
		}
	}
	return clampProbability(p)
}

// Parity maps measurement statistics to the probability of reading an odd
// number of 1s across all measured qubits.
type Parity struct{}

var _ typesClassifier.Postprocessor = Parity{}

func (Parity) Output(result *quantum.Result) (float64, error) {
	var p float64
	for outcome, probability := range result.Probabilities {
		if err := checkProbability(probability); err != nil {
			return 0, err
		}
		if strings.Count(outcome, "1")%2 == 1 {
			p += probability
		}
	}
	return clampProbability(p)
}

func checkProbability(p float64) error {
	if p < 0 || p > 1 {
		return errors.Wrapf(
			typesClassifier.ErrNumeric,
			"measurement probability %v outside [0,1]",
			p,
		)
	}
	return nil
}

// clampProbability absorbs floating-point accumulation drift just past 1.
// Anything further out is a backend defect, not drift.
func clampProbability(p float64) (float64, error) {
	const slack = 1e-9
	if p < 0 || p > 1+slack {
		return 0, errors.Wrapf(
			typesClassifier.ErrNumeric,
			"aggregated probability %v outside [0,1]",
			p,
		)
	}
	if p > 1 {
		p = 1
	}
	return p, nil
}
