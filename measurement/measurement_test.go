package measurement

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	typesClassifier "github.com/rpplayground/QClassify/types/classifier"
	"github.com/rpplayground/QClassify/types/quantum"
)

func TestSingle_Spec(t *testing.T) {
	spec, err := Single{Index: 1}.Spec([]int{4, 7, 9})
	require.NoError(t, err)

	assert.Equal(t, []int{7}, spec.Qubits)
	assert.Equal(t, "c", spec.Register)
}

func TestSingle_IndexOutsideAllocation(t *testing.T) {
	_, err := Single{Index: 3}.Spec([]int{0, 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, typesClassifier.ErrConfiguration))

	_, err = Single{Index: -1}.Spec([]int{0, 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, typesClassifier.ErrConfiguration))
}

func TestAll_Spec(t *testing.T) {
	spec, err := All{Register: "m"}.Spec([]int{2, 0})
	require.NoError(t, err)

	assert.Equal(t, []int{2, 0}, spec.Qubits)
	assert.Equal(t, "m", spec.Register)

	_, err = All{}.Spec(nil)
	assert.True(t, errors.Is(err, typesClassifier.ErrConfiguration))
}

func TestUpProbability_Output(t *testing.T) {
	result := &quantum.Result{
		Probabilities: map[string]float64{
			"00": 0.1,
			"01": 0.2,
			"10": 0.3,
			"11": 0.4,
		},
	}

	p, err := UpProbability{Bit: 0}.Output(result)
	require.NoError(t, err)
	assert.InDelta(t, 0.7, p, 1e-12)

	p, err = UpProbability{Bit: 1}.Output(result)
	require.NoError(t, err)
	assert.InDelta(t, 0.6, p, 1e-12)
}

func TestUpProbability_BitOutsideOutcome(t *testing.T) {
	result := &quantum.Result{
		Probabilities: map[string]float64{"0": 1},
	}

	_, err := UpProbability{Bit: 1}.Output(result)
	require.Error(t, err)
	assert.True(t, errors.Is(err, typesClassifier.ErrConfiguration))
}

func TestUpProbability_RejectsCorruptStatistics(t *testing.T) {
	result := &quantum.Result{
		Probabilities: map[string]float64{"0": 0.9, "1": 0.9},
	}

	_, err := UpProbability{Bit: 0}.Output(result)
	require.Error(t, err)
	assert.True(t, errors.Is(err, typesClassifier.ErrNumeric))
}

func TestUpProbability_AbsorbsFloatDrift(t *testing.T) {
	result := &quantum.Result{
		Probabilities: map[string]float64{"1": 1.0 + 1e-12},
	}

	p, err := UpProbability{Bit: 0}.Output(result)
	require.NoError(t, err)
	assert.Equal(t, 1.0, p)
}

func TestParity_Output(t *testing.T) {
	result := &quantum.Result{
		Probabilities: map[string]float64{
			"00": 0.1,
			"01": 0.2,
			"10": 0.3,
			"11": 0.4,
		},
	}

	p, err := Parity{}.Output(result)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, p, 1e-12)
}
