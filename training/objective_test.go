package training

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	typesClassifier "github.com/rpplayground/QClassify/types/classifier"
)

func TestCrossEntropy_Loss(t *testing.T) {
	objective := CrossEntropy{}

	loss, err := objective.Loss(0.9, 1)
	require.NoError(t, err)
	assert.InDelta(t, -math.Log(0.9), loss, 1e-12)

	loss, err = objective.Loss(0.9, 0)
	require.NoError(t, err)
	assert.InDelta(t, -math.Log(0.1), loss, 1e-12)
}

func TestCrossEntropy_ClampsBoundaryOutputs(t *testing.T) {
	objective := CrossEntropy{}

	// A confident wrong prediction at exactly 0 must stay finite.
	loss, err := objective.Loss(0, 1)
	require.NoError(t, err)
	assert.False(t, math.IsInf(loss, 1))
	assert.InDelta(t, -math.Log(ClampEpsilon), loss, 1e-6)

	loss, err = objective.Loss(1, 0)
	require.NoError(t, err)
	assert.False(t, math.IsInf(loss, 1))

	// A confident right prediction at exactly 1 is near zero loss.
	loss, err = objective.Loss(1, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0, loss, 1e-9)
}

func TestCrossEntropy_RejectsOutputsOutsideUnitInterval(t *testing.T) {
	objective := CrossEntropy{}

	_, err := objective.Loss(-0.1, 0)
	assert.True(t, errors.Is(err, typesClassifier.ErrNumeric))

	_, err = objective.Loss(1.1, 1)
	assert.True(t, errors.Is(err, typesClassifier.ErrNumeric))

	_, err = objective.Loss(math.NaN(), 1)
	assert.True(t, errors.Is(err, typesClassifier.ErrNumeric))
}

func TestCrossEntropy_RejectsNonBinaryLabel(t *testing.T) {
	_, err := CrossEntropy{}.Loss(0.5, 2)
	assert.True(t, errors.Is(err, typesClassifier.ErrConfiguration))
}

func TestSquaredError_Loss(t *testing.T) {
	objective := SquaredError{}

	loss, err := objective.Loss(0.25, 0)
	require.NoError(t, err)
	assert.InDelta(t, 0.0625, loss, 1e-12)

	loss, err = objective.Loss(0.25, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.5625, loss, 1e-12)

	// Tolerates outputs outside [0,1].
	loss, err = objective.Loss(1.5, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, loss, 1e-12)
}

func TestObjectiveNames(t *testing.T) {
	assert.Equal(t, "cross-entropy", CrossEntropy{}.Name())
	assert.Equal(t, "squared-error", SquaredError{}.Name())
}
