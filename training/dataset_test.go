package training

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	typesClassifier "github.com/rpplayground/QClassify/types/classifier"
)

// sumModel outputs a deterministic function of features and weights without
// touching a backend.
type sumModel struct {
	calls int64
}

func (m *sumModel) Evaluate(
	ctx context.Context,
	features, weights []float64,
) (float64, error) {
	atomic.AddInt64(&m.calls, 1)

	sum := 0.0
	for _, f := range features {
		sum += f
	}
	for _, w := range weights {
		sum += w
	}
	// Squash into (0,1) so cross-entropy accepts it.
	return sum / (1 + sum), nil
}

// erroringModel fails on a chosen example index.
type erroringModel struct {
	failOn float64
}

func (m erroringModel) Evaluate(
	ctx context.Context,
	features, weights []float64,
) (float64, error) {
	if features[0] == m.failOn {
		return 0, errors.New("device offline")
	}
	return 0.5, nil
}

func fourExamples() typesClassifier.Dataset {
	return typesClassifier.Dataset{
		{Features: []float64{1}, Label: 0},
		{Features: []float64{2}, Label: 1},
		{Features: []float64{3}, Label: 0},
		{Features: []float64{4}, Label: 1},
	}
}

func TestDatasetLoss_SerialAndParallelAgree(t *testing.T) {
	serial := &sumModel{}
	parallel := &sumModel{}
	weights := []float64{0.5}

	serialLoss, err := datasetLoss(
		context.Background(),
		serial,
		SquaredError{},
		fourExamples(),
		weights,
		1,
	)
	require.NoError(t, err)

	parallelLoss, err := datasetLoss(
		context.Background(),
		parallel,
		SquaredError{},
		fourExamples(),
		weights,
		3,
	)
	require.NoError(t, err)

	assert.Equal(t, serialLoss, parallelLoss)
	assert.Equal(t, int64(4), atomic.LoadInt64(&serial.calls))
	assert.Equal(t, int64(4), atomic.LoadInt64(&parallel.calls))
}

func TestDatasetLoss_EmptyDataset(t *testing.T) {
	_, err := datasetLoss(
		context.Background(),
		&sumModel{},
		SquaredError{},
		nil,
		[]float64{0.5},
		1,
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, typesClassifier.ErrConfiguration))
}

func TestDatasetLoss_FirstErrorByIndexWins(t *testing.T) {
	_, err := datasetLoss(
		context.Background(),
		erroringModel{failOn: 2},
		SquaredError{},
		fourExamples(),
		[]float64{0.5},
		4,
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "example 1")
}

func TestDatasetLoss_MeanOverExamples(t *testing.T) {
	// A constant 0.5 output scores 0.25 against either label.
	loss, err := datasetLoss(
		context.Background(),
		erroringModel{failOn: -1},
		SquaredError{},
		fourExamples(),
		[]float64{0},
		1,
	)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, loss, 1e-12)
}
