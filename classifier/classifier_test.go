package classifier

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rpplayground/QClassify/ansatz"
	"github.com/rpplayground/QClassify/backend"
	"github.com/rpplayground/QClassify/encoding"
	"github.com/rpplayground/QClassify/measurement"
	typesClassifier "github.com/rpplayground/QClassify/types/classifier"
	"github.com/rpplayground/QClassify/types/quantum"
)

// countingBackend records executions and delegates to the simulator.
type countingBackend struct {
	delegate quantum.Backend
	calls    int
}

func (c *countingBackend) Name() string   { return c.delegate.Name() }
func (c *countingBackend) MaxQubits() int { return c.delegate.MaxQubits() }

func (c *countingBackend) Execute(
	ctx context.Context,
	program *quantum.Program,
) (*quantum.Result, error) {
	c.calls++
	return c.delegate.Execute(ctx, program)
}

// failingBackend errors on every execution.
type failingBackend struct{}

func (failingBackend) Name() string   { return "failing" }
func (failingBackend) MaxQubits() int { return 24 }

func (failingBackend) Execute(
	ctx context.Context,
	program *quantum.Program,
) (*quantum.Result, error) {
	return nil, errors.Wrap(quantum.ErrBackend, "device offline")
}

func referenceOptions(b quantum.Backend) Options {
	return Options{
		Qubits: []int{0, 1},
		Encoder: EncoderOptions{
			Preprocessing:   encoding.Identity{},
			EncodingCircuit: encoding.Angle{},
		},
		Processing: ProcessingOptions{
			Circuit:        ansatz.RotationLayer{},
			Measurement:    measurement.Single{Index: 0},
			Postprocessing: measurement.UpProbability{Bit: 0},
		},
		Backend: b,
		Logger:  zap.NewNop(),
	}
}

func newReferenceClassifier(t *testing.T) *Classifier {
	t.Helper()

	model, err := New(referenceOptions(
		backend.NewSimulator(zap.NewNop(), backend.SimulatorOptions{}),
	))
	require.NoError(t, err)
	return model
}

func TestNew_Validation(t *testing.T) {
	simulator := backend.NewSimulator(zap.NewNop(), backend.SimulatorOptions{})

	options := referenceOptions(simulator)
	options.Qubits = nil
	_, err := New(options)
	assert.True(t, errors.Is(err, typesClassifier.ErrConfiguration))

	options = referenceOptions(simulator)
	options.Qubits = []int{0, 0}
	_, err = New(options)
	assert.True(t, errors.Is(err, typesClassifier.ErrConfiguration))

	options = referenceOptions(simulator)
	options.Backend = nil
	_, err = New(options)
	assert.True(t, errors.Is(err, typesClassifier.ErrConfiguration))

	options = referenceOptions(simulator)
	options.Encoder.EncodingCircuit = nil
	_, err = New(options)
	assert.True(t, errors.Is(err, typesClassifier.ErrConfiguration))

	options = referenceOptions(simulator)
	options.Processing.Circuit = nil
	_, err = New(options)
	assert.True(t, errors.Is(err, typesClassifier.ErrConfiguration))

	options = referenceOptions(simulator)
	options.Processing.Measurement = nil
	_, err = New(options)
	assert.True(t, errors.Is(err, typesClassifier.ErrConfiguration))

	options = referenceOptions(simulator)
	options.Processing.Postprocessing = nil
	_, err = New(options)
	assert.True(t, errors.Is(err, typesClassifier.ErrConfiguration))
}

func TestClassifier_ReferenceProbability(t *testing.T) {
	model := newReferenceClassifier(t)

	output, err := model.Evaluate(
		context.Background(),
		[]float64{1, 1},
		[]float64{3.0672044712460114, 3.3311348339721203},
	)
	require.NoError(t, err)
	assert.InDelta(t, 0.7858, output, 1e-3)
}

func TestClassifier_CircuitIsDeterministic(t *testing.T) {
	model := newReferenceClassifier(t)

	features := []float64{0.3, 0.7}
	weights := []float64{1.1, 2.2}

	first, err := model.Circuit(features, weights)
	require.NoError(t, err)
	second, err := model.Circuit(features, weights)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, first.Render(), second.Render())
}

func TestClassifier_CircuitStructure(t *testing.T) {
	model := newReferenceClassifier(t)

	program, err := model.Circuit([]float64{0.3, 0.7}, []float64{1.1, 2.2})
	require.NoError(t, err)
	require.NoError(t, program.Validate())

	// Two encoding rotations, one entangler, two variational rotations.
	require.Len(t, program.Instructions, 5)
	assert.Equal(t, quantum.GateRY, program.Instructions[0].Gate)
	assert.Equal(t, quantum.GateRY, program.Instructions[1].Gate)
	assert.Equal(t, quantum.GateCZ, program.Instructions[2].Gate)
	assert.Equal(t, []int{0}, program.Measurement.Qubits)
}

func TestClassifier_ExecuteRequiresCircuit(t *testing.T) {
	model := newReferenceClassifier(t)

	_, err := model.Execute(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, typesClassifier.ErrState))
}

func TestClassifier_EvaluateMatchesCircuitThenExecute(t *testing.T) {
	model := newReferenceClassifier(t)

	features := []float64{0.4, 1.9}
	weights := []float64{0.8, 2.6}

	_, err := model.Circuit(features, weights)
	require.NoError(t, err)
	executed, err := model.Execute(context.Background())
	require.NoError(t, err)

	evaluated, err := model.Evaluate(context.Background(), features, weights)
	require.NoError(t, err)

	assert.InDelta(t, executed, evaluated, 1e-12)
}

func TestClassifier_OutputIsProbability(t *testing.T) {
	model := newReferenceClassifier(t)

	for _, weights := range [][]float64{
		{0, 0},
		{1.5, -2.5},
		{3.14, 3.14},
	} {
		output, err := model.Evaluate(
			context.Background(),
			[]float64{0.2, 0.9},
			weights,
		)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, output, 0.0)
		assert.LessOrEqual(t, output, 1.0)
	}
}

func TestClassifier_ConfigurationErrorBeforeBackend(t *testing.T) {
	counting := &countingBackend{
		delegate: backend.NewSimulator(zap.NewNop(), backend.SimulatorOptions{}),
	}
	model, err := New(referenceOptions(counting))
	require.NoError(t, err)

	// Wrong feature count.
	_, err = model.Evaluate(
		context.Background(),
		[]float64{1},
		[]float64{1, 2},
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, typesClassifier.ErrConfiguration))

	// Wrong weight count.
	_, err = model.Evaluate(
		context.Background(),
		[]float64{1, 2},
		[]float64{1},
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, typesClassifier.ErrConfiguration))

	assert.Zero(t, counting.calls)
}

func TestClassifier_BackendErrorSurfaces(t *testing.T) {
	model, err := New(referenceOptions(failingBackend{}))
	require.NoError(t, err)

	_, err = model.Evaluate(
		context.Background(),
		[]float64{1, 1},
		[]float64{1, 1},
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, quantum.ErrBackend))
}
