package classifier

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/rpplayground/QClassify/training"
	typesClassifier "github.com/rpplayground/QClassify/types/classifier"
	"github.com/rpplayground/QClassify/types/quantum"
)

// EncoderOptions selects the feature-encoding half of a classifier.
type EncoderOptions struct {
	// Preprocessing transforms raw features before encoding. Nil means the
	// identity transform.
	Preprocessing typesClassifier.Preprocessor
	// EncodingCircuit builds the state-preparation fragment. Required.
	EncodingCircuit typesClassifier.EncodingStrategy
}

// ProcessingOptions selects the trainable half of a classifier.
type ProcessingOptions struct {
	// Circuit builds the variational fragment. Required.
	Circuit typesClassifier.VariationalStrategy
	// Measurement declares the read-out qubits. Required.
	Measurement typesClassifier.MeasurementStrategy
	// Postprocessing maps measurement statistics to the scalar output.
	// Required.
	Postprocessing typesClassifier.Postprocessor
}

// Options assembles a classifier.
type Options struct {
	// Qubits is the allocation the circuit strategies build over. Indices
	// must be distinct and non-negative; position 0 is the top wire.
	Qubits []int
	// Encoder and Processing select the pipeline stages.
	Encoder    EncoderOptions
	Processing ProcessingOptions
	// Backend executes assembled programs. Required.
	Backend quantum.Backend
	// Logger defaults to a no-op logger when nil.
	Logger *zap.Logger
}

// Classifier is the composition engine: it assembles encoding, variational,
// and measurement stages into programs, runs them on a backend, and exposes
// training and evaluation over datasets.
//
// Circuit, Execute, Train, and Test maintain per-classifier session state
// (the cached program, last trained weights, loss histories) and serialize
// access to it. Evaluate touches none of that state and is safe to call
// concurrently, which is what the trainer's parallel dispatch relies on.
type Classifier struct {
	qubits     []int
	encoder    *FeatureEncoder
	processing *ProcessingStage
	postproc   typesClassifier.Postprocessor
	backend    quantum.Backend
	logger     *zap.Logger

	mu             sync.Mutex
	program        *quantum.Program
	weights        []float64
	lossHistory    []float64
	minLossHistory []float64
}

var _ typesClassifier.Model = (*Classifier)(nil)

// New validates the options and assembles a classifier.
func New(options Options) (*Classifier, error) {
	if len(options.Qubits) == 0 {
		return nil, errors.Wrap(
			typesClassifier.ErrConfiguration,
			"empty qubit allocation",
		)
	}
	seen := make(map[int]bool, len(options.Qubits))
	for _, q := range options.Qubits {
		if q < 0 {
			return nil, errors.Wrapf(
				typesClassifier.ErrConfiguration,
				"negative qubit index %d",
				q,
			)
		}
		if seen[q] {
			return nil, errors.Wrapf(
				typesClassifier.ErrConfiguration,
				"duplicate qubit index %d",
				q,
			)
		}
		seen[q] = true
	}
	if options.Backend == nil {
		return nil, errors.Wrap(
			typesClassifier.ErrConfiguration,
			"no backend",
		)
	}
	if options.Processing.Postprocessing == nil {
		return nil, errors.Wrap(
			typesClassifier.ErrConfiguration,
			"no postprocessing strategy",
		)
	}

	encoder, err := NewFeatureEncoder(
		options.Encoder.Preprocessing,
		options.Encoder.EncodingCircuit,
	)
	if err != nil {
		return nil, errors.Wrap(err, "new classifier")
	}

	processing, err := NewProcessingStage(
		options.Processing.Circuit,
		options.Processing.Measurement,
	)
	if err != nil {
		return nil, errors.Wrap(err, "new classifier")
	}

	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Classifier{
		qubits:     append([]int(nil), options.Qubits...),
		encoder:    encoder,
		processing: processing,
		postproc:   options.Processing.Postprocessing,
		backend:    options.Backend,
		logger:     logger.Named("classifier"),
	}, nil
}

// Qubits returns a copy of the classifier's qubit allocation.
func (c *Classifier) Qubits() []int {
	return append([]int(nil), c.qubits...)
}

// ParameterCount reports the weight vector length the variational stage
// expects.
func (c *Classifier) ParameterCount() int {
	return c.processing.ParameterCount(c.qubits)
}

// Circuit assembles the full program for one feature and weight vector and
// caches it as the session's current circuit. Assembly is deterministic:
// identical inputs yield identical programs.
func (c *Classifier) Circuit(features, weights []float64) (
	*quantum.Program,
	error,
) {
	program, err := c.assemble(features, weights)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.program = program
	c.mu.Unlock()

	circuitsAssembled.Inc()
	return program, nil
}

// Execute runs the session's cached circuit on the backend and applies the
// postprocessor. Calling Execute before any successful Circuit call is a
// state error.
func (c *Classifier) Execute(ctx context.Context) (float64, error) {
	c.mu.Lock()
	program := c.program
	c.mu.Unlock()

	if program == nil {
		return 0, errors.Wrap(
			typesClassifier.ErrState,
			"no circuit assembled",
		)
	}
	return c.run(ctx, program)
}

// Evaluate assembles and executes the circuit for one feature and weight
// vector, refreshing the session's cached circuit on success. Assembly and
// execution never read the cache, so concurrent Evaluate calls are safe.
func (c *Classifier) Evaluate(ctx context.Context, features, weights []float64) (
	float64,
	error,
) {
	program, err := c.assemble(features, weights)
	if err != nil {
		return 0, err
	}

	output, err := c.run(ctx, program)
	if err != nil {
		return 0, err
	}

	c.mu.Lock()
	c.program = program
	c.mu.Unlock()

	return output, nil
}

// Train fits the variational weights to the dataset and records the trained
// weights and loss histories on the session.
func (c *Classifier) Train(
	ctx context.Context,
	dataset typesClassifier.Dataset,
	options typesClassifier.TrainingOptions,
) (*training.Result, error) {
	if expected := c.ParameterCount(); len(options.InitialWeights) != expected {
		return nil, errors.Wrapf(
			typesClassifier.ErrConfiguration,
			"initial weights have length %d, variational stage expects %d",
			len(options.InitialWeights),
			expected,
		)
	}

	start := time.Now()
	result, err := training.Train(ctx, c, dataset, options, c.logger)
	if err != nil {
		return nil, errors.Wrap(err, "train")
	}

	c.mu.Lock()
	c.weights = append([]float64(nil), result.Weights...)
	c.lossHistory = append([]float64(nil), result.LossHistory...)
	c.minLossHistory = append([]float64(nil), result.MinLossHistory...)
	c.mu.Unlock()

	c.logger.Debug(
		"session weights updated",
		zap.Int("weights", len(result.Weights)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return result, nil
}

// Test scores the classifier over the dataset at fixed weights. When the
// options carry no weights the most recently trained weights are used.
// Test never mutates session state.
func (c *Classifier) Test(
	ctx context.Context,
	dataset typesClassifier.Dataset,
	options typesClassifier.TestOptions,
) (*typesClassifier.TestReport, error) {
	weights := options.Weights
	if weights == nil {
		c.mu.Lock()
		weights = append([]float64(nil), c.weights...)
		c.mu.Unlock()

		if len(weights) == 0 {
			return nil, errors.Wrap(
				typesClassifier.ErrState,
				"no trained weights and none supplied",
			)
		}
	}

	report, err := training.Evaluate(
		ctx,
		c,
		dataset,
		options.Objective,
		weights,
		c.logger,
	)
	if err != nil {
		return nil, errors.Wrap(err, "test")
	}
	return report, nil
}

// Weights returns a copy of the most recently trained weight vector, or nil
// before any training.
func (c *Classifier) Weights() []float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.weights == nil {
		return nil
	}
	return append([]float64(nil), c.weights...)
}

// LossHistory returns the per-evaluation loss sequence of the most recent
// training run, or nil before any training.
func (c *Classifier) LossHistory() []float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.lossHistory == nil {
		return nil
	}
	return append([]float64(nil), c.lossHistory...)
}

// MinLossHistory returns the running best-so-far view of LossHistory, or
// nil before any training.
func (c *Classifier) MinLossHistory() []float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.minLossHistory == nil {
		return nil
	}
	return append([]float64(nil), c.minLossHistory...)
}

// assemble builds the full program without touching session state.
func (c *Classifier) assemble(features, weights []float64) (
	*quantum.Program,
	error,
) {
	encodingFragment, err := c.encoder.Build(features, c.qubits)
	if err != nil {
		return nil, errors.Wrap(err, "assemble")
	}

	processingFragment, spec, err := c.processing.Build(weights, c.qubits)
	if err != nil {
		return nil, errors.Wrap(err, "assemble")
	}

	instructions := make(
		[]quantum.Instruction,
		0,
		len(encodingFragment)+len(processingFragment),
	)
	instructions = append(instructions, encodingFragment...)
	instructions = append(instructions, processingFragment...)

	return &quantum.Program{
		Qubits:       append([]int(nil), c.qubits...),
		Instructions: instructions,
		Measurement:  spec,
	}, nil
}

// run executes one program and postprocesses the result.
func (c *Classifier) run(ctx context.Context, program *quantum.Program) (
	float64,
	error,
) {
	result, err := c.backend.Execute(ctx, program)
	if err != nil {
		return 0, errors.Wrapf(err, "execute on %s", c.backend.Name())
	}

	output, err := c.postproc.Output(result)
	if err != nil {
		return 0, errors.Wrap(err, "postprocess")
	}

	executionsCompleted.Inc()
	return output, nil
}
