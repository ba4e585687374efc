package training

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/rpplayground/QClassify/optimize"
	typesClassifier "github.com/rpplayground/QClassify/types/classifier"
	typesOptimize "github.com/rpplayground/QClassify/types/optimize"
)

// Result is the outcome of one training run.
type Result struct {
	// Weights is the best weight vector found.
	Weights []float64
	// FinalLoss is the dataset loss at Weights.
	FinalLoss float64
	// LossHistory records the dataset loss of every objective evaluation in
	// the order the optimizer requested them, including exploratory steps
	// that worsened the loss.
	LossHistory []float64
	// MinLossHistory is the running best-so-far view of LossHistory. It is
	// non-increasing and has the same length.
	MinLossHistory []float64
	// Evaluations counts objective evaluations; Iterations counts the
	// optimizer's major iterations.
	Evaluations int
	Iterations  int
	// Converged reports whether the run stopped on its tolerances rather
	// than on the iteration cap.
	Converged bool
	// Method is the optimizer identifier that produced the result.
	Method string
}

// Train minimizes the mean objective loss of the model over the dataset,
// starting from the options' initial weights. A backend or objective error
// during any evaluation aborts the run and is returned to the caller.
func Train(
	ctx context.Context,
	model typesClassifier.Model,
	dataset typesClassifier.Dataset,
	options typesClassifier.TrainingOptions,
	logger *zap.Logger,
) (*Result, error) {
	if options.Objective == nil {
		return nil, errors.Wrap(
			typesClassifier.ErrConfiguration,
			"no objective",
		)
	}
	if len(options.InitialWeights) == 0 {
		return nil, errors.Wrap(
			typesClassifier.ErrConfiguration,
			"no initial weights",
		)
	}
	if len(dataset) == 0 {
		return nil, errors.Wrap(
			typesClassifier.ErrConfiguration,
			"empty dataset",
		)
	}

	method, err := optimize.New(options.Method)
	if err != nil {
		return nil, errors.Wrap(
			errors.Wrap(typesClassifier.ErrConfiguration, err.Error()),
			"train",
		)
	}

	objective := &trackedObjective{
		ctx:         ctx,
		model:       model,
		objective:   options.Objective,
		dataset:     dataset,
		parallelism: options.Parallelism,
		verbose:     options.Verbose,
		logger:      logger,
		best:        math.Inf(1),
	}

	start := time.Now()
	result, err := method.Minimize(
		objective.evaluate,
		options.InitialWeights,
		typesOptimize.Settings{
			MaxIterations: options.MaxIterations,
			XTolerance:    options.XTolerance,
			FTolerance:    options.FTolerance,
			Abort:         objective.failed,
		},
	)
	if evalErr := objective.firstError(); evalErr != nil {
		return nil, errors.Wrap(evalErr, "train")
	}
	if err != nil {
		return nil, errors.Wrap(err, "train")
	}

	history, minHistory := objective.histories()
	trainingResult := &Result{
		Weights:        result.X,
		FinalLoss:      result.F,
		LossHistory:    history,
		MinLossHistory: minHistory,
		Evaluations:    result.Evaluations,
		Iterations:     result.Iterations,
		Converged:      result.Converged,
		Method:         options.Method,
	}

	logger.Info(
		"training run complete",
		zap.String("method", options.Method),
		zap.String("objective", options.Objective.Name()),
		zap.Int("examples", len(dataset)),
		zap.Int("evaluations", trainingResult.Evaluations),
		zap.Int("iterations", trainingResult.Iterations),
		zap.Float64("final_loss", trainingResult.FinalLoss),
		zap.Bool("converged", trainingResult.Converged),
		zap.Duration("elapsed", time.Since(start)),
	)
	trainingDuration.WithLabelValues(options.Method).Observe(
		time.Since(start).Seconds(),
	)
	trainingEvaluations.WithLabelValues(options.Method).Add(
		float64(trainingResult.Evaluations),
	)

	return trainingResult, nil
}

// trackedObjective wraps the dataset loss with evaluation bookkeeping: it
// appends every loss to the history and latches the first evaluation error
// so the optimizer can be aborted promptly.
type trackedObjective struct {
	ctx         context.Context
	model       typesClassifier.Model
	objective   typesClassifier.Objective
	dataset     typesClassifier.Dataset
	parallelism int
	verbose     bool
	logger      *zap.Logger

	mu      sync.Mutex
	history []float64
	best    float64
	err     error
}

func (t *trackedObjective) evaluate(x []float64) float64 {
	loss, err := datasetLoss(
		t.ctx,
		t.model,
		t.objective,
		t.dataset,
		x,
		t.parallelism,
	)

	t.mu.Lock()
	defer t.mu.Unlock()

	if err != nil {
		if t.err == nil {
			t.err = err
		}
		// Poison the evaluation so the method stops descending into the
		// failed region while the abort hook takes effect.
		return math.Inf(1)
	}

	t.history = append(t.history, loss)
	if loss < t.best {
		t.best = loss
	}
	if t.verbose {
		t.logger.Info(
			"objective evaluated",
			zap.Int("evaluation", len(t.history)),
			zap.Float64("loss", loss),
			zap.Float64("best_loss", t.best),
		)
	}
	return loss
}

func (t *trackedObjective) failed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.err != nil
}

func (t *trackedObjective) firstError() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.err
}

func (t *trackedObjective) histories() ([]float64, []float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	history := append([]float64(nil), t.history...)
	minHistory := make([]float64, len(history))
	best := math.Inf(1)
	for i, loss := range history {
		if loss < best {
			best = loss
		}
		minHistory[i] = best
	}
	return history, minHistory
}
