package training

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	typesClassifier "github.com/rpplayground/QClassify/types/classifier"
)

// Evaluate scores the model over the dataset at fixed weights and reports
// the mean objective loss. It performs no optimization and mutates nothing.
func Evaluate(
	ctx context.Context,
	model typesClassifier.Model,
	dataset typesClassifier.Dataset,
	objective typesClassifier.Objective,
	weights []float64,
	logger *zap.Logger,
) (*typesClassifier.TestReport, error) {
	if objective == nil {
		return nil, errors.Wrap(
			typesClassifier.ErrConfiguration,
			"no objective",
		)
	}
	if len(weights) == 0 {
		return nil, errors.Wrap(
			typesClassifier.ErrConfiguration,
			"no weights",
		)
	}

	start := time.Now()
	loss, err := datasetLoss(ctx, model, objective, dataset, weights, 1)
	if err != nil {
		return nil, errors.Wrap(err, "evaluate")
	}

	logger.Info(
		"evaluation complete",
		zap.String("objective", objective.Name()),
		zap.Int("examples", len(dataset)),
		zap.Float64("loss", loss),
		zap.Duration("elapsed", time.Since(start)),
	)

	return &typesClassifier.TestReport{
		Loss:      loss,
		Objective: objective.Name(),
		Examples:  len(dataset),
		Weights:   append([]float64(nil), weights...),
	}, nil
}
