package training

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	typesClassifier "github.com/rpplayground/QClassify/types/classifier"
)

// datasetLoss computes the mean objective loss of a model over a dataset at
// fixed weights. Examples are dispatched to at most parallelism concurrent
// evaluations, but the reduction runs in index order so the mean is
// bit-identical regardless of scheduling. The first error encountered (by
// index) aborts the aggregate.
func datasetLoss(
	ctx context.Context,
	model typesClassifier.Model,
	objective typesClassifier.Objective,
	dataset typesClassifier.Dataset,
	weights []float64,
	parallelism int,
) (float64, error) {
	if len(dataset) == 0 {
		return 0, errors.Wrap(
			typesClassifier.ErrConfiguration,
			"empty dataset",
		)
	}

	losses := make([]float64, len(dataset))
	errs := make([]error, len(dataset))

	if parallelism < 2 || len(dataset) == 1 {
		for i, example := range dataset {
			losses[i], errs[i] = exampleLoss(
				ctx,
				model,
				objective,
				example,
				weights,
			)
		}
	} else {
		if parallelism > len(dataset) {
			parallelism = len(dataset)
		}

		var wg sync.WaitGroup
		indexes := make(chan int)

		for w := 0; w < parallelism; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range indexes {
					losses[i], errs[i] = exampleLoss(
						ctx,
						model,
						objective,
						dataset[i],
						weights,
					)
				}
			}()
		}
		for i := range dataset {
			indexes <- i
		}
		close(indexes)
		wg.Wait()
	}

	sum := 0.0
	for i := range dataset {
		if errs[i] != nil {
			return 0, errors.Wrapf(errs[i], "example %d", i)
		}
		sum += losses[i]
	}
	return sum / float64(len(dataset)), nil
}

func exampleLoss(
	ctx context.Context,
	model typesClassifier.Model,
	objective typesClassifier.Objective,
	example typesClassifier.TrainingExample,
	weights []float64,
) (float64, error) {
	output, err := model.Evaluate(ctx, example.Features, weights)
	if err != nil {
		return 0, errors.Wrap(err, "evaluate")
	}

	loss, err := objective.Loss(output, example.Label)
	if err != nil {
		return 0, errors.Wrap(err, "loss")
	}
	return loss, nil
}
