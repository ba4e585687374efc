// varqc trains the reference variational classifier on a small XOR-style
// dataset, reports the resulting loss, and can persist the run and render
// the decision boundary.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/rpplayground/QClassify/ansatz"
	"github.com/rpplayground/QClassify/backend"
	"github.com/rpplayground/QClassify/classifier"
	"github.com/rpplayground/QClassify/config"
	"github.com/rpplayground/QClassify/encoding"
	"github.com/rpplayground/QClassify/measurement"
	"github.com/rpplayground/QClassify/store"
	"github.com/rpplayground/QClassify/training"
	typesClassifier "github.com/rpplayground/QClassify/types/classifier"
	typesStore "github.com/rpplayground/QClassify/types/store"
	"github.com/rpplayground/QClassify/viz"
)

var (
	configDirectory = flag.String(
		"config",
		filepath.Join(".", ".config"),
		"the configuration directory",
	)
	debug = flag.Bool(
		"debug",
		false,
		"sets log output to debug level",
	)
	storeRun = flag.Bool(
		"store-run",
		false,
		"persist the training run to the configured database",
	)
	boundary = flag.String(
		"boundary",
		"",
		"write the decision boundary to the given PNG path",
	)
)

func main() {
	flag.Parse()

	cfg, err := config.LoadConfig(*configDirectory)
	if err != nil {
		log.Fatal("failed to load config", err)
	}

	logger, closer, err := cfg.CreateLogger(*debug)
	if err != nil {
		log.Fatal("failed to create logger", err)
	}
	defer closer.Close()

	registry := backend.NewRegistry()
	registry.Register(backend.NewSimulator(logger, backend.SimulatorOptions{
		MaxQubits: cfg.Backend.MaxQubits,
		Shots:     cfg.Backend.Shots,
		Seed:      cfg.Backend.Seed,
	}))

	executionBackend, err := registry.Get(cfg.Backend.Name)
	if err != nil {
		logger.Fatal("failed to resolve backend", zap.Error(err))
	}

	model, err := classifier.New(classifier.Options{
		Qubits: []int{0, 1},
		Encoder: classifier.EncoderOptions{
			Preprocessing:   encoding.Identity{},
			EncodingCircuit: encoding.Angle{},
		},
		Processing: classifier.ProcessingOptions{
			Circuit:        ansatz.RotationLayer{},
			Measurement:    measurement.Single{Index: 0},
			Postprocessing: measurement.UpProbability{Bit: 0},
		},
		Backend: executionBackend,
		Logger:  logger,
	})
	if err != nil {
		logger.Fatal("failed to assemble classifier", zap.Error(err))
	}

	// Angle-encoded XOR: same-valued feature pairs are class 0, mixed
	// pairs class 1.
	dataset := typesClassifier.Dataset{
		{Features: []float64{0, 0}, Label: 0},
		{Features: []float64{0, 3.1}, Label: 1},
		{Features: []float64{3.1, 0}, Label: 1},
		{Features: []float64{3.1, 3.1}, Label: 0},
	}

	objective, err := objectiveByName(cfg.Training.Objective)
	if err != nil {
		logger.Fatal("failed to resolve objective", zap.Error(err))
	}

	ctx := context.Background()
	result, err := model.Train(ctx, dataset, typesClassifier.TrainingOptions{
		Objective:      objective,
		Method:         cfg.Training.Method,
		InitialWeights: make([]float64, model.ParameterCount()),
		MaxIterations:  cfg.Training.MaxIterations,
		XTolerance:     cfg.Training.XTolerance,
		FTolerance:     cfg.Training.FTolerance,
		Verbose:        cfg.Training.Verbose,
		Parallelism:    cfg.Training.Parallelism,
	})
	if err != nil {
		logger.Fatal("training failed", zap.Error(err))
	}

	report, err := model.Test(ctx, dataset, typesClassifier.TestOptions{
		Objective: objective,
	})
	if err != nil {
		logger.Fatal("evaluation failed", zap.Error(err))
	}

	fmt.Printf("method:      %s\n", result.Method)
	fmt.Printf("evaluations: %d\n", result.Evaluations)
	fmt.Printf("iterations:  %d\n", result.Iterations)
	fmt.Printf("converged:   %v\n", result.Converged)
	fmt.Printf("final loss:  %v\n", report.Loss)
	fmt.Printf("weights:     %v\n", result.Weights)

	if *storeRun {
		persistRun(logger, cfg, result, objective)
	}

	if *boundary != "" {
		renderBoundary(ctx, logger, model, result.Weights, *boundary)
	}
}

func objectiveByName(name string) (typesClassifier.Objective, error) {
	switch name {
	case training.CrossEntropy{}.Name():
		return training.CrossEntropy{}, nil
	case training.SquaredError{}.Name():
		return training.SquaredError{}, nil
	}
	return nil, fmt.Errorf("unknown objective %q", name)
}

func persistRun(
	logger *zap.Logger,
	cfg *config.Config,
	result *training.Result,
	objective typesClassifier.Objective,
) {
	db := store.NewPebbleDB(logger, &cfg.DB)
	defer db.Close()

	runStore := store.NewPebbleRunStore(db, logger)
	txn, err := runStore.NewTransaction(false)
	if err != nil {
		logger.Fatal("failed to open transaction", zap.Error(err))
	}

	run := &typesStore.TrainingRun{
		ID:             fmt.Sprintf("run-%d", time.Now().UnixNano()),
		CreatedAt:      time.Now().UTC(),
		Method:         result.Method,
		Objective:      objective.Name(),
		Weights:        result.Weights,
		LossHistory:    result.LossHistory,
		MinLossHistory: result.MinLossHistory,
		FinalLoss:      result.FinalLoss,
		Converged:      result.Converged,
	}
	if err := runStore.PutRun(txn, run); err != nil {
		txn.Abort()
		logger.Fatal("failed to store run", zap.Error(err))
	}
	if err := txn.Commit(); err != nil {
		logger.Fatal("failed to commit run", zap.Error(err))
	}

	logger.Info("training run stored", zap.String("id", run.ID))
}

func renderBoundary(
	ctx context.Context,
	logger *zap.Logger,
	model typesClassifier.Model,
	weights []float64,
	path string,
) {
	grid, err := viz.EvaluateGrid(ctx, model, viz.GridOptions{
		XMin:         -0.5,
		XMax:         3.6,
		YMin:         -0.5,
		YMax:         3.6,
		Resolution:   64,
		BaseFeatures: []float64{0, 0},
		XIndex:       0,
		YIndex:       1,
		Weights:      weights,
	})
	if err != nil {
		logger.Fatal("failed to sweep decision boundary", zap.Error(err))
	}

	if err := grid.WritePNG(path); err != nil {
		logger.Fatal("failed to write boundary image", zap.Error(err))
	}

	logger.Info("decision boundary written", zap.String("path", path))
}
