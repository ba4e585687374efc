package classifier

// TrainingExample pairs one feature vector with its class label. Labels are
// binary: 0 or 1.
type TrainingExample struct {
	Features []float64
	Label    int
}

// Dataset is an ordered sequence of labeled examples. Order carries no
// semantics beyond iteration, but aggregation over it is performed in index
// order so results are reproducible.
type Dataset []TrainingExample

// TrainingOptions configures one training run.
type TrainingOptions struct {
	// Objective scored per example and minimized in aggregate.
	Objective Objective
	// Method is the optimizer identifier resolved against the optimizer
	// registry, e.g. "nelder-mead".
	Method string
	// InitialWeights seeds the search; its length must match the
	// variational strategy's parameter count.
	InitialWeights []float64
	// MaxIterations caps the optimizer's major iterations. Hitting the cap
	// is not an error; the result reports Converged false.
	MaxIterations int
	// XTolerance and FTolerance are the early-termination tolerances on
	// parameter displacement and objective displacement between iterations.
	// Both must be satisfied to stop before the iteration cap.
	XTolerance float64
	FTolerance float64
	// Verbose emits a progress line per objective evaluation as it occurs.
	Verbose bool
	// Parallelism bounds concurrent circuit executions within one objective
	// evaluation. Values below 2 evaluate serially.
	Parallelism int
}

// TestOptions configures a fixed-weight evaluation.
type TestOptions struct {
	Objective Objective
	// Weights overrides the most recently trained weights when non-nil.
	Weights []float64
}

// TestReport is the outcome of one fixed-weight evaluation, carrying the
// options used alongside the score for traceability.
type TestReport struct {
	Loss      float64
	Objective string
	Examples  int
	Weights   []float64
}
