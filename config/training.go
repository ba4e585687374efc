package config

const (
	defaultMethod        = "nelder-mead"
	defaultObjective     = "cross-entropy"
	defaultMaxIterations = 200
	defaultXTolerance    = 1e-4
	defaultFTolerance    = 1e-4
)

type TrainingConfig struct {
	// Method selects the optimizer from the optimizer registry.
	Method string `yaml:"method"`
	// Objective selects the loss scored per example.
	Objective string `yaml:"objective"`
	// MaxIterations caps the optimizer's major iterations.
	MaxIterations int `yaml:"maxIterations"`
	// XTolerance and FTolerance are the early-termination tolerances on
	// parameter and objective displacement between iterations.
	XTolerance float64 `yaml:"xTolerance"`
	FTolerance float64 `yaml:"fTolerance"`
	// Parallelism bounds concurrent circuit executions within one objective
	// evaluation.
	Parallelism int `yaml:"parallelism"`
	// Verbose emits a progress line per objective evaluation.
	Verbose bool `yaml:"verbose"`
}

// WithDefaults returns a copy of the TrainingConfig with any missing fields
// set to their default values.
func (c TrainingConfig) WithDefaults() TrainingConfig {
	cpy := c
	if cpy.Method == "" {
		cpy.Method = defaultMethod
	}
	if cpy.Objective == "" {
		cpy.Objective = defaultObjective
	}
	if cpy.MaxIterations == 0 {
		cpy.MaxIterations = defaultMaxIterations
	}
	if cpy.XTolerance == 0 {
		cpy.XTolerance = defaultXTolerance
	}
	if cpy.FTolerance == 0 {
		cpy.FTolerance = defaultFTolerance
	}
	return cpy
}
