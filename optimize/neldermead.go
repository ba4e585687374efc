package optimize

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/optimize"

	typesOptimize "github.com/rpplayground/QClassify/types/optimize"
)

const MethodNelderMead = "nelder-mead"

// NelderMead is the downhill simplex method, the reference derivative-free
// optimizer for noisy, expensive circuit objectives.
type NelderMead struct{}

var _ typesOptimize.Method = (*NelderMead)(nil)

func (*NelderMead) Name() string {
	return MethodNelderMead
}

func (*NelderMead) Minimize(
	f typesOptimize.Func,
	initial []float64,
	settings typesOptimize.Settings,
) (*typesOptimize.Result, error) {
	return minimize(f, initial, settings, &optimize.NelderMead{})
}

// minimize runs one gonum method under the engine's settings and maps the
// outcome onto the engine's result contract.
func minimize(
	f typesOptimize.Func,
	initial []float64,
	settings typesOptimize.Settings,
	method optimize.Method,
) (*typesOptimize.Result, error) {
	if len(initial) == 0 {
		return nil, errors.Wrap(
			errors.New("empty initial parameter vector"),
			"minimize",
		)
	}

	problem := optimize.Problem{
		Func: func(x []float64) float64 { return f(x) },
	}
	gonumSettings := &optimize.Settings{
		MajorIterations: settings.MaxIterations,
		Converger: &displacementConverger{
			xtol:  settings.XTolerance,
			ftol:  settings.FTolerance,
			abort: settings.Abort,
		},
	}

	result, err := optimize.Minimize(
		problem,
		append([]float64(nil), initial...),
		gonumSettings,
		method,
	)
	if result == nil {
		return nil, errors.Wrap(err, "minimize")
	}
	if err != nil && result.Status != optimize.IterationLimit {
		// A Failure status raised by the abort hook is the caller's own
		// cancellation; any other failure is a genuine method error.
		aborted := settings.Abort != nil && settings.Abort()
		if result.Status != optimize.Failure || !aborted {
			return nil, errors.Wrap(err, "minimize")
		}
	}

	converged := false
	switch result.Status {
	case optimize.Success,
		optimize.FunctionConvergence,
		optimize.StepConvergence,
		optimize.MethodConverge:
		converged = true
	}

	return &typesOptimize.Result{
		X:           result.X,
		F:           result.F,
		Evaluations: result.Stats.FuncEvaluations,
		Iterations:  result.Stats.MajorIterations,
		Converged:   converged,
	}, nil
}
