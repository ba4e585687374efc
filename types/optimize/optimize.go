// Package optimize declares the derivative-free minimization contract the
// trainer drives. Concrete methods are registered by name in the top-level
// optimize package.
package optimize

// Func is the scalar objective a method minimizes. Implementations must not
// retain or mutate x.
type Func func(x []float64) float64

// Settings bounds a minimization run.
type Settings struct {
	// MaxIterations caps major iterations. Zero means the method default.
	MaxIterations int
	// XTolerance and FTolerance are early-termination tolerances on
	// parameter displacement and objective-value displacement between
	// iterations. Both must hold to stop before the iteration cap.
	XTolerance float64
	FTolerance float64
	// Abort is polled between iterations; when it reports true the run
	// terminates as failed. Used to make objective errors fatal promptly.
	Abort func() bool
}

// Result is the outcome of a minimization run.
type Result struct {
	// X is the best parameter vector found.
	X []float64
	// F is the objective value at X.
	F float64
	// Evaluations counts objective calls; Iterations counts major
	// iterations.
	Evaluations int
	Iterations  int
	// Converged reports whether the run stopped on its tolerances rather
	// than on the iteration cap.
	Converged bool
}

// Method is one derivative-free minimization algorithm.
type Method interface {
	Name() string
	Minimize(f Func, initial []float64, settings Settings) (*Result, error)
}
