package optimize

import (
	"gonum.org/v1/gonum/optimize"

	typesOptimize "github.com/rpplayground/QClassify/types/optimize"
)

const MethodCMAES = "cmaes"

// CMAES is covariance matrix adaptation evolution strategy, an alternative
// derivative-free optimizer better suited to rugged loss landscapes than
// the simplex method.
type CMAES struct{}

var _ typesOptimize.Method = (*CMAES)(nil)

func (*CMAES) Name() string {
	return MethodCMAES
}

func (*CMAES) Minimize(
	f typesOptimize.Func,
	initial []float64,
	settings typesOptimize.Settings,
) (*typesOptimize.Result, error) {
	return minimize(f, initial, settings, &optimize.CmaEsChol{})
}
