package optimize

import (
	"math"

	"gonum.org/v1/gonum/optimize"
)

// convergeIterations is the number of consecutive major iterations over
// which both displacement tolerances must hold before a run is declared
// converged. A single quiet iteration is not enough: direct-search methods
// routinely hold their best point still for one step while the simplex or
// population keeps exploring.
const convergeIterations = 10

// displacementConverger terminates a run once the best point has moved less
// than xtol in every coordinate and the best objective has moved less than
// ftol, both sustained over convergeIterations consecutive major
// iterations. It also polls an abort hook so the trainer can make objective
// errors fatal without waiting for the iteration cap.
type displacementConverger struct {
	xtol  float64
	ftol  float64
	abort func() bool

	prevX []float64
	prevF float64
	armed bool
	quiet int
}

var _ optimize.Converger = (*displacementConverger)(nil)

func (c *displacementConverger) Init(dim int) {
	c.prevX = make([]float64, dim)
	c.prevF = 0
	c.armed = false
	c.quiet = 0
}

func (c *displacementConverger) Converged(loc *optimize.Location) optimize.Status {
	if c.abort != nil && c.abort() {
		return optimize.Failure
	}

	if c.armed && c.xtol > 0 && c.ftol > 0 {
		dx := 0.0
		for i := range loc.X {
			dx = math.Max(dx, math.Abs(loc.X[i]-c.prevX[i]))
		}
		df := math.Abs(loc.F - c.prevF)
		if dx < c.xtol && df < c.ftol {
			c.quiet++
		} else {
			c.quiet = 0
		}
		if c.quiet >= convergeIterations {
			return optimize.FunctionConvergence
		}
	}

	copy(c.prevX, loc.X)
	c.prevF = loc.F
	c.armed = true
	return optimize.NotTerminated
}
