package quantum

import (
	"context"

	"github.com/pkg/errors"
)

// ErrBackend is the base error for execution failures inside a backend:
// malformed circuits, unsupported gates, timeouts. Callers detect it with
// errors.Is.
var ErrBackend = errors.New("backend execution failed")

// Result holds the measurement statistics of one program execution.
//
// Probabilities is always populated and keyed by the measured-qubit
// bitstring in measurement-spec order (first measured qubit is the leftmost
// character). In exact mode it is the true distribution; in sampled mode it
// is the empirical shot distribution. Counts is populated only when the
// backend sampled shots.
type Result struct {
	Probabilities map[string]float64
	Counts        map[string]int
	Shots         int
}

// Backend executes an assembled circuit program and returns measurement
// statistics. Implementations must be deterministic for identical programs
// under fixed settings: exact backends by construction, sampling backends by
// reseeding from their configured seed on every execution.
type Backend interface {
	Name() string
	MaxQubits() int
	Execute(ctx context.Context, program *Program) (*Result, error)
}
