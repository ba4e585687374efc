// Package backend provides circuit execution engines behind the
// quantum.Backend interface, plus a name-keyed registry so configuration can
// select one. The only engine shipped here is an exact statevector
// simulator; hardware backends are external collaborators registered by the
// embedding application.
package backend

import (
	"context"
	"math/rand"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/rpplayground/QClassify/types/quantum"
)

const defaultMaxQubits = 24

// SimulatorOptions configures a statevector simulator.
type SimulatorOptions struct {
	// MaxQubits bounds the register size; memory grows as 2^n.
	MaxQubits int
	// Shots selects sampled measurement statistics. Zero returns the exact
	// distribution.
	Shots int
	// Seed fixes the sampling stream. The generator is reseeded on every
	// execution so identical programs replay identically.
	Seed int64
}

// Simulator is an exact statevector execution engine. It is stateless
// between executions and safe for concurrent use.
type Simulator struct {
	logger    *zap.Logger
	maxQubits int
	shots     int
	seed      int64
}

var _ quantum.Backend = (*Simulator)(nil)

func NewSimulator(logger *zap.Logger, options SimulatorOptions) *Simulator {
	maxQubits := options.MaxQubits
	if maxQubits == 0 {
		maxQubits = defaultMaxQubits
	}
	return &Simulator{
		logger:    logger.Named("simulator"),
		maxQubits: maxQubits,
		shots:     options.Shots,
		seed:      options.Seed,
	}
}

func (s *Simulator) Name() string {
	return "statevector"
}

func (s *Simulator) MaxQubits() int {
	return s.maxQubits
}

// Execute runs the program against a fresh all-zero register and returns
// the measurement statistics over the measured qubits.
func (s *Simulator) Execute(ctx context.Context, program *quantum.Program) (
	*quantum.Result,
	error,
) {
	timer := prometheus.NewTimer(executionDuration.WithLabelValues(s.Name()))
	defer timer.ObserveDuration()

	if err := ctx.Err(); err != nil {
		executionsTotal.WithLabelValues(s.Name(), "error").Inc()
		return nil, errors.Wrap(err, "execute")
	}

	if err := program.Validate(); err != nil {
		executionsTotal.WithLabelValues(s.Name(), "error").Inc()
		return nil, errors.Wrap(
			errors.Wrap(quantum.ErrBackend, err.Error()),
			"execute",
		)
	}

	if len(program.Qubits) > s.maxQubits {
		executionsTotal.WithLabelValues(s.Name(), "error").Inc()
		return nil, errors.Wrap(
			errors.Wrapf(
				quantum.ErrBackend,
				"program needs %d qubits, simulator allows %d",
				len(program.Qubits),
				s.maxQubits,
			),
			"execute",
		)
	}

	// Map allocation indices to register positions in allocation order.
	positionOf := make(map[int]int, len(program.Qubits))
	for position, q := range program.Qubits {
		positionOf[q] = position
	}

	started := time.Now()
	state := newStatevector(len(program.Qubits))
	positions := make([]int, 0, 2)
	for _, inst := range program.Instructions {
		positions = positions[:0]
		for _, q := range inst.Qubits {
			positions = append(positions, positionOf[q])
		}
		if err := state.apply(inst.Gate, inst.Params, positions); err != nil {
			executionsTotal.WithLabelValues(s.Name(), "error").Inc()
			return nil, errors.Wrap(
				errors.Wrap(quantum.ErrBackend, err.Error()),
				"execute",
			)
		}
	}

	measured := make([]int, len(program.Measurement.Qubits))
	for i, q := range program.Measurement.Qubits {
		measured[i] = positionOf[q]
	}
	probabilities := state.marginal(measured)

	result := &quantum.Result{Probabilities: probabilities}
	if s.shots > 0 {
		result = s.sample(probabilities)
	}

	executionsTotal.WithLabelValues(s.Name(), "success").Inc()
	s.logger.Debug(
		"program executed",
		zap.Int("qubits", len(program.Qubits)),
		zap.Int("instructions", len(program.Instructions)),
		zap.Int("shots", s.shots),
		zap.Duration("elapsed", time.Since(started)),
	)

	return result, nil
}

// sample draws shot outcomes from the exact distribution. Outcomes are
// enumerated in sorted key order so a fixed seed replays exactly.
func (s *Simulator) sample(probabilities map[string]float64) *quantum.Result {
	outcomes := make([]string, 0, len(probabilities))
	for outcome := range probabilities {
		outcomes = append(outcomes, outcome)
	}
	sort.Strings(outcomes)

	rng := rand.New(rand.NewSource(s.seed))
	counts := make(map[string]int, len(outcomes))
	for shot := 0; shot < s.shots; shot++ {
		r := rng.Float64()
		acc := 0.0
		chosen := outcomes[len(outcomes)-1]
		for _, outcome := range outcomes {
			acc += probabilities[outcome]
			if r < acc {
				chosen = outcome
				break
			}
		}
		counts[chosen]++
	}

	empirical := make(map[string]float64, len(counts))
	for outcome, count := range counts {
		empirical[outcome] = float64(count) / float64(s.shots)
	}

	return &quantum.Result{
		Probabilities: empirical,
		Counts:        counts,
		Shots:         s.shots,
	}
}
