package quantum

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Gate identifies a circuit operation by its lowercase wire-format name.
type Gate string

const (
	GateH  Gate = "h"
	GateX  Gate = "x"
	GateY  Gate = "y"
	GateZ  Gate = "z"
	GateRX Gate = "rx"
	GateRY Gate = "ry"
	GateRZ Gate = "rz"

	GateCNOT Gate = "cnot"
	GateCZ   Gate = "cz"
)

// Arity returns the number of qubits the gate acts on, or 0 for an
// unrecognized gate.
func (g Gate) Arity() int {
	switch g {
	case GateH, GateX, GateY, GateZ, GateRX, GateRY, GateRZ:
		return 1
	case GateCNOT, GateCZ:
		return 2
	}
	return 0
}

// Parametrized reports whether the gate consumes a rotation angle.
func (g Gate) Parametrized() bool {
	switch g {
	case GateRX, GateRY, GateRZ:
		return true
	}
	return false
}

// Instruction is a single gate application. Params holds the rotation angle
// for parametrized gates and is empty otherwise. Qubits are absolute indices
// into the classifier's qubit allocation.
type Instruction struct {
	Gate   Gate
	Params []float64
	Qubits []int
}

// Fragment is an ordered sequence of instructions produced by one
// circuit-building strategy. Fragments are concatenated by the classifier in
// encoding, variational, measurement order.
type Fragment []Instruction

// MeasurementSpec declares which qubits are read out into which classical
// register after the circuit has run.
type MeasurementSpec struct {
	Qubits   []int
	Register string
}

// Program is one fully assembled circuit: a qubit allocation, the gate
// sequence, and the final measurement. It is the unit of work a Backend
// executes.
type Program struct {
	Qubits       []int
	Instructions []Instruction
	Measurement  MeasurementSpec
}

// Validate checks structural integrity: a non-empty allocation of distinct
// qubit indices, every instruction within the allocation with the right
// arity and parameter count, and a non-empty measurement within the
// allocation.
func (p *Program) Validate() error {
	if len(p.Qubits) == 0 {
		return errors.New("program has no qubit allocation")
	}

	allocated := make(map[int]bool, len(p.Qubits))
	for _, q := range p.Qubits {
		if q < 0 {
			return errors.Errorf("negative qubit index %d in allocation", q)
		}
		if allocated[q] {
			return errors.Errorf("duplicate qubit index %d in allocation", q)
		}
		allocated[q] = true
	}

	for i, inst := range p.Instructions {
		arity := inst.Gate.Arity()
		if arity == 0 {
			return errors.Errorf("instruction %d: unknown gate %q", i, inst.Gate)
		}
		if len(inst.Qubits) != arity {
			return errors.Errorf(
				"instruction %d: gate %q expects %d qubits, got %d",
				i, inst.Gate, arity, len(inst.Qubits),
			)
		}
		if inst.Gate.Parametrized() != (len(inst.Params) == 1) {
			return errors.Errorf(
				"instruction %d: gate %q has %d parameters",
				i, inst.Gate, len(inst.Params),
			)
		}
		seen := make(map[int]bool, len(inst.Qubits))
		for _, q := range inst.Qubits {
			if !allocated[q] {
				return errors.Errorf(
					"instruction %d: qubit %d outside allocation", i, q,
				)
			}
			if seen[q] {
				return errors.Errorf(
					"instruction %d: repeated qubit %d", i, q,
				)
			}
			seen[q] = true
		}
	}

	if len(p.Measurement.Qubits) == 0 {
		return errors.New("program has no measured qubits")
	}
	seen := make(map[int]bool, len(p.Measurement.Qubits))
	for _, q := range p.Measurement.Qubits {
		if !allocated[q] {
			return errors.Errorf("measured qubit %d outside allocation", q)
		}
		if seen[q] {
			return errors.Errorf("qubit %d measured twice", q)
		}
		seen[q] = true
	}

	return nil
}

// Render produces the human-readable text form of the program: the qubit
// allocation, the classical register declaration, one instruction per line,
// and the measurement instructions. It is meant for debugging and log
// output, not as a machine contract.
func (p *Program) Render() string {
	var b strings.Builder

	qubits := make([]string, len(p.Qubits))
	for i, q := range p.Qubits {
		qubits[i] = strconv.Itoa(q)
	}
	fmt.Fprintf(&b, "qubits %s\n", strings.Join(qubits, ","))

	register := p.Measurement.Register
	if register == "" {
		register = "c"
	}
	fmt.Fprintf(&b, "creg %s[%d]\n", register, len(p.Measurement.Qubits))

	for _, inst := range p.Instructions {
		b.WriteString(string(inst.Gate))
		for _, param := range inst.Params {
			fmt.Fprintf(&b, " %.6f", param)
		}
		for _, q := range inst.Qubits {
			fmt.Fprintf(&b, " q%d", q)
		}
		b.WriteByte('\n')
	}

	for i, q := range p.Measurement.Qubits {
		fmt.Fprintf(&b, "measure q%d -> %s%d\n", q, register, i)
	}

	return b.String()
}
