package backend

import (
	"math"
	"math/cmplx"

	"github.com/pkg/errors"

	"github.com/rpplayground/QClassify/types/quantum"
)

// statevector holds the amplitudes of an n-qubit register. The qubit at
// position 0 is the most significant bit of the basis-state index, so the
// bitstring of index i reads left to right in allocation order.
type statevector struct {
	n          int
	amplitudes []complex128
}

func newStatevector(n int) *statevector {
	s := &statevector{
		n:          n,
		amplitudes: make([]complex128, 1<<uint(n)),
	}
	s.amplitudes[0] = 1
	return s
}

func (s *statevector) bitMask(position int) int {
	return 1 << uint(s.n-1-position)
}

// applySingle applies a 2x2 unitary to the qubit at the given position.
func (s *statevector) applySingle(u [2][2]complex128, position int) {
	mask := s.bitMask(position)
	for i := range s.amplitudes {
		if i&mask != 0 {
			continue
		}
		j := i | mask
		a0, a1 := s.amplitudes[i], s.amplitudes[j]
		s.amplitudes[i] = u[0][0]*a0 + u[0][1]*a1
		s.amplitudes[j] = u[1][0]*a0 + u[1][1]*a1
	}
}

// applyCNOT flips the target qubit wherever the control qubit is set.
func (s *statevector) applyCNOT(control, target int) {
	cmask := s.bitMask(control)
	tmask := s.bitMask(target)
	for i := range s.amplitudes {
		if i&cmask != 0 && i&tmask == 0 {
			j := i | tmask
			s.amplitudes[i], s.amplitudes[j] = s.amplitudes[j], s.amplitudes[i]
		}
	}
}

// applyCZ negates the amplitude of every basis state with both qubits set.
func (s *statevector) applyCZ(a, b int) {
	amask := s.bitMask(a)
	bmask := s.bitMask(b)
	for i := range s.amplitudes {
		if i&amask != 0 && i&bmask != 0 {
			s.amplitudes[i] = -s.amplitudes[i]
		}
	}
}

func (s *statevector) apply(gate quantum.Gate, params []float64, positions []int) error {
	switch gate {
	case quantum.GateH:
		inv := complex(1/math.Sqrt2, 0)
		s.applySingle([2][2]complex128{{inv, inv}, {inv, -inv}}, positions[0])
	case quantum.GateX:
		s.applySingle([2][2]complex128{{0, 1}, {1, 0}}, positions[0])
	case quantum.GateY:
		s.applySingle([2][2]complex128{{0, -1i}, {1i, 0}}, positions[0])
	case quantum.GateZ:
		s.applySingle([2][2]complex128{{1, 0}, {0, -1}}, positions[0])
	case quantum.GateRX:
		c := complex(math.Cos(params[0]/2), 0)
		is := complex(0, math.Sin(params[0]/2))
		s.applySingle([2][2]complex128{{c, -is}, {-is, c}}, positions[0])
	case quantum.GateRY:
		c := complex(math.Cos(params[0]/2), 0)
		sn := complex(math.Sin(params[0]/2), 0)
		s.applySingle([2][2]complex128{{c, -sn}, {sn, c}}, positions[0])
	case quantum.GateRZ:
		phase := cmplx.Exp(complex(0, params[0]/2))
		s.applySingle([2][2]complex128{{1 / phase, 0}, {0, phase}}, positions[0])
	case quantum.GateCNOT:
		s.applyCNOT(positions[0], positions[1])
	case quantum.GateCZ:
		s.applyCZ(positions[0], positions[1])
	default:
		return errors.Errorf("unsupported gate %q", gate)
	}
	return nil
}

// marginal computes the probability distribution over the measured qubit
// positions, keyed by bitstring in measurement order. Keys with zero
// probability are omitted.
func (s *statevector) marginal(positions []int) map[string]float64 {
	probabilities := make(map[string]float64)
	key := make([]byte, len(positions))
	for i, amp := range s.amplitudes {
		p := real(amp)*real(amp) + imag(amp)*imag(amp)
		if p == 0 {
			continue
		}
		for k, position := range positions {
			if i&s.bitMask(position) != 0 {
				key[k] = '1'
			} else {
				key[k] = '0'
			}
		}
		probabilities[string(key)] += p
	}
	return probabilities
}
