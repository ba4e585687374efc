package quantum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProgram() *Program {
	return &Program{
		Qubits: []int{0, 1},
		Instructions: []Instruction{
			{Gate: GateRY, Params: []float64{0.5}, Qubits: []int{0}},
			{Gate: GateCZ, Qubits: []int{0, 1}},
		},
		Measurement: MeasurementSpec{Qubits: []int{0}, Register: "c"},
	}
}

func TestGate_Arity(t *testing.T) {
	assert.Equal(t, 1, GateH.Arity())
	assert.Equal(t, 1, GateRZ.Arity())
	assert.Equal(t, 2, GateCNOT.Arity())
	assert.Equal(t, 2, GateCZ.Arity())
	assert.Equal(t, 0, Gate("swap").Arity())
}

func TestGate_Parametrized(t *testing.T) {
	assert.True(t, GateRX.Parametrized())
	assert.True(t, GateRY.Parametrized())
	assert.True(t, GateRZ.Parametrized())
	assert.False(t, GateH.Parametrized())
	assert.False(t, GateCNOT.Parametrized())
}

func TestProgram_ValidateAcceptsWellFormed(t *testing.T) {
	assert.NoError(t, validProgram().Validate())
}

func TestProgram_ValidateRejections(t *testing.T) {
	p := validProgram()
	p.Qubits = nil
	assert.Error(t, p.Validate())

	p = validProgram()
	p.Qubits = []int{0, 0}
	assert.Error(t, p.Validate())

	p = validProgram()
	p.Qubits = []int{0, -1}
	assert.Error(t, p.Validate())

	p = validProgram()
	p.Instructions[0].Gate = Gate("swap")
	assert.Error(t, p.Validate())

	p = validProgram()
	p.Instructions[0].Params = nil
	assert.Error(t, p.Validate())

	p = validProgram()
	p.Instructions[1].Params = []float64{0.5}
	assert.Error(t, p.Validate())

	p = validProgram()
	p.Instructions[1].Qubits = []int{0}
	assert.Error(t, p.Validate())

	p = validProgram()
	p.Instructions[1].Qubits = []int{0, 0}
	assert.Error(t, p.Validate())

	p = validProgram()
	p.Instructions[0].Qubits = []int{9}
	assert.Error(t, p.Validate())

	p = validProgram()
	p.Measurement.Qubits = nil
	assert.Error(t, p.Validate())

	p = validProgram()
	p.Measurement.Qubits = []int{9}
	assert.Error(t, p.Validate())

	p = validProgram()
	p.Measurement.Qubits = []int{0, 0}
	assert.Error(t, p.Validate())
}

func TestProgram_Render(t *testing.T) {
	rendered := validProgram().Render()

	expected := "qubits 0,1\n" +
		"creg c[1]\n" +
		"ry 0.500000 q0\n" +
		"cz q0 q1\n" +
		"measure q0 -> c0\n"
	assert.Equal(t, expected, rendered)
}

func TestProgram_RenderDefaultsRegisterName(t *testing.T) {
	p := validProgram()
	p.Measurement.Register = ""

	rendered := p.Render()
	require.Contains(t, rendered, "creg c[1]")
	require.Contains(t, rendered, "measure q0 -> c0")
}
