package config

const (
	defaultBackendName = "statevector"
	defaultMaxQubits   = 24
)

type BackendConfig struct {
	// Name selects the execution backend from the backend registry.
	Name string `yaml:"name"`
	// MaxQubits caps the allocation size the backend accepts.
	MaxQubits int `yaml:"maxQubits"`
	// Shots switches the simulator from exact probabilities to sampled
	// counts. Zero means exact.
	Shots int `yaml:"shots"`
	// Seed makes sampled runs reproducible. Ignored when Shots is zero.
	Seed int64 `yaml:"seed"`
}

// WithDefaults returns a copy of the BackendConfig with any missing fields
// set to their default values.
func (c BackendConfig) WithDefaults() BackendConfig {
	cpy := c
	if cpy.Name == "" {
		cpy.Name = defaultBackendName
	}
	if cpy.MaxQubits == 0 {
		cpy.MaxQubits = defaultMaxQubits
	}
	return cpy
}
