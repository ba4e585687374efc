package config

const defaultDBPath = ".qclassify/store"

type DBConfig struct {
	Path string `yaml:"path"`

	// Test-only: back the store with an in-memory filesystem.
	InMemory bool
}

// WithDefaults returns a copy of the DBConfig with any missing fields set to
// their default values.
func (c DBConfig) WithDefaults() DBConfig {
	cpy := c
	if cpy.Path == "" {
		cpy.Path = defaultDBPath
	}
	return cpy
}
