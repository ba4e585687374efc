// Package config holds the YAML-backed runtime configuration: backend,
// training defaults, run database, and logging.
package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Backend  BackendConfig  `yaml:"backend"`
	Training TrainingConfig `yaml:"training"`
	DB       DBConfig       `yaml:"db"`
	// LogFile routes logs to a rotating file with the given name instead of
	// the console. Empty means console logging.
	LogFile string     `yaml:"logFile"`
	Logger  *LogConfig `yaml:"logger"`
}

// WithDefaults returns a copy of the Config with any missing fields set to
// their default values.
func (c Config) WithDefaults() Config {
	cpy := c
	cpy.Backend = cpy.Backend.WithDefaults()
	cpy.Training = cpy.Training.WithDefaults()
	cpy.DB = cpy.DB.WithDefaults()
	return cpy
}

// LoadConfig reads config.yml from the given directory, creating a default
// one on first use.
func LoadConfig(configDirectory string) (*Config, error) {
	configPath := filepath.Join(configDirectory, "config.yml")

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		config := Config{}.WithDefaults()
		if err := SaveConfig(configDirectory, &config); err != nil {
			return nil, errors.Wrap(err, "load config")
		}
		return &config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errors.Wrap(err, "load config")
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, errors.Wrap(err, "load config")
	}

	withDefaults := config.WithDefaults()
	return &withDefaults, nil
}

// SaveConfig writes config.yml into the given directory, creating the
// directory if needed.
func SaveConfig(configDirectory string, config *Config) error {
	if err := os.MkdirAll(configDirectory, 0o755); err != nil {
		return errors.Wrap(err, "save config")
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "save config")
	}

	err = os.WriteFile(
		filepath.Join(configDirectory, "config.yml"),
		data,
		0o644,
	)
	if err != nil {
		return errors.Wrap(err, "save config")
	}

	return nil
}
