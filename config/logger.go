package config

import (
	"io"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/rpplayground/QClassify/utils/logging"
)

type LogConfig struct {
	Path       string `yaml:"path"`
	MaxSize    int    `yaml:"maxSize"`
	MaxBackups int    `yaml:"maxBackups"`
	MaxAge     int    `yaml:"maxAge"`
	Compress   bool   `yaml:"compress"`
}

// CreateLogger builds the process logger from the configuration: a rotating
// file logger when a log file is configured, console logging otherwise.
func (c *Config) CreateLogger(debug bool) (
	*zap.Logger,
	io.Closer,
	error,
) {
	filename := c.LogFile
	if filename != "" || c.Logger != nil {
		dir := ""
		if c.Logger != nil {
			dir = c.Logger.Path
		}

		logger, closer, err := logging.NewRotatingFileLogger(
			debug,
			dir,
			filename,
		)
		return logger, closer, errors.Wrap(err, "create logger")
	}

	var logger *zap.Logger
	var err error
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}

	return logger, io.NopCloser(nil), errors.Wrap(err, "create logger")
}
