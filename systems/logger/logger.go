// Package logger provides go-home logger implementations.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/go-home-io/kiwi/plugins/common"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// Logger settings.
type settings struct {
	Level string `yaml:"level"`
}

// ConstructLogger has data required for a new logger.
type ConstructLogger struct {
	RawConfig []byte
	Level     string
	Output    io.Writer
}

// NewLoggerProvider constructs a new logger.
// Explicitly passed level takes precedence over the config one.
func NewLoggerProvider(ctor *ConstructLogger) common.ILoggerProvider {
	level := getLogLevel(ctor.RawConfig)
	if ctor.Level != "" {
		level = parseLevel(ctor.Level)
	}

	out := ctor.Output
	if nil == out {
		out = os.Stdout
	}

	return newConsoleLogger(out, level)
}

// Reads log level from raw config.
func getLogLevel(rawConfig []byte) logrus.Level {
	s := &settings{}
	if err := yaml.Unmarshal(rawConfig, s); err != nil {
		return logrus.InfoLevel
	}

	return parseLevel(s.Level)
}

// Converts level name into logrus level.
func parseLevel(level string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug", "dbg":
		return logrus.DebugLevel
	case "warning", "warn":
		return logrus.WarnLevel
	case "error", "err":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}
