package logger

import (
	"io"
	"os"

	"github.com/go-home-io/kiwi/plugins/common"
	"github.com/sirupsen/logrus"
)

// Default console logger.
type consoleLogger struct {
	logger *logrus.Logger
}

// NewConsoleLogger constructs a new console logger with info level.
func NewConsoleLogger() common.ILoggerProvider {
	return newConsoleLogger(os.Stdout, logrus.InfoLevel)
}

// Constructs a new console logger.
func newConsoleLogger(out io.Writer, level logrus.Level) *consoleLogger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "Jan _2 15:04:05.000",
	})

	return &consoleLogger{
		logger: l,
	}
}

// Debug prints debug level message.
func (p *consoleLogger) Debug(msg string, fields ...string) {
	p.logger.WithFields(withFields(fields...)).Debug(msg)
}

// Info prints info level message.
func (p *consoleLogger) Info(msg string, fields ...string) {
	p.logger.WithFields(withFields(fields...)).Info(msg)
}

// Warn prints warning level message.
func (p *consoleLogger) Warn(msg string, fields ...string) {
	p.logger.WithFields(withFields(fields...)).Warn(msg)
}

// Error prints error level message.
func (p *consoleLogger) Error(msg string, err error, fields ...string) {
	p.logger.WithFields(withFields(fields...)).WithError(err).Error(msg)
}

// Fatal prints fatal level message and exits.
func (p *consoleLogger) Fatal(msg string, err error, fields ...string) {
	p.logger.WithFields(withFields(fields...)).WithError(err).Fatal(msg)
}

// Helper method to add generic fields to the output.
func withFields(fields ...string) logrus.Fields {
	fLen := len(fields)
	result := make(logrus.Fields, fLen/2)
	for ii := 0; ii < fLen; ii += 2 {
		if ii+1 >= fLen {
			break
		}

		result[fields[ii]] = fields[ii+1]
	}

	return result
}
