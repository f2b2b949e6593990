package logger

import (
	"github.com/go-home-io/kiwi/plugins/common"
)

// Scoped logger which marks every entry with system and provider.
type pluginLogger struct {
	systemLogger common.ILoggerProvider
	scope        []string
}

// ConstructPluginLogger has data required for a new plugin logger.
type ConstructPluginLogger struct {
	SystemLogger common.ILoggerProvider
	System       string
	Provider     string
}

// NewPluginLogger constructs a new logger scoped to system and provider.
func NewPluginLogger(ctor *ConstructPluginLogger) common.ILoggerProvider {
	return &pluginLogger{
		systemLogger: ctor.SystemLogger,
		scope:        []string{common.LogSystemToken, ctor.System, common.LogProviderToken, ctor.Provider},
	}
}

// Debug sends debug level message.
func (l *pluginLogger) Debug(msg string, fields ...string) {
	l.systemLogger.Debug(msg, l.fields(fields)...)
}

// Info sends info level message.
func (l *pluginLogger) Info(msg string, fields ...string) {
	l.systemLogger.Info(msg, l.fields(fields)...)
}

// Warn sends warning level message.
func (l *pluginLogger) Warn(msg string, fields ...string) {
	l.systemLogger.Warn(msg, l.fields(fields)...)
}

// Error sends error level message.
func (l *pluginLogger) Error(msg string, err error, fields ...string) {
	l.systemLogger.Error(msg, err, l.fields(fields)...)
}

// Fatal sends fatal level message and exits.
func (l *pluginLogger) Fatal(msg string, err error, fields ...string) {
	l.systemLogger.Fatal(msg, err, l.fields(fields)...)
}

// Merges call fields with scope without touching caller's slice.
// Caller fields with odd length lose the dangling key.
func (l *pluginLogger) fields(fields []string) []string {
	n := len(fields) - len(fields)%2
	merged := make([]string, 0, n+len(l.scope))
	merged = append(merged, fields[:n]...)
	return append(merged, l.scope...)
}
