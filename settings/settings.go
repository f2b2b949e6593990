package settings

import (
	"github.com/go-home-io/kiwi/kiwi"
	"github.com/go-home-io/kiwi/plugins/common"
	"github.com/go-home-io/kiwi/providers"
	"github.com/go-home-io/kiwi/systems"
	"github.com/go-home-io/kiwi/systems/logger"
)

// SystemLogger returns default system logger.
func (s *settingsProvider) SystemLogger() common.ILoggerProvider {
	return s.logger
}

// PluginLogger returns logger specifically for a system provider.
func (s *settingsProvider) PluginLogger(system systems.SystemType, provider string) common.ILoggerProvider {
	return logger.NewPluginLogger(&logger.ConstructPluginLogger{
		SystemLogger: s.logger,
		System:       system.String(),
		Provider:     provider,
	})
}

// Secrets returns secrets store.
func (s *settingsProvider) Secrets() common.ISecretProvider {
	return s.secrets
}

// Cron returns system's cron provider.
func (s *settingsProvider) Cron() providers.ICronProvider {
	return s.cron
}

// Validator returns yaml validator provider.
func (s *settingsProvider) Validator() providers.IValidatorProvider {
	return s.validator
}

// BridgeSettings returns bridge settings.
func (s *settingsProvider) BridgeSettings() *providers.BridgeSettings {
	return s.bridge
}

// KiwiSettings returns Kiwi account settings.
func (s *settingsProvider) KiwiSettings() *kiwi.Settings {
	return s.kiwi
}

// APISettings returns HTTP API settings.
func (s *settingsProvider) APISettings() *providers.APISettings {
	return s.api
}

// MQTTSettings returns MQTT settings or nil if MQTT is not configured.
func (s *settingsProvider) MQTTSettings() *providers.MQTTSettings {
	return s.mqtt
}
