package providers

import (
	"github.com/go-home-io/kiwi/kiwi"
	"github.com/go-home-io/kiwi/plugins/common"
	"github.com/go-home-io/kiwi/systems"
)

// ISettingsProvider defines settings loader provider logic.
type ISettingsProvider interface {
	SystemLogger() common.ILoggerProvider
	PluginLogger(system systems.SystemType, provider string) common.ILoggerProvider
	Cron() ICronProvider
	Validator() IValidatorProvider
	Secrets() common.ISecretProvider
	BridgeSettings() *BridgeSettings
	KiwiSettings() *kiwi.Settings
	APISettings() *APISettings
	MQTTSettings() *MQTTSettings
}

// BridgeSettings has configured data for the polling bridge.
type BridgeSettings struct {
	PlatformName string `yaml:"platformName" validate:"required" default:"Kiwi"`
	PollInterval int    `yaml:"pollInterval" validate:"gte=10" default:"600"`
	ResetDelay   int    `yaml:"resetDelay" validate:"gte=0,lte=60000" default:"1000"`
}

// APISettings has configured data for HTTP API.
type APISettings struct {
	Port  int               `yaml:"port" validate:"required,port" default:"8080"`
	Users map[string]string `yaml:"users"`
}

// MQTTSettings has configured data for MQTT exposure.
type MQTTSettings struct {
	Broker          string `yaml:"broker" validate:"required,broker"`
	Username        string `yaml:"username"`
	Password        string `yaml:"password"`
	ClientID        string `yaml:"clientId" default:"go-home-kiwi"`
	TopicPrefix     string `yaml:"topicPrefix" validate:"required" default:"kiwi"`
	DiscoveryPrefix string `yaml:"discoveryPrefix" validate:"required" default:"homeassistant"`
}
