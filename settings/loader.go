// Package settings is responsible for parsing yaml-based configuration.
package settings

import (
	"bytes"
	"io"
	"strings"

	"github.com/go-home-io/kiwi/kiwi"
	"github.com/go-home-io/kiwi/plugins/common"
	"github.com/go-home-io/kiwi/providers"
	"github.com/go-home-io/kiwi/systems"
	"github.com/go-home-io/kiwi/systems/config"
	"github.com/go-home-io/kiwi/systems/logger"
	"github.com/go-home-io/kiwi/systems/secret"
	"github.com/go-home-io/kiwi/utils"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	// Logger system.
	logSystem = "settings"
)

const (
	// Describes config record for the bridge.
	configGoHomeBridge = "bridge"
	// Describes config record for Kiwi account.
	configDeviceKiwi = "kiwi"
	// Describes config record for HTTP API.
	configAPIHTTP = "http"
	// Describes config record for MQTT.
	configBusMQTT = "mqtt"
)

// StartUpOptions defines arguments allowed by the system.
type StartUpOptions struct {
	ConfigDir string `short:"c" long:"config" description:"Config files location. Defaults to ./configs."`
	LogLevel  string `short:"l" long:"log-level" description:"Overrides configured log level."`
}

// Defines loaded provider record.
type rawProvider struct {
	System   string
	Provider string
	Config   []byte
}

// System settings.
type settingsProvider struct {
	logger    common.ILoggerProvider
	cron      providers.ICronProvider
	validator providers.IValidatorProvider
	secrets   providers.IInternalSecret

	bridge *providers.BridgeSettings
	kiwi   *kiwi.Settings
	api    *providers.APISettings
	mqtt   *providers.MQTTSettings
}

// Load system configuration.
func Load(options *StartUpOptions) (providers.ISettingsProvider, error) {
	settings, err := load(options)
	if err != nil {
		return nil, err
	}

	settings.cron = utils.NewCron()
	return settings, nil
}

// Loads and validates all known providers.
func load(options *StartUpOptions) (*settingsProvider, error) {
	settings := &settingsProvider{
		logger: logger.NewLoggerProvider(&logger.ConstructLogger{Level: options.LogLevel}),
	}

	location := options.ConfigDir
	if "" == location {
		location = utils.GetDefaultConfigsDir()
	}

	settings.validator = utils.NewValidator(settings.logger)
	settings.secrets = secret.NewSecretProvider(&secret.ConstructSecret{
		Location: location,
		Logger:   settings.logger,
	})

	templateProvider := newTemplateProvider(&constructTemplate{
		Logger:  settings.logger,
		Secrets: settings.secrets,
	})

	configProvider := config.NewConfigProvider(&config.ConstructConfig{
		Location:     location,
		PluginLogger: settings.logger,
	})

	dataChan := configProvider.Load()
	if nil == dataChan {
		return nil, &ErrNoConfig{Location: location}
	}

	allProviders := make([]*rawProvider, 0)
	for fileData := range dataChan {
		allProviders = append(allProviders, settings.loadFile(fileData, templateProvider)...)
	}

	allProviders = settings.loadLoggerProvider(allProviders, options.LogLevel)

	for _, v := range allProviders {
		if err := settings.parseProvider(v); err != nil {
			return nil, errors.Wrapf(err, "failed to load %s/%s", v.System, v.Provider)
		}
	}

	if err := settings.validate(); err != nil {
		return nil, err
	}

	return settings, nil
}

// Validates whether all necessary settings are present.
// Optional sections receive defaults.
func (s *settingsProvider) validate() error {
	if nil == s.kiwi {
		return &ErrMissingProvider{System: systems.SysDevice.String(), Provider: configDeviceKiwi}
	}

	if nil == s.bridge {
		s.logger.Warn("Bridge settings are not defined, using the default ones",
			common.LogSystemToken, logSystem)
		s.bridge = &providers.BridgeSettings{}
		s.validator.Validate(s.bridge)
	}

	if nil == s.api {
		s.logger.Warn("API settings are not defined, using the default ones",
			common.LogSystemToken, logSystem)
		s.api = &providers.APISettings{}
		s.validator.Validate(s.api)
	}

	return nil
}

// Processes single yaml file.
func (s *settingsProvider) loadFile(fileData []byte, templateProvider ITemplateProvider) []*rawProvider {
	provs := make([]*rawProvider, 0)

	fileData, err := templateProvider.Process(fileData)
	if err != nil {
		s.logger.Error("Failed to process config file template", err, common.LogSystemToken, logSystem)
		return provs
	}

	decoder := yaml.NewDecoder(bytes.NewReader(fileData))
	for {
		var value map[string]interface{}
		err := decoder.Decode(&value)
		if err == io.EOF {
			break
		}

		if err != nil {
			s.logger.Error("Failed to parse config file", err, common.LogSystemToken, logSystem)
			break
		}

		componentType := ""
		componentProvider := ""

		if cs, ok := value["system"].(string); ok {
			componentType = strings.ToLower(cs)
		}

		if ct, ok := value["provider"].(string); ok {
			componentProvider = strings.ToLower(ct)
		}

		if componentType == "" || componentProvider == "" {
			s.logger.Warn("Failed to parse a record in the config file: system or provider is not defined",
				common.LogSystemToken, logSystem)
			continue
		}

		byteData, err := yaml.Marshal(value)
		if err != nil {
			s.logger.Error("Failed to parse config file", err, common.LogSystemToken, componentType,
				common.LogProviderToken, componentProvider)
			continue
		}

		provs = append(provs, &rawProvider{
			Provider: componentProvider,
			System:   componentType,
			Config:   byteData,
		})
	}

	return provs
}

// Loads logger configuration.
// Explicitly passed level wins over configured one.
func (s *settingsProvider) loadLoggerProvider(provs []*rawProvider, level string) []*rawProvider {
	providersLeft := make([]*rawProvider, 0, len(provs))
	for _, v := range provs {
		if v.System != systems.SysLogger.String() {
			providersLeft = append(providersLeft, v)
			continue
		}

		s.logger = logger.NewLoggerProvider(&logger.ConstructLogger{
			RawConfig: v.Config,
			Level:     level,
		})

		s.validator.SetLogger(s.PluginLogger(systems.SysConfig, "validator"))
		s.secrets.UpdateLogger(s.PluginLogger(systems.SysSecret, "fs"))
	}

	return providersLeft
}

// Processes single provider config.
func (s *settingsProvider) parseProvider(provider *rawProvider) error {
	s.logger.Debug("Processing config", common.LogProviderToken, provider.Provider,
		common.LogSystemToken, provider.System)

	sys, err := systems.SystemTypeString(provider.System)
	if err != nil {
		s.logger.Warn("Unknown provider's system", common.LogProviderToken, provider.Provider,
			common.LogSystemToken, provider.System)
		return nil
	}

	var target interface{}
	var assign func()
	switch {
	case sys == systems.SysGoHome && provider.Provider == configGoHomeBridge && nil == s.bridge:
		set := &providers.BridgeSettings{}
		target, assign = set, func() { s.bridge = set }
	case sys == systems.SysDevice && provider.Provider == configDeviceKiwi && nil == s.kiwi:
		set := &kiwi.Settings{}
		target, assign = set, func() { s.kiwi = set }
	case sys == systems.SysAPI && provider.Provider == configAPIHTTP && nil == s.api:
		set := &providers.APISettings{}
		target, assign = set, func() { s.api = set }
	case sys == systems.SysBus && provider.Provider == configBusMQTT && nil == s.mqtt:
		set := &providers.MQTTSettings{}
		target, assign = set, func() { s.mqtt = set }
	default:
		s.logger.Warn("Ignoring unknown or duplicated provider", common.LogProviderToken, provider.Provider,
			common.LogSystemToken, provider.System)
		return nil
	}

	if err := yaml.Unmarshal(provider.Config, target); err != nil {
		return errors.Wrap(err, "yaml un-marshal failed")
	}

	if !s.validator.Validate(target) {
		return &utils.ErrInvalidConfig{Name: provider.System + "/" + provider.Provider}
	}

	assign()
	return nil
}
