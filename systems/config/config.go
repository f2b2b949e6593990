// Package config contains configuration files loader.
package config

import (
	"path/filepath"

	"github.com/go-home-io/kiwi/plugins/common"
	"github.com/go-home-io/kiwi/systems"
	"github.com/go-home-io/kiwi/systems/logger"
)

// IConfigProvider provides capabilities for loading system configuration.
type IConfigProvider interface {
	Load() chan []byte
}

// ConstructConfig contains data required for a new config provider.
type ConstructConfig struct {
	Location     string
	PluginLogger common.ILoggerProvider
}

// NewConfigProvider constructs a new file system config provider.
func NewConfigProvider(ctor *ConstructConfig) IConfigProvider {
	configLogger := logger.NewPluginLogger(&logger.ConstructPluginLogger{
		SystemLogger: ctor.PluginLogger,
		Provider:     "fs",
		System:       systems.SysConfig.String(),
	})

	return newFsConfig(ctor.Location, configLogger)
}

// IsValidConfigFileName checks whether config file name is valid.
// Files starting with underscore are reserved.
func IsValidConfigFileName(name string) bool {
	name = filepath.Base(name)

	if "" == name || name[0] == '_' {
		return false
	}

	name = filepath.Ext(name)
	return name == ".yaml" || name == ".yml"
}
