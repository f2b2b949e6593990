// Package secret contains secrets store.
package secret

import (
	"github.com/go-home-io/kiwi/plugins/common"
	"github.com/go-home-io/kiwi/providers"
	"github.com/go-home-io/kiwi/systems"
	"github.com/go-home-io/kiwi/systems/logger"
	"github.com/go-home-io/kiwi/utils"
)

const (
	// Secrets file name inside of configs folder.
	secretsFileName = "_secrets.yaml"
	// Log token.
	logSecretToken = "secret"
)

// ConstructSecret has data required for a new secrets provider.
type ConstructSecret struct {
	Location string
	Logger   common.ILoggerProvider
}

// NewSecretProvider constructs a new secrets store provider.
func NewSecretProvider(ctor *ConstructSecret) providers.IInternalSecret {
	secretLogger := logger.NewPluginLogger(&logger.ConstructPluginLogger{
		SystemLogger: ctor.Logger,
		Provider:     "fs",
		System:       systems.SysSecret.String(),
	})

	location := ctor.Location
	if "" == location {
		location = utils.GetDefaultConfigsDir()
	}

	return &fsSecret{
		fileName: location + "/" + secretsFileName,
		logger:   secretLogger,
	}
}
