package providers

import "github.com/go-home-io/kiwi/plugins/common"

// IInternalSecret defines internal secret provider wrapper.
type IInternalSecret interface {
	common.ISecretProvider
	UpdateLogger(logger common.ILoggerProvider)
}
