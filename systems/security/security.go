// Package security contains HTTP API security provider.
package security

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-home-io/kiwi/plugins/common"
	"github.com/go-home-io/kiwi/providers"
	"github.com/go-home-io/kiwi/systems"
	"github.com/go-home-io/kiwi/systems/logger"
	"github.com/patrickmn/go-cache"
)

// Implements security provider.
type provider struct {
	sync.Mutex

	userStorage *basicAuthProvider
	logger      common.ILoggerProvider
	cache       *cache.Cache
}

// ConstructSecurityProvider has all data required for a new security provider.
type ConstructSecurityProvider struct {
	Logger common.ILoggerProvider
	Users  map[string]string
}

// NewSecurityProvider constructs new security provider.
// Empty users list disables authorization.
func NewSecurityProvider(ctor *ConstructSecurityProvider) providers.ISecurityProvider {
	loggerProvider := logger.NewPluginLogger(&logger.ConstructPluginLogger{
		SystemLogger: ctor.Logger,
		Provider:     "basic",
		System:       systems.SysSecurity.String(),
	})

	if 0 == len(ctor.Users) {
		loggerProvider.Warn("No users configured, API is not protected")
	}

	return &provider{
		userStorage: newBasicAuthProvider(loggerProvider, ctor.Users),
		logger:      loggerProvider,
		cache:       cache.New(5*time.Minute, 10*time.Minute),
	}
}

// IsEnabled returns whether authorization is required.
func (p *provider) IsEnabled() bool {
	return p.userStorage.hasUsers()
}

// Authorize returns authenticated user name.
// Successful checks are cached by raw header value.
func (p *provider) Authorize(headers map[string][]string) (string, error) {
	p.Lock()
	defer p.Unlock()

	key := http.Header(headers).Get(authHeader)
	if usr, ok := p.cache.Get(key); ok && key != "" {
		return usr.(string), nil
	}

	usr, err := p.userStorage.Authorize(headers)
	if err != nil {
		return "", err
	}

	p.cache.Set(key, usr, cache.DefaultExpiration)
	return usr, nil
}
