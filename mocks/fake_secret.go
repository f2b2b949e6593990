//+build !release

package mocks

import (
	"fmt"
	"sync"

	"github.com/go-home-io/kiwi/plugins/common"
)

// In-memory secrets store.
type fakeSecret struct {
	sync.Mutex
	data     map[string]string
	readOnly bool
}

// Get returns stored secret.
func (f *fakeSecret) Get(name string) (string, error) {
	f.Lock()
	defer f.Unlock()

	v, ok := f.data[name]
	if !ok {
		return "", fmt.Errorf("secret %s not found", name)
	}

	return v, nil
}

// Set stores secret unless store is read-only.
func (f *fakeSecret) Set(name string, value string) error {
	if f.readOnly {
		return fmt.Errorf("secret %s can't be saved, store is read-only", name)
	}

	f.Lock()
	defer f.Unlock()
	f.data[name] = value
	return nil
}

// UpdateLogger does nothing.
func (f *fakeSecret) UpdateLogger(common.ILoggerProvider) {
}

// FakeNewSecretStore creates a fake secret store.
func FakeNewSecretStore(data map[string]string, readOnly bool) *fakeSecret {
	copied := make(map[string]string, len(data))
	for k, v := range data {
		copied[k] = v
	}

	return &fakeSecret{
		data:     copied,
		readOnly: readOnly,
	}
}
