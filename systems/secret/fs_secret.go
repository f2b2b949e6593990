package secret

import (
	"io/ioutil"
	"os"
	"sync"

	"github.com/go-home-io/kiwi/plugins/common"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// File system secrets store.
// Secrets are kept in a flat yaml map.
type fsSecret struct {
	sync.Mutex
	fileName string
	logger   common.ILoggerProvider
}

// Get returns secret value or throws an error if it wasn't found.
func (s *fsSecret) Get(name string) (string, error) {
	s.Lock()
	defer s.Unlock()

	s.logger.Debug("Requesting secret", logSecretToken, name)
	data, err := s.read()
	if err != nil {
		s.logger.Error("Failed to read secrets", err, common.LogFileToken, s.fileName)
		return "", err
	}

	value, ok := data[name]
	if !ok {
		err = &ErrSecretNotFound{Name: name}
		s.logger.Error("Can't find requested secret", err, logSecretToken, name)
		return "", err
	}

	return value, nil
}

// Set saves a new secret or updates existing one.
// Folder must exist.
func (s *fsSecret) Set(name string, value string) error {
	s.Lock()
	defer s.Unlock()

	s.logger.Debug("Setting a new secret", logSecretToken, name)
	data, err := s.read()
	if err != nil && !os.IsNotExist(errors.Cause(err)) {
		s.logger.Error("Failed to read secrets", err, common.LogFileToken, s.fileName)
		return err
	}

	if nil == data {
		data = make(map[string]string)
	}

	data[name] = value
	out, err := yaml.Marshal(data)
	if err != nil {
		return errors.Wrap(err, "yaml marshal failed")
	}

	err = ioutil.WriteFile(s.fileName, out, 0600)
	if err != nil {
		s.logger.Error("Failed to add a new secret", err, logSecretToken, name)
		return errors.Wrap(err, "write failed")
	}

	return nil
}

// UpdateLogger updates a secret's provider logger.
// Since this component loads before main logger, we need to update it.
func (s *fsSecret) UpdateLogger(provider common.ILoggerProvider) {
	s.Lock()
	defer s.Unlock()

	s.logger = provider
}

// Reads secrets file.
func (s *fsSecret) read() (map[string]string, error) {
	raw, err := ioutil.ReadFile(s.fileName)
	if err != nil {
		return nil, errors.Wrap(err, "read failed")
	}

	data := make(map[string]string)
	err = yaml.Unmarshal(raw, &data)
	if err != nil {
		return nil, errors.Wrap(err, "yaml unmarshal failed")
	}

	return data, nil
}
