package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-home-io/kiwi/plugins/common"
	"github.com/go-home-io/kiwi/utils"
)

// Loads yaml files from a local folder.
type fsConfig struct {
	location string
	logger   common.ILoggerProvider
}

// Constructs a new file system loader.
func newFsConfig(location string, logger common.ILoggerProvider) *fsConfig {
	if "" == location {
		location = utils.GetDefaultConfigsDir()
		logger.Info("Using default location", common.LogFileToken, location)
	}

	return &fsConfig{
		location: location,
		logger:   logger,
	}
}

// Load streams content of every valid config file in lexical order.
// Returns nil if folder can't be read.
func (c *fsConfig) Load() chan []byte {
	files, err := c.list()
	if err != nil {
		c.logger.Error("Failed to walk through files", err, common.LogFileToken, c.location)
		return nil
	}

	filesChan := make(chan []byte)
	go func() {
		defer close(filesChan)
		for _, v := range files {
			data, err := os.ReadFile(v)
			if err != nil {
				c.logger.Error("Failed to read config file", err, common.LogFileToken, v)
				continue
			}

			c.logger.Info("Processing config file", common.LogFileToken, v)
			filesChan <- data
		}
	}()

	return filesChan
}

// Returns sorted list of config files.
func (c *fsConfig) list() ([]string, error) {
	files := make([]string, 0)
	err := filepath.WalkDir(c.location, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || !IsValidConfigFileName(path) {
			return nil
		}

		files = append(files, path)
		return nil
	})

	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
