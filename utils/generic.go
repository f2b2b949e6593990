// Package utils contains various helpers.
package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// accessoryNamespace is a root for all generated accessory IDs.
var accessoryNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://go-home.io/kiwi"))

// ConfigDir allows to re-write default config directory.
var ConfigDir = ""

// AccessoryID returns a stable accessory identifier for the given sensor.
// The same platform and sensor always produce the same ID.
func AccessoryID(platformName string, sensorID int64) string {
	return uuid.NewSHA1(accessoryNamespace, []byte(fmt.Sprintf("%s:%d", platformName, sensorID))).String()
}

// NormalizeObjectID lower-cases identifier and replaces everything
// except latin letters, digits and underscores.
func NormalizeObjectID(raw string) string {
	return strings.Map(func(r rune) rune {
		r = unicode.ToLower(r)
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			return r
		}

		return '_'
	}, raw)
}

// GetDefaultConfigsDir returns default config directory which is cwd/configs.
func GetDefaultConfigsDir() string {
	if ConfigDir != "" {
		return ConfigDir
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "configs"
	}

	return filepath.Join(cwd, "configs")
}
