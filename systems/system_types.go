// Package systems contains internal systems of the bridge.
package systems

import (
	"fmt"
	"strings"
)

// SystemType is an enum describing known system types.
type SystemType int

const (
	// SysGoHome describes bridge itself.
	SysGoHome SystemType = iota
	// SysLogger describes logger system.
	SysLogger
	// SysBus describes MQTT bus system.
	SysBus
	// SysDevice describes device system.
	SysDevice
	// SysSecret describes secret store system.
	SysSecret
	// SysConfig describes config provider system.
	SysConfig
	// SysSecurity describes security provider system.
	SysSecurity
	// SysAPI describes HTTP API system.
	SysAPI
)

var systemNames = map[SystemType]string{
	SysGoHome:   "go-home",
	SysLogger:   "logger",
	SysBus:      "bus",
	SysDevice:   "device",
	SysSecret:   "secret",
	SysConfig:   "config",
	SysSecurity: "security",
	SysAPI:      "api",
}

// String returns system name.
func (i SystemType) String() string {
	name, ok := systemNames[i]
	if !ok {
		return fmt.Sprintf("SystemType(%d)", i)
	}

	return name
}

// SystemTypeString parses system name.
func SystemTypeString(s string) (SystemType, error) {
	s = strings.ToLower(s)
	for k, v := range systemNames {
		if v == s {
			return k, nil
		}
	}

	return 0, fmt.Errorf("%s does not belong to SystemType values", s)
}
