// Package enums contains enumerations used by accessories.
package enums

import (
	"fmt"
	"strings"
)

// Command describes enum with known switch commands.
type Command int

const (
	// CmdOn describes turning on command.
	CmdOn Command = iota
	// CmdOff describes turning off command.
	CmdOff
	// CmdToggle describes toggling on-off status command.
	CmdToggle
)

var commandNames = map[Command]string{
	CmdOn:     "on",
	CmdOff:    "off",
	CmdToggle: "toggle",
}

// String returns command name.
func (i Command) String() string {
	name, ok := commandNames[i]
	if !ok {
		return fmt.Sprintf("Command(%d)", i)
	}

	return name
}

// CommandString parses command name.
func CommandString(s string) (Command, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, v := range commandNames {
		if v == s {
			return k, nil
		}
	}

	return 0, fmt.Errorf("%s does not belong to Command values", s)
}

// CommandValues returns all known commands.
func CommandValues() []Command {
	return []Command{CmdOn, CmdOff, CmdToggle}
}

// TargetState returns switch state after applying the command to the current one.
func (i Command) TargetState(current bool) bool {
	switch i {
	case CmdOn:
		return true
	case CmdToggle:
		return !current
	default:
		return false
	}
}
