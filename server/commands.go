package server

import (
	"github.com/go-home-io/kiwi/bridge"
	"github.com/go-home-io/kiwi/plugins/common"
	"github.com/go-home-io/kiwi/plugins/device/enums"
	"github.com/pkg/errors"
)

// Invokes device command.
// Toggle is resolved against the state currently kept by registry.
func (s *KiwiServer) commandInvokeDeviceCommand(user string, deviceID string, opName string) error {
	acc := s.registry.GetAccessory(deviceID)
	if nil == acc {
		s.Logger.Warn("Failed to find device", common.LogSystemToken, logSystem,
			common.LogDeviceIDToken, deviceID)
		return &ErrUnknownDevice{ID: deviceID}
	}

	command, err := enums.CommandString(opName)
	if err != nil {
		s.Logger.Warn("Received unknown command", common.LogSystemToken, logSystem,
			common.LogDeviceIDToken, deviceID, common.LogDeviceCommandToken, opName)
		return &ErrUnknownCommand{Name: opName}
	}

	s.Logger.Info("Invoking device command", common.LogSystemToken, logSystem,
		common.LogDeviceNameToken, acc.DisplayName, common.LogDeviceCommandToken, command.String(),
		common.LogUserNameToken, user)

	err = s.controller.SetSwitch(deviceID, command.TargetState(acc.On))
	if err == nil {
		return nil
	}

	if _, ok := errors.Cause(err).(*bridge.ErrUnknownAccessory); ok {
		return &ErrUnknownDevice{ID: deviceID}
	}

	return &ErrCommandFailed{ID: deviceID, Err: err}
}
