package server

import "fmt"

// ErrUnknownDevice defines unknown device error.
type ErrUnknownDevice struct {
	ID string
}

// Error formats output.
func (e *ErrUnknownDevice) Error() string {
	return fmt.Sprintf("device %s is unknown", e.ID)
}

// ErrUnknownCommand defines unknown command error.
type ErrUnknownCommand struct {
	Name string
}

// Error formats output.
func (e *ErrUnknownCommand) Error() string {
	return fmt.Sprintf("command %s is unknown", e.Name)
}

// ErrCommandFailed defines command which was not accepted by Kiwi.
type ErrCommandFailed struct {
	ID  string
	Err error
}

// Error formats output.
func (e *ErrCommandFailed) Error() string {
	if nil == e.Err {
		return fmt.Sprintf("command for device %s failed", e.ID)
	}

	return fmt.Sprintf("command for device %s failed: %s", e.ID, e.Err.Error())
}

// Cause returns underlying error.
func (e *ErrCommandFailed) Cause() error {
	return e.Err
}
