package bridge

import "fmt"

// ErrUnknownAccessory defines switch request for accessory which is not exposed.
type ErrUnknownAccessory struct {
	ID string
}

// Error formats output.
func (e *ErrUnknownAccessory) Error() string {
	return fmt.Sprintf("accessory %s is unknown", e.ID)
}
