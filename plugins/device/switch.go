package device

// ISwitchController defines accessory switch handler.
// Turning switch on opens the lock.
type ISwitchController interface {
	SetSwitch(id string, on bool) error
}
