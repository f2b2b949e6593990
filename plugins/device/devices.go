// Package device contains accessory definitions shared by all systems.
package device

import "github.com/go-home-io/kiwi/plugins/device/enums"

// Accessory describes a Kiwi sensor exposed as a switch.
type Accessory struct {
	ID           string `json:"id"`
	DisplayName  string `json:"name"`
	SensorID     int64  `json:"sensor_id"`
	Manufacturer string `json:"manufacturer"`
	Model        string `json:"model"`
	SerialNumber string `json:"serial_number"`
	On           bool   `json:"on"`
}

// Clone returns a copy of the accessory.
func (a *Accessory) Clone() *Accessory {
	c := *a
	return &c
}

// MsgAccessoryUpdate contains data about registry change.
type MsgAccessoryUpdate struct {
	Event     enums.AccessoryEvent
	Accessory *Accessory
}
