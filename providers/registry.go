package providers

import "github.com/go-home-io/kiwi/plugins/device"

// IAccessoryRegistry defines the host side registry of exposed accessories.
// Only bridge mutates it, other systems read from it.
type IAccessoryRegistry interface {
	Register(accessories []*device.Accessory)
	Unregister(accessories []*device.Accessory)
	SetSwitchState(id string, on bool)
	GetAccessories() []*device.Accessory
	GetAccessory(id string) *device.Accessory
}
