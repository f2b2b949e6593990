package providers

import "github.com/go-home-io/kiwi/plugins/device"

// IFanOutProvider defines interface used for distributing
// accessory updates across all systems.
type IFanOutProvider interface {
	SubscribeAccessoryUpdates() (int64, chan *device.MsgAccessoryUpdate)
	UnSubscribeAccessoryUpdates(int64)
	ChannelInAccessoryUpdates() chan *device.MsgAccessoryUpdate
}
