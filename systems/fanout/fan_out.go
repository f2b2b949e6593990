// Package fanout contains implementation of pub-sub fanout channels.
package fanout

import (
	"sync"
	"sync/atomic"

	"github.com/go-home-io/kiwi/plugins/device"
	"github.com/go-home-io/kiwi/providers"
)

// Implements IFanOutProvider.
type provider struct {
	accessory sync.Mutex
	lastID    int64

	inAccessoryUpdates  chan *device.MsgAccessoryUpdate
	outAccessoryUpdates map[int64]chan *device.MsgAccessoryUpdate
}

// NewFanOut constructs new FanOut provider.
func NewFanOut() providers.IFanOutProvider {
	p := &provider{
		inAccessoryUpdates:  make(chan *device.MsgAccessoryUpdate, 10),
		outAccessoryUpdates: make(map[int64]chan *device.MsgAccessoryUpdate),
	}

	go p.internalCycle()
	return p
}

// SubscribeAccessoryUpdates allows to subscribe to the accessory updates.
func (p *provider) SubscribeAccessoryUpdates() (int64, chan *device.MsgAccessoryUpdate) {
	p.accessory.Lock()
	defer p.accessory.Unlock()

	c := make(chan *device.MsgAccessoryUpdate, 10)
	id := atomic.AddInt64(&p.lastID, 1)
	p.outAccessoryUpdates[id] = c
	return id, c
}

// UnSubscribeAccessoryUpdates allows to un-subscribe from the accessory updates.
func (p *provider) UnSubscribeAccessoryUpdates(id int64) {
	p.accessory.Lock()
	defer p.accessory.Unlock()

	c, ok := p.outAccessoryUpdates[id]
	if !ok {
		return
	}

	close(c)
	delete(p.outAccessoryUpdates, id)
}

// ChannelInAccessoryUpdates returns input channel for the accessory updates.
func (p *provider) ChannelInAccessoryUpdates() chan *device.MsgAccessoryUpdate {
	return p.inAccessoryUpdates
}

// Updates are broadcast in the order they were received.
func (p *provider) internalCycle() {
	for u := range p.inAccessoryUpdates {
		p.accessoryUpdates(u)
	}
}

// Broadcasts accessory updates.
func (p *provider) accessoryUpdates(update *device.MsgAccessoryUpdate) {
	p.accessory.Lock()
	defer p.accessory.Unlock()

	for _, v := range p.outAccessoryUpdates {
		v <- update
	}
}
