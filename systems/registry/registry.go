// Package registry contains in-memory registry of exposed accessories.
package registry

import (
	"sort"
	"strings"
	"sync"

	"github.com/go-home-io/kiwi/plugins/common"
	"github.com/go-home-io/kiwi/plugins/device"
	"github.com/go-home-io/kiwi/plugins/device/enums"
	"github.com/go-home-io/kiwi/providers"
)

// ConstructRegistry has data required for a new registry.
type ConstructRegistry struct {
	Logger common.ILoggerProvider
	FanOut providers.IFanOutProvider
}

// Accessories registry.
type registry struct {
	sync.RWMutex
	logger common.ILoggerProvider
	fanOut providers.IFanOutProvider

	accessories map[string]*device.Accessory
}

// NewRegistry constructs a new accessories registry.
// Every change is published to the fan out, if one was provided.
func NewRegistry(ctor *ConstructRegistry) providers.IAccessoryRegistry {
	return &registry{
		logger:      ctor.Logger,
		fanOut:      ctor.FanOut,
		accessories: make(map[string]*device.Accessory),
	}
}

// Register adds new accessories or refreshes data of known ones.
// Switch state of known accessories is preserved.
func (r *registry) Register(accessories []*device.Accessory) {
	updates := make([]*device.MsgAccessoryUpdate, 0, len(accessories))

	r.Lock()
	for _, v := range accessories {
		existing, ok := r.accessories[v.ID]
		if ok {
			on := existing.On
			if isSame(existing, v) {
				continue
			}

			*existing = *v
			existing.On = on
			r.logger.Debug("Refreshed accessory", common.LogDeviceIDToken, v.ID,
				common.LogDeviceNameToken, v.DisplayName)
			updates = append(updates, &device.MsgAccessoryUpdate{Event: enums.EvtAdded, Accessory: existing.Clone()})
			continue
		}

		a := v.Clone()
		r.accessories[a.ID] = a
		r.logger.Debug("Registered accessory", common.LogDeviceIDToken, a.ID,
			common.LogDeviceNameToken, a.DisplayName)
		updates = append(updates, &device.MsgAccessoryUpdate{Event: enums.EvtAdded, Accessory: a.Clone()})
	}
	r.Unlock()

	r.publish(updates)
}

// Unregister removes accessories.
func (r *registry) Unregister(accessories []*device.Accessory) {
	updates := make([]*device.MsgAccessoryUpdate, 0, len(accessories))

	r.Lock()
	for _, v := range accessories {
		existing, ok := r.accessories[v.ID]
		if !ok {
			continue
		}

		delete(r.accessories, v.ID)
		r.logger.Debug("Unregistered accessory", common.LogDeviceIDToken, v.ID,
			common.LogDeviceNameToken, existing.DisplayName)
		updates = append(updates, &device.MsgAccessoryUpdate{Event: enums.EvtRemoved, Accessory: existing})
	}
	r.Unlock()

	r.publish(updates)
}

// SetSwitchState updates switch state of a known accessory.
// Unknown accessories are ignored.
func (r *registry) SetSwitchState(id string, on bool) {
	r.Lock()
	existing, ok := r.accessories[id]
	if !ok {
		r.Unlock()
		r.logger.Debug("Ignoring state of unknown accessory", common.LogDeviceIDToken, id)
		return
	}

	existing.On = on
	update := &device.MsgAccessoryUpdate{Event: enums.EvtState, Accessory: existing.Clone()}
	r.Unlock()

	r.publish([]*device.MsgAccessoryUpdate{update})
}

// GetAccessories returns copies of all known accessories ordered by name.
func (r *registry) GetAccessories() []*device.Accessory {
	r.RLock()
	result := make([]*device.Accessory, 0, len(r.accessories))
	for _, v := range r.accessories {
		result = append(result, v.Clone())
	}
	r.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		ni := strings.ToLower(result[i].DisplayName)
		nj := strings.ToLower(result[j].DisplayName)
		if ni == nj {
			return result[i].ID < result[j].ID
		}

		return ni < nj
	})

	return result
}

// GetAccessory returns a copy of known accessory or nil.
func (r *registry) GetAccessory(id string) *device.Accessory {
	r.RLock()
	defer r.RUnlock()

	a, ok := r.accessories[id]
	if !ok {
		return nil
	}

	return a.Clone()
}

// Sends updates to the fan out.
func (r *registry) publish(updates []*device.MsgAccessoryUpdate) {
	if nil == r.fanOut {
		return
	}

	for _, v := range updates {
		r.fanOut.ChannelInAccessoryUpdates() <- v
	}
}

// Compares accessory data ignoring switch state.
func isSame(a *device.Accessory, b *device.Accessory) bool {
	return a.DisplayName == b.DisplayName && a.SensorID == b.SensorID &&
		a.Manufacturer == b.Manufacturer && a.Model == b.Model && a.SerialNumber == b.SerialNumber
}
