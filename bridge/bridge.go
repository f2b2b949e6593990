// Package bridge exposes Kiwi sensors as momentary switches.
//
// Bridge periodically refreshes the list of sensors and keeps the accessories
// registry in sync with it. Turning a switch on opens the sensor, the switch
// is always turned back off after configured delay.
package bridge

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-home-io/kiwi/kiwi"
	"github.com/go-home-io/kiwi/plugins/common"
	"github.com/go-home-io/kiwi/plugins/device"
	"github.com/go-home-io/kiwi/providers"
)

// ConstructBridge has data required for a new bridge.
type ConstructBridge struct {
	Client   kiwi.IClient
	Registry providers.IAccessoryRegistry
	Cron     providers.ICronProvider
	Metrics  providers.IMetricsProvider
	Logger   common.ILoggerProvider
	Settings *providers.BridgeSettings
	Include  []string
	Exclude  []string
}

// Bridge implements device.ISwitchController.
type Bridge struct {
	stateMutex sync.Mutex
	tickMutex  sync.Mutex
	knownMutex sync.RWMutex
	wg         sync.WaitGroup

	client   kiwi.IClient
	registry providers.IAccessoryRegistry
	cron     providers.ICronProvider
	metrics  providers.IMetricsProvider
	logger   common.ILoggerProvider
	filter   *filter

	platformName string
	pollInterval time.Duration
	resetDelay   time.Duration

	started bool
	cronID  int
	ctx     context.Context
	cancel  context.CancelFunc
	resets  map[string]*time.Timer
	known   map[string]*device.Accessory
}

// NewBridge constructs a new bridge.
func NewBridge(ctor *ConstructBridge) (*Bridge, error) {
	f, err := newFilter(ctor.Include, ctor.Exclude)
	if err != nil {
		return nil, err
	}

	settings := ctor.Settings
	if nil == settings {
		settings = &providers.BridgeSettings{}
		if err := defaults.Set(settings); err != nil {
			return nil, err
		}
	}

	b := &Bridge{
		client:       ctor.Client,
		registry:     ctor.Registry,
		cron:         ctor.Cron,
		metrics:      ctor.Metrics,
		logger:       ctor.Logger,
		filter:       f,
		platformName: settings.PlatformName,
		pollInterval: time.Duration(settings.PollInterval) * time.Second,
		resetDelay:   time.Duration(settings.ResetDelay) * time.Millisecond,
		resets:       make(map[string]*time.Timer),
		known:        make(map[string]*device.Accessory),
	}

	if "" == b.platformName {
		b.platformName = "Kiwi"
	}

	if b.pollInterval <= 0 {
		b.pollInterval = 600 * time.Second
	}

	if b.resetDelay < 0 {
		b.resetDelay = time.Second
	}

	return b, nil
}

// Start performs the first refresh and schedules the next ones.
// Subsequent calls are ignored.
func (b *Bridge) Start() error {
	b.stateMutex.Lock()
	if b.started {
		b.stateMutex.Unlock()
		return nil
	}

	b.ctx, b.cancel = context.WithCancel(context.Background())
	id, err := b.cron.AddFunc(fmt.Sprintf("@every %ds", int(b.pollInterval.Seconds())), b.tick)
	if err != nil {
		b.cancel()
		b.stateMutex.Unlock()
		return err
	}

	b.cronID = id
	b.started = true
	b.stateMutex.Unlock()

	b.logger.Info("Bridge started", "interval", b.pollInterval.String())
	b.tick()
	return nil
}

// Stop cancels scheduled refreshes and in-flight requests.
// Pending switch resets are applied immediately.
func (b *Bridge) Stop() {
	b.stateMutex.Lock()
	if !b.started {
		b.stateMutex.Unlock()
		return
	}

	b.started = false
	b.cron.RemoveFunc(b.cronID)
	b.cancel()

	for id, t := range b.resets {
		if t.Stop() {
			b.registry.SetSwitchState(id, false)
		}
		delete(b.resets, id)
	}
	b.stateMutex.Unlock()

	b.wg.Wait()
	b.logger.Info("Bridge stopped")
}

// SetSwitch handles switch change requested by the user.
// Turning switch on opens the sensor, once the attempt completes the switch is reset
// to off after configured delay regardless of the result.
func (b *Bridge) SetSwitch(id string, on bool) error {
	b.knownMutex.RLock()
	a, ok := b.known[id]
	b.knownMutex.RUnlock()
	if !ok {
		return &ErrUnknownAccessory{ID: id}
	}

	if !on {
		b.registry.SetSwitchState(id, false)
		return nil
	}

	ctx, done := b.begin()
	defer done()

	b.registry.SetSwitchState(id, true)
	defer b.scheduleReset(id)

	_, err := b.client.OpenSensor(ctx, a.SensorID)
	b.metrics.ObserveOpen(err)
	if err != nil {
		b.logger.Error("Failed to open sensor", err, common.LogDeviceIDToken, id,
			common.LogDeviceNameToken, a.DisplayName)
		return err
	}

	b.logger.Info("Opened sensor", common.LogDeviceIDToken, id, common.LogDeviceNameToken, a.DisplayName)
	return nil
}

// Refreshes list of sensors.
// Overlapping refreshes are skipped.
func (b *Bridge) tick() {
	if !b.tickMutex.TryLock() {
		b.logger.Debug("Refresh is already in progress, skipping")
		return
	}
	defer b.tickMutex.Unlock()

	b.stateMutex.Lock()
	started := b.started
	b.stateMutex.Unlock()
	if !started {
		return
	}

	ctx, done := b.begin()
	defer done()

	list, err := b.client.GetSensorList(ctx)
	b.metrics.ObserveRefresh(err)
	if err != nil {
		b.logger.Error("Failed to refresh sensors", err)
		return
	}

	b.sync(list.Sensors)
}

// Reconciles known accessories with received sensors.
func (b *Bridge) sync(sensors []*kiwi.Sensor) {
	current := make(map[string]*device.Accessory, len(sensors))
	ordered := make([]*device.Accessory, 0, len(sensors))
	for _, v := range sensors {
		if nil == v {
			continue
		}

		a := newAccessory(b.platformName, v)
		if _, ok := current[a.ID]; ok {
			continue
		}

		if !b.filter.match(a.DisplayName) {
			b.logger.Debug("Sensor is filtered out", common.LogDeviceNameToken, a.DisplayName)
			continue
		}

		current[a.ID] = a
		ordered = append(ordered, a)
	}

	b.knownMutex.Lock()
	removed := make([]*device.Accessory, 0)
	for id, v := range b.known {
		if _, ok := current[id]; !ok {
			removed = append(removed, v)
		}
	}

	for _, v := range ordered {
		if _, ok := b.known[v.ID]; !ok {
			b.logger.Info(fmt.Sprintf("Add accessory: %s", v.DisplayName),
				common.LogDeviceIDToken, v.ID, common.LogSensorIDToken, v.SerialNumber)
		}
	}

	b.known = current
	b.knownMutex.Unlock()

	if len(removed) > 0 {
		for _, v := range removed {
			b.logger.Info(fmt.Sprintf("Remove accessory: %s", v.DisplayName),
				common.LogDeviceIDToken, v.ID, common.LogSensorIDToken, v.SerialNumber)
		}

		b.registry.Unregister(removed)
	}

	b.registry.Register(ordered)
	b.metrics.SetAccessoriesCount(len(current))
}

// Turns switch off after configured delay.
// Stopped bridge turns it off immediately.
func (b *Bridge) scheduleReset(id string) {
	b.stateMutex.Lock()
	if t, ok := b.resets[id]; ok {
		t.Stop()
		delete(b.resets, id)
	}

	if !b.started {
		b.stateMutex.Unlock()
		b.registry.SetSwitchState(id, false)
		return
	}

	var t *time.Timer
	t = time.AfterFunc(b.resetDelay, func() {
		b.stateMutex.Lock()
		if b.resets[id] != t {
			b.stateMutex.Unlock()
			return
		}

		delete(b.resets, id)
		b.stateMutex.Unlock()
		b.registry.SetSwitchState(id, false)
	})
	b.resets[id] = t
	b.stateMutex.Unlock()
}

// Returns context for a remote call and registers the call as in-flight.
// Calls made outside of started bridge are not cancellable.
func (b *Bridge) begin() (context.Context, func()) {
	b.stateMutex.Lock()
	defer b.stateMutex.Unlock()

	if !b.started {
		return context.Background(), func() {}
	}

	b.wg.Add(1)
	return b.ctx, b.wg.Done
}
