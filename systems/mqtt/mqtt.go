// Package mqtt exposes accessories to Home Assistant through MQTT discovery.
package mqtt

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/go-home-io/kiwi/plugins/common"
	"github.com/go-home-io/kiwi/plugins/device"
	"github.com/go-home-io/kiwi/plugins/device/enums"
	"github.com/go-home-io/kiwi/providers"
	"github.com/go-home-io/kiwi/utils"
	"github.com/pkg/errors"
)

const (
	payloadOn      = "ON"
	payloadOff     = "OFF"
	payloadOnline  = "online"
	payloadOffline = "offline"

	qos            = 1
	connectTimeout = 10 * time.Second
	quiesce        = 1000
)

// ConstructPublisher has data required for a new MQTT publisher.
type ConstructPublisher struct {
	Settings   *providers.MQTTSettings
	Controller device.ISwitchController
	Registry   providers.IAccessoryRegistry
	FanOut     providers.IFanOutProvider
	Logger     common.ILoggerProvider
}

// Publisher keeps Home Assistant entities in sync with the registry.
type Publisher struct {
	settings   *providers.MQTTSettings
	controller device.ISwitchController
	registry   providers.IAccessoryRegistry
	fanOut     providers.IFanOutProvider
	logger     common.ILoggerProvider

	newClient func(*pahomqtt.ClientOptions) pahomqtt.Client
	client    pahomqtt.Client
	subID     int64
	wg        sync.WaitGroup

	cmdMutex  sync.Mutex
	accepting bool
}

// NewPublisher constructs a new MQTT publisher.
func NewPublisher(ctor *ConstructPublisher) *Publisher {
	return &Publisher{
		settings:   ctor.Settings,
		controller: ctor.Controller,
		registry:   ctor.Registry,
		fanOut:     ctor.FanOut,
		logger:     ctor.Logger,
		newClient:  pahomqtt.NewClient,
	}
}

// Start connects to the broker and starts forwarding registry updates.
func (p *Publisher) Start() error {
	opts := pahomqtt.NewClientOptions().
		AddBroker(p.settings.Broker).
		SetClientID(p.settings.ClientID).
		SetUsername(p.settings.Username).
		SetPassword(p.settings.Password).
		SetCleanSession(true).
		SetAutoReconnect(true).
		SetConnectTimeout(connectTimeout).
		SetWill(p.availabilityTopic(), payloadOffline, qos, true).
		SetOnConnectHandler(func(_ pahomqtt.Client) {
			p.logger.Info("Connected to MQTT broker", common.LogURLToken, p.settings.Broker)
			p.onConnect()
		}).
		SetConnectionLostHandler(func(_ pahomqtt.Client, err error) {
			p.logger.Warn("MQTT connection lost", common.LogErrorToken, err.Error())
		})

	p.setAccepting(true)
	p.client = p.newClient(opts)
	token := p.client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		p.setAccepting(false)
		return errors.New("mqtt connect timeout")
	}

	if err := token.Error(); err != nil {
		p.setAccepting(false)
		return errors.Wrap(err, "mqtt connect failed")
	}

	id, ch := p.fanOut.SubscribeAccessoryUpdates()
	p.subID = id

	p.wg.Add(1)
	go p.eventLoop(ch)
	return nil
}

// Stop publishes offline status and disconnects from the broker.
// New commands are rejected, the ones already being processed are awaited.
func (p *Publisher) Stop() {
	if nil == p.client {
		return
	}

	p.setAccepting(false)

	if p.client.IsConnected() {
		p.publish(p.availabilityTopic(), payloadOffline)
		p.client.Disconnect(quiesce)
	}

	p.fanOut.UnSubscribeAccessoryUpdates(p.subID)
	p.wg.Wait()
	p.client = nil
	p.logger.Info("MQTT publisher stopped")
}

// Invoked on every (re)connect.
func (p *Publisher) onConnect() {
	p.publish(p.availabilityTopic(), payloadOnline)
	for _, v := range p.registry.GetAccessories() {
		p.publishDiscovery(v)
		p.publishState(v)
	}

	token := p.client.Subscribe(p.topic("+", "set"), qos, p.handleCommand)
	token.Wait()
	if err := token.Error(); err != nil {
		p.logger.Error("Failed to subscribe to commands", err, common.LogTopicToken, p.topic("+", "set"))
	}
}

// Forwards registry updates until fan out subscription is closed.
func (p *Publisher) eventLoop(ch chan *device.MsgAccessoryUpdate) {
	defer p.wg.Done()

	for msg := range ch {
		if nil == msg || nil == msg.Accessory {
			continue
		}

		switch msg.Event {
		case enums.EvtAdded:
			p.publishDiscovery(msg.Accessory)
			p.publishState(msg.Accessory)
		case enums.EvtRemoved:
			p.publish(p.discoveryTopic(msg.Accessory), "")
			p.publish(p.stateTopic(msg.Accessory), "")
		case enums.EvtState:
			p.publishState(msg.Accessory)
		}
	}
}

// Handles switch command from Home Assistant.
func (p *Publisher) handleCommand(_ pahomqtt.Client, msg pahomqtt.Message) {
	parts := strings.Split(msg.Topic(), "/")
	if len(parts) < 2 {
		return
	}

	sensorID, err := strconv.ParseInt(parts[len(parts)-2], 10, 64)
	if err != nil {
		p.logger.Warn("Unknown command topic", common.LogTopicToken, msg.Topic())
		return
	}

	cmd := strings.ToUpper(strings.TrimSpace(string(msg.Payload())))
	if cmd != payloadOn && cmd != payloadOff {
		p.logger.Warn("Unknown command payload", common.LogTopicToken, msg.Topic(),
			common.LogDeviceCommandToken, cmd)
		return
	}

	a := p.findAccessory(sensorID)
	if nil == a {
		p.logger.Warn("Command for unknown sensor", common.LogTopicToken, msg.Topic())
		return
	}

	p.cmdMutex.Lock()
	defer p.cmdMutex.Unlock()
	if !p.accepting {
		p.logger.Warn("Publisher is stopped, ignoring command", common.LogTopicToken, msg.Topic())
		return
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		if err := p.controller.SetSwitch(a.ID, cmd == payloadOn); err != nil {
			p.logger.Error("Failed to process command", err, common.LogDeviceIDToken, a.ID,
				common.LogDeviceCommandToken, cmd)
		}
	}()
}

// Enables or disables commands processing.
func (p *Publisher) setAccepting(accepting bool) {
	p.cmdMutex.Lock()
	defer p.cmdMutex.Unlock()
	p.accepting = accepting
}

// Returns accessory for the sensor.
func (p *Publisher) findAccessory(sensorID int64) *device.Accessory {
	for _, v := range p.registry.GetAccessories() {
		if v.SensorID == sensorID {
			return v
		}
	}

	return nil
}

// Publishes Home Assistant switch config.
func (p *Publisher) publishDiscovery(a *device.Accessory) {
	objectID := p.objectID(a)
	payload := map[string]interface{}{
		"name":               a.DisplayName,
		"unique_id":          objectID,
		"object_id":          objectID,
		"state_topic":        p.stateTopic(a),
		"command_topic":      p.topic(a.SerialNumber, "set"),
		"availability_topic": p.availabilityTopic(),
		"payload_on":         payloadOn,
		"payload_off":        payloadOff,
		"icon":               "mdi:door",
		"device": map[string]interface{}{
			"identifiers":   []string{a.ID},
			"name":          a.DisplayName,
			"manufacturer":  a.Manufacturer,
			"model":         a.Model,
			"serial_number": a.SerialNumber,
		},
	}

	data, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error("Failed to marshal discovery config", err, common.LogDeviceIDToken, a.ID)
		return
	}

	p.publish(p.discoveryTopic(a), string(data))
}

// Publishes switch state.
func (p *Publisher) publishState(a *device.Accessory) {
	state := payloadOff
	if a.On {
		state = payloadOn
	}

	p.publish(p.stateTopic(a), state)
}

// Publishes retained message if connected.
func (p *Publisher) publish(topic string, payload string) {
	if nil == p.client || !p.client.IsConnected() {
		return
	}

	token := p.client.Publish(topic, qos, true, payload)
	token.Wait()
	if err := token.Error(); err != nil {
		p.logger.Error("MQTT publish failed", err, common.LogTopicToken, topic)
	}
}

func (p *Publisher) objectID(a *device.Accessory) string {
	return utils.NormalizeObjectID(fmt.Sprintf("%s_%s", p.settings.TopicPrefix, a.SerialNumber))
}

func (p *Publisher) discoveryTopic(a *device.Accessory) string {
	return fmt.Sprintf("%s/switch/%s/config", p.settings.DiscoveryPrefix, p.objectID(a))
}

func (p *Publisher) stateTopic(a *device.Accessory) string {
	return p.topic(a.SerialNumber, "state")
}

func (p *Publisher) availabilityTopic() string {
	return fmt.Sprintf("%s/status", p.settings.TopicPrefix)
}

func (p *Publisher) topic(sensor string, suffix string) string {
	return fmt.Sprintf("%s/%s/%s", p.settings.TopicPrefix, sensor, suffix)
}
