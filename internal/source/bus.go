package source

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/EaterK/usbserial-xbee/internal/monitoring"
)

// Topic suffixes the bus subscribes to, appended to the configured prefix.
const (
	TopicVector      = "vector"
	TopicCalibration = "calibration"
	TopicCommand     = "command"
)

const connectTimeout = 5 * time.Second

// vectorPayload is the JSON shape published on the vector topic.
type vectorPayload struct {
	X     uint16 `json:"x"`
	Y     uint16 `json:"y"`
	Theta uint16 `json:"theta"`
}

// valuePayload is the JSON shape published on the calibration and command
// topics.
type valuePayload struct {
	Value uint16 `json:"value"`
}

// Bus is a live value source fed by an MQTT broker. Message handlers only
// update the latest-value cache under the mutex; the pacing loop reads
// whatever arrived most recently. Before the first message on a topic the
// bus returns zero values.
type Bus struct {
	client paho.Client

	mu     sync.Mutex
	vector vectorPayload
	calib  uint16
	cmd    uint8
}

// ClientOptionsFromURL builds MQTT client options and a topic prefix from a
// broker URL such as tcp://host:1883/robot. The URL path, if present, is the
// topic prefix.
func ClientOptionsFromURL(brokerURL string) (*paho.ClientOptions, string, error) {
	u, err := url.Parse(brokerURL)
	if err != nil {
		return nil, "", fmt.Errorf("parse broker URL: %w", err)
	}
	scheme := u.Scheme
	if scheme == "" || scheme == "mqtt" {
		scheme = "tcp"
	}

	opts := paho.NewClientOptions().
		AddBroker(scheme + "://" + u.Host).
		SetConnectTimeout(connectTimeout).
		SetAutoReconnect(true)

	prefix := strings.Trim(u.Path, "/")
	return opts, prefix, nil
}

// NewBus connects to the broker and subscribes to the three value topics.
func NewBus(brokerURL string) (*Bus, error) {
	opts, prefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}

	b := &Bus{}
	opts.SetOnConnectHandler(func(c paho.Client) {
		for suffix, handler := range map[string]paho.MessageHandler{
			TopicVector:      b.handleVector,
			TopicCalibration: b.handleCalibration,
			TopicCommand:     b.handleCommand,
		} {
			topic := suffix
			if prefix != "" {
				topic = prefix + "/" + suffix
			}
			if token := c.Subscribe(topic, 0, handler); token.Wait() && token.Error() != nil {
				monitoring.Logf("source: subscribe %q failed: %v", topic, token.Error())
			}
		}
	})

	b.client = paho.NewClient(opts)
	if token := b.client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connect to broker %s: %w", brokerURL, token.Error())
	}
	return b, nil
}

// Close disconnects from the broker.
func (b *Bus) Close() error {
	b.client.Disconnect(250)
	return nil
}

func (b *Bus) handleVector(_ paho.Client, m paho.Message) {
	b.setVector(m.Payload())
}

func (b *Bus) handleCalibration(_ paho.Client, m paho.Message) {
	b.setCalibration(m.Payload())
}

func (b *Bus) handleCommand(_ paho.Client, m paho.Message) {
	b.setCommand(m.Payload())
}

// setVector updates the cached vector; a malformed payload keeps the
// previous values.
func (b *Bus) setVector(payload []byte) {
	var v vectorPayload
	if err := json.Unmarshal(payload, &v); err != nil {
		monitoring.Logf("source: bad vector payload: %v", err)
		return
	}
	b.mu.Lock()
	b.vector = v
	b.mu.Unlock()
}

func (b *Bus) setCalibration(payload []byte) {
	var v valuePayload
	if err := json.Unmarshal(payload, &v); err != nil {
		monitoring.Logf("source: bad calibration payload: %v", err)
		return
	}
	b.mu.Lock()
	b.calib = v.Value
	b.mu.Unlock()
}

func (b *Bus) setCommand(payload []byte) {
	var v valuePayload
	if err := json.Unmarshal(payload, &v); err != nil {
		monitoring.Logf("source: bad command payload: %v", err)
		return
	}
	b.mu.Lock()
	b.cmd = uint8(v.Value)
	b.mu.Unlock()
}

// Vector returns the most recent motion vector.
func (b *Bus) Vector() (x, y, theta uint16) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.vector.X, b.vector.Y, b.vector.Theta
}

// Calibration returns the most recent calibration value.
func (b *Bus) Calibration() uint16 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calib
}

// Command returns the most recent command code.
func (b *Bus) Command() uint8 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cmd
}
