package bus

import (
	"context"
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/openfms/nmea-device/parser"
)

var ErrPublishTimeout = errors.New("mqtt publish timed out")

const defaultMQTTTimeout = 5 * time.Second

// MQTTPublisher publishes each message on "nmea/<talker>/<type>".
type MQTTPublisher struct {
	client  mqtt.Client
	qos     byte
	format  Format
	timeout time.Duration
}

var _ Publisher = &MQTTPublisher{}

func NewMQTTPublisher(client mqtt.Client, qos byte, format Format) *MQTTPublisher {
	return &MQTTPublisher{client: client, qos: qos, format: format, timeout: defaultMQTTTimeout}
}

// ConnectMQTT connects a client to broker, for example "tcp://localhost:1883".
func ConnectMQTT(broker, clientID string) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true)
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	return client, nil
}

func (mp *MQTTPublisher) Publish(ctx context.Context, session string, msg parser.Message) error {
	payload, err := NewEnvelope(session, msg).Marshal(mp.format)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", msg.Type(), err)
	}
	topic := Subject("/", msg)
	token := mp.client.Publish(topic, mp.qos, false, payload)
	select {
	case <-token.Done():
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(mp.timeout):
		return fmt.Errorf("%s: %w", topic, ErrPublishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}
