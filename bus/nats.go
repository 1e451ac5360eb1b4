package bus

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/openfms/nmea-device/parser"
)

// NatsPublisher publishes each message on "<prefix>.<talker>.<type>".
type NatsPublisher struct {
	conn   *nats.Conn
	format Format
}

var _ Publisher = &NatsPublisher{}

func NewNatsPublisher(conn *nats.Conn, format Format) *NatsPublisher {
	return &NatsPublisher{conn: conn, format: format}
}

func (np *NatsPublisher) Publish(_ context.Context, session string, msg parser.Message) error {
	payload, err := NewEnvelope(session, msg).Marshal(np.format)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", msg.Type(), err)
	}
	subject := Subject(".", msg)
	if err := np.conn.Publish(subject, payload); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	return nil
}
