package bus

import (
	"context"
	"errors"

	"github.com/openfms/nmea-device/parser"
)

// Publisher forwards decoded messages to a broker.
type Publisher interface {
	Publish(ctx context.Context, session string, msg parser.Message) error
}

// Fanout publishes to every publisher and joins their errors.
type Fanout []Publisher

var _ Publisher = Fanout{}

func (f Fanout) Publish(ctx context.Context, session string, msg parser.Message) error {
	var errs []error
	for _, p := range f {
		if err := p.Publish(ctx, session, msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
