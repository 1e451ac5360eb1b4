package bus

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/openfms/nmea-device/parser"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

var ErrUnknownFormat = errors.New("unknown payload format")

// Format selects how messages are serialised on the wire.
type Format string

const (
	FormatJSON  Format = "json"
	FormatProto Format = "proto"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatProto:
		return f, nil
	case "":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Envelope is the published form of a decoded sentence.
type Envelope struct {
	Session         string         `json:"session,omitempty"`
	Type            string         `json:"type"`
	Kind            parser.Kind    `json:"kind"`
	Talker          parser.Talker  `json:"talker"`
	ChecksumPresent bool           `json:"checksum_present"`
	ChecksumValid   bool           `json:"checksum_valid"`
	Valid           bool           `json:"valid"`
	Text            string         `json:"text"`
	Sentence        string         `json:"sentence"`
	Data            parser.Message `json:"data"`
}

func NewEnvelope(session string, msg parser.Message) *Envelope {
	return &Envelope{
		Session:         session,
		Type:            msg.Type(),
		Kind:            msg.Kind(),
		Talker:          msg.Talker(),
		ChecksumPresent: msg.ChecksumPresent(),
		ChecksumValid:   msg.ChecksumValid(),
		Valid:           msg.Valid(),
		Text:            msg.String(),
		Sentence:        parser.Encode(msg),
		Data:            msg,
	}
}

// Struct converts the envelope to a protobuf Struct, going through its JSON
// form so both encodings carry the same keys.
func (e *Envelope) Struct() (*structpb.Struct, error) {
	raw, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	return structpb.NewStruct(fields)
}

// Marshal serialises the envelope in the given format.
func (e *Envelope) Marshal(format Format) ([]byte, error) {
	switch format {
	case FormatJSON, "":
		return json.Marshal(e)
	case FormatProto:
		s, err := e.Struct()
		if err != nil {
			return nil, err
		}
		return proto.Marshal(s)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Subject builds a routing key "nmea<sep>talker<sep>type", for example
// "nmea.gps.gga". Unknown sentences use their sanitised type code.
func Subject(sep string, msg parser.Message) string {
	kind := strings.ToLower(msg.Kind().String())
	if msg.Kind() == parser.KindUnknown {
		kind = sanitize(msg.Type())
	}
	return strings.Join([]string{"nmea", strings.ToLower(msg.Talker().String()), kind}, sep)
}

func sanitize(code string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(code) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "unknown"
	}
	return b.String()
}
