package bus

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/openfms/nmea-device/parser"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/testing/protocmp"
	"google.golang.org/protobuf/types/known/structpb"
	"gotest.tools/v3/assert"
)

const (
	ggaLine = "$GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,*47"
	gsaLine = "$GPGSA,A,3,04,05,,09,12,,,24,,,,,2.5,1.3,2.1*39"
)

func mustParse(t *testing.T, line string) parser.Message {
	t.Helper()
	msg, err := parser.Parse(line)
	assert.NilError(t, err)
	return msg
}

func TestSubject(t *testing.T) {
	tests := map[string]struct {
		line     string
		sep      string
		expected string
	}{
		"nats gga": {
			line:     ggaLine,
			sep:      ".",
			expected: "nmea.gps.gga",
		},
		"mqtt glonass gsv": {
			line:     "$GLGSV,1,1,01,65,40,083,46",
			sep:      "/",
			expected: "nmea/glonass/gsv",
		},
		"unknown type": {
			line:     "$GPXYZ,1,2,3*50",
			sep:      ".",
			expected: "nmea.gps.gpxyz",
		},
		"wildcards stripped": {
			line:     "$P>*.,1",
			sep:      ".",
			expected: "nmea.other.p",
		},
		"empty type": {
			line:     "$,1",
			sep:      ".",
			expected: "nmea.other.unknown",
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, Subject(tc.sep, mustParse(t, tc.line)), tc.expected)
		})
	}
}

func TestEnvelopeJSON(t *testing.T) {
	payload, err := NewEnvelope("session-1", mustParse(t, gsaLine)).Marshal(FormatJSON)
	assert.NilError(t, err)

	var got map[string]any
	assert.NilError(t, json.Unmarshal(payload, &got))
	assert.Equal(t, got["session"], "session-1")
	assert.Equal(t, got["type"], "GPGSA")
	assert.Equal(t, got["kind"], "GSA")
	assert.Equal(t, got["talker"], "GPS")
	assert.Equal(t, got["checksum_valid"], true)
	assert.Equal(t, got["valid"], true)
	assert.Equal(t, got["sentence"], gsaLine)
	data := got["data"].(map[string]any)
	assert.DeepEqual(t, data["Satellites"], []any{4.0, 5.0, 9.0, 12.0, 24.0})
	assert.Equal(t, data["FixType"], "ThreeDimensional")
	assert.Equal(t, data["PDOP"], 2.5)
}

func TestEnvelopeProto(t *testing.T) {
	env := NewEnvelope("", mustParse(t, ggaLine))
	payload, err := env.Marshal(FormatProto)
	assert.NilError(t, err)

	got := &structpb.Struct{}
	assert.NilError(t, proto.Unmarshal(payload, got))
	want, err := env.Struct()
	assert.NilError(t, err)
	assert.DeepEqual(t, got, want, protocmp.Transform())

	assert.Equal(t, got.Fields["kind"].GetStringValue(), "GGA")
	data := got.Fields["data"].GetStructValue()
	assert.Equal(t, data.Fields["Satellites"].GetNumberValue(), 8.0)
	lat := data.Fields["Latitude"].GetStructValue()
	assert.Equal(t, lat.Fields["compass"].GetStringValue(), "North")
	_, hasSession := got.Fields["session"]
	assert.Assert(t, !hasSession)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("PROTO")
	assert.NilError(t, err)
	assert.Equal(t, f, FormatProto)

	f, err = ParseFormat("")
	assert.NilError(t, err)
	assert.Equal(t, f, FormatJSON)

	_, err = ParseFormat("xml")
	assert.Assert(t, errors.Is(err, ErrUnknownFormat))

	_, err = NewEnvelope("", mustParse(t, ggaLine)).Marshal("xml")
	assert.Assert(t, errors.Is(err, ErrUnknownFormat))
}
