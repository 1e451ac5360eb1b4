package envconfig

import (
	"os"
	"testing"

	"gotest.tools/v3/assert"
)

func TestReadServiceEnv(t *testing.T) {
	tests := map[string]struct {
		env  map[string]string
		want ServiceEnvConfig
		err  bool
	}{
		"defaults": {
			want: ServiceEnvConfig{
				MQTTClientID: "nmea-device",
				Format:       "json",
				Host:         "0.0.0.0",
				Port:         5000,
				BaudRate:     4800,
			},
		},
		"overrides": {
			env: map[string]string{
				"NMEADB_CLICKHOUSE": "clickhouse://127.0.0.1:9000/default",
				"NATS":              "nats://127.0.0.1:4222",
				"PORT":              "10110",
				"PAYLOAD_FORMAT":    "proto",
				"RAW_LINES":         "true",
				"TALKERS":           "GP,GL",
			},
			want: ServiceEnvConfig{
				ClickHouseDB: "clickhouse://127.0.0.1:9000/default",
				NatsConn:     "nats://127.0.0.1:4222",
				MQTTClientID: "nmea-device",
				Format:       "proto",
				Host:         "0.0.0.0",
				Port:         10110,
				RawLines:     true,
				BaudRate:     4800,
				Talkers:      []string{"GP", "GL"},
			},
		},
		"bad port": {
			env: map[string]string{"PORT": "not-a-port"},
			err: true,
		},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			for _, key := range []string{"NMEADB_CLICKHOUSE", "NATS", "MQTT_BROKER", "MQTT_CLIENT_ID", "PAYLOAD_FORMAT",
				"HOST", "PORT", "LIVE_ADDR", "RAW_LINES", "SERIAL_DEVICE", "BAUD_RATE", "TALKERS"} {
				t.Setenv(key, "")
				os.Unsetenv(key)
			}
			for k, v := range test.env {
				t.Setenv(k, v)
			}
			cfg, err := ReadServiceEnv()
			if test.err {
				assert.Assert(t, err != nil)
				return
			}
			assert.NilError(t, err)
			assert.DeepEqual(t, *cfg, test.want)
		})
	}
}
