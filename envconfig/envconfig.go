package envconfig

import (
	"github.com/caarlos0/env/v6"
)

type ServiceEnvConfig struct {
	ClickHouseDB string   `env:"NMEADB_CLICKHOUSE"`
	NatsConn     string   `env:"NATS"`
	MQTTBroker   string   `env:"MQTT_BROKER"`
	MQTTClientID string   `env:"MQTT_CLIENT_ID" envDefault:"nmea-device"`
	Format       string   `env:"PAYLOAD_FORMAT" envDefault:"json"`
	Host         string   `env:"HOST" envDefault:"0.0.0.0"`
	Port         uint     `env:"PORT" envDefault:"5000"`
	LiveAddr     string   `env:"LIVE_ADDR"`
	RawLines     bool     `env:"RAW_LINES" envDefault:"false"`
	SerialDevice string   `env:"SERIAL_DEVICE"`
	BaudRate     int      `env:"BAUD_RATE" envDefault:"4800"`
	Talkers      []string `env:"TALKERS" envSeparator:","`
}

func ReadServiceEnv() (*ServiceEnvConfig, error) {
	cfg := &ServiceEnvConfig{}
	err := env.Parse(cfg)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
