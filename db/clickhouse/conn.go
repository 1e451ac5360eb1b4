package clickhouse

import (
	"context"
	"net"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

//go:generate mockgen -source=$GOFILE -destination=mock_db/conn.go -package=mock_db
type NMEADBConn interface {
	GetConn() driver.Conn
	Migrate(ctx context.Context) error
	SaveFixes(ctx context.Context, fixes []*FixColumns) error
	SaveRawSentence(ctx context.Context, session, sentence string, checksumValid bool) error
}

var _ NMEADBConn = &NMEADataBase{}

type NMEADataBase struct {
	ClickhouseConn driver.Conn
}

func (ndb *NMEADataBase) GetConn() driver.Conn {
	return ndb.ClickhouseConn
}

func ConnectNMEADB(databaseURL string) (*NMEADataBase, error) {
	opts, err := clickhouse.ParseDSN(databaseURL)
	if err != nil {
		return nil, err
	}
	opts.DialContext = func(ctx context.Context, addr string) (net.Conn, error) {
		var d net.Dialer
		return d.DialContext(ctx, "tcp", addr)
	}
	opts.Compression = &clickhouse.Compression{
		Method: clickhouse.CompressionLZ4,
	}
	opts.DialTimeout = time.Second * 30
	opts.MaxOpenConns = 5
	opts.MaxIdleConns = 5
	opts.ConnMaxLifetime = time.Duration(10) * time.Minute
	opts.ConnOpenStrategy = clickhouse.ConnOpenInOrder

	conn, err := clickhouse.Open(opts)
	if err != nil {
		return nil, err
	}
	if e := conn.Ping(context.Background()); e != nil {
		return nil, e
	}
	return &NMEADataBase{
		ClickhouseConn: conn,
	}, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS nmea_fixes (
		session String,
		talker LowCardinality(String),
		kind LowCardinality(String),
		timestamp DateTime64(3, 'UTC'),
		latitude Float64,
		longitude Float64,
		altitude Float64,
		quality LowCardinality(String),
		satellites UInt8,
		hdop Float64,
		speed_knots Float64,
		track Float64,
		valid Bool
	) ENGINE = MergeTree ORDER BY (session, timestamp)`,
	`CREATE TABLE IF NOT EXISTS nmea_raw_sentences (
		timestamp DateTime64(3, 'UTC'),
		session String,
		sentence String,
		checksum_valid Bool
	) ENGINE = MergeTree ORDER BY (session, timestamp)`,
}

// Migrate creates the tables used by the store when they are missing.
func (ndb *NMEADataBase) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if err := ndb.ClickhouseConn.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
