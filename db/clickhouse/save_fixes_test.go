package clickhouse

import (
	"context"
	"math"
	"os"
	"testing"
	"time"

	"github.com/openfms/nmea-device/parser"
	"gotest.tools/v3/assert"
)

func NewConnTest(t *testing.T) NMEADBConn {
	dsn := os.Getenv("NMEADB_CLICKHOUSE")
	if dsn == "" {
		t.Skip("NMEADB_CLICKHOUSE is not set")
	}
	nmeaDB, err := ConnectNMEADB(dsn)
	assert.NilError(t, err)
	assert.NilError(t, nmeaDB.Migrate(context.Background()))
	return nmeaDB
}

func mustParse(t *testing.T, line string) parser.Message {
	t.Helper()
	msg, err := parser.Parse(line)
	assert.NilError(t, err)
	return msg
}

func TestFixFromMessage(t *testing.T) {
	received := time.Date(2023, 6, 1, 18, 4, 0, 0, time.UTC)
	tests := map[string]struct {
		line      string
		ok        bool
		timestamp time.Time
		lat, long float64
		altitude  float64
		quality   string
		sats      uint8
		valid     bool
	}{
		"gga": {
			line:      "$GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,*47",
			ok:        true,
			timestamp: time.Date(2023, 6, 1, 12, 35, 19, 0, time.UTC),
			lat:       48.1173,
			long:      11.516666,
			altitude:  545.4,
			quality:   "GPS",
			sats:      8,
			valid:     true,
		},
		"gga without fix": {
			line:      "$GPGGA,123519,,,,,,,,,,,,,*5B",
			ok:        true,
			timestamp: time.Date(2023, 6, 1, 12, 35, 19, 0, time.UTC),
			quality:   "Invalid",
		},
		"gll": {
			line:      "$GPGLL,4916.45,N,12311.12,W,225444,A*31",
			ok:        true,
			timestamp: time.Date(2023, 6, 1, 22, 54, 44, 0, time.UTC),
			lat:       49.274166,
			long:      -123.185333,
			quality:   "Active",
			valid:     true,
		},
		"gsa is not a fix": {
			line: "$GPGSA,A,3,04,05,,09,12,,,24,,,,,2.5,1.3,2.1*39",
		},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			row, ok := FixFromMessage("session-1", mustParse(t, test.line), received)
			assert.Equal(t, ok, test.ok)
			if !test.ok {
				return
			}
			assert.Equal(t, row.Session, "session-1")
			assert.Assert(t, row.Timestamp.Equal(test.timestamp), "timestamp %s", row.Timestamp)
			assert.Assert(t, math.Abs(row.Latitude-test.lat) < 1e-5, "latitude %f", row.Latitude)
			assert.Assert(t, math.Abs(row.Longitude-test.long) < 1e-5, "longitude %f", row.Longitude)
			assert.Equal(t, row.Altitude, test.altitude)
			assert.Equal(t, row.Quality, test.quality)
			assert.Equal(t, row.Satellites, test.sats)
			assert.Equal(t, row.Valid, test.valid)
		})
	}
}

func TestNMEADataBase_SaveFixes(t *testing.T) {
	dbConn := NewConnTest(t)
	tests := map[string]struct {
		errWant error
		lines   []string
		ctx     func() context.Context
	}{
		"success": {
			lines: []string{
				"$GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,*47",
				"$GPGLL,4916.45,N,12311.12,W,225444,A*31",
			},
		},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if test.ctx != nil {
				ctx = test.ctx()
			}
			var fixes []*FixColumns
			for _, line := range test.lines {
				row, ok := FixFromMessage("integration", mustParse(t, line), time.Now())
				assert.Assert(t, ok)
				fixes = append(fixes, row)
			}
			err := dbConn.SaveFixes(ctx, fixes)
			if test.errWant != nil {
				assert.ErrorIs(t, err, test.errWant)
			} else {
				assert.NilError(t, err)
			}
		})
	}
}

func TestNMEADataBase_SaveRawSentence(t *testing.T) {
	dbConn := NewConnTest(t)
	err := dbConn.SaveRawSentence(context.Background(), "integration", "$GPXYZ,1,2,3*50", true)
	assert.NilError(t, err)
}
