package clickhouse

import (
	"context"
	"time"

	"github.com/openfms/nmea-device/parser"
)

type FixColumns struct {
	Session    string    `ch:"session"`
	Talker     string    `ch:"talker"`
	Kind       string    `ch:"kind"`
	Timestamp  time.Time `ch:"timestamp"`
	Latitude   float64   `ch:"latitude"`
	Longitude  float64   `ch:"longitude"`
	Altitude   float64   `ch:"altitude"`
	Quality    string    `ch:"quality"`
	Satellites uint8     `ch:"satellites"`
	HDOP       float64   `ch:"hdop"`
	SpeedKnots float64   `ch:"speed_knots"`
	Track      float64   `ch:"track"`
	Valid      bool      `ch:"valid"`
}

const insertFixQuery = `
	INSERT INTO
	    nmea_fixes(session, talker, kind, timestamp, latitude, longitude, altitude, quality, satellites, hdop, speed_knots, track, valid)
`

// FixFromMessage converts GGA, RMC and GLL messages into a row. GGA and GLL
// only carry a time of day, which is placed on the UTC date of received.
func FixFromMessage(session string, msg parser.Message, received time.Time) (*FixColumns, bool) {
	day := received.UTC().Truncate(24 * time.Hour)
	row := &FixColumns{
		Session: session,
		Talker:  msg.Talker().String(),
		Kind:    msg.Kind().String(),
		Valid:   msg.Valid(),
	}
	switch m := msg.(type) {
	case *parser.PositionFix:
		row.Timestamp = day.Add(m.Time)
		row.Latitude = m.Latitude.Decimal()
		row.Longitude = m.Longitude.Decimal()
		if m.Altitude != nil {
			row.Altitude = m.Altitude.Meters()
		}
		row.Quality = m.FixQuality.String()
		row.Satellites = uint8(min(max(m.Satellites, 0), 255))
		if m.HDOP != nil {
			row.HDOP = *m.HDOP
		}
	case *parser.RecommendedMinimum:
		row.Timestamp = m.Timestamp
		row.Latitude = m.Latitude.Decimal()
		row.Longitude = m.Longitude.Decimal()
		row.Quality = m.Status.String()
		row.SpeedKnots = m.SpeedKnots
		row.Track = m.TrackAngle
	case *parser.GeographicPosition:
		row.Timestamp = day.Add(m.Time)
		if m.Latitude != nil {
			row.Latitude = m.Latitude.Decimal()
		}
		if m.Longitude != nil {
			row.Longitude = m.Longitude.Decimal()
		}
		row.Quality = m.Status.String()
	default:
		return nil, false
	}
	return row, true
}

// SaveFixes saves position fixes to clickhouse
func (ndb *NMEADataBase) SaveFixes(ctx context.Context, fixes []*FixColumns) error {
	batch, err := ndb.ClickhouseConn.PrepareBatch(ctx, insertFixQuery)
	if err != nil {
		return err
	}
	for _, fix := range fixes {
		if err := batch.AppendStruct(fix); err != nil {
			return err
		}
	}
	return batch.Send()
}
