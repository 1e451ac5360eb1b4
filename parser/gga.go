package parser

import (
	"fmt"
	"time"
)

const ggaFields = 15

// PositionFix is a GGA sentence: time, position and quality of a fix.
type PositionFix struct {
	Sentence
	Time        time.Duration
	Latitude    Position
	Longitude   Position
	FixQuality  FixQuality
	Satellites  int
	HDOP        *float64
	Altitude    *Altitude
	GeoidHeight *Altitude
	DGPSAge     *float64
	DGPSStation *int
}

func decodeGGA(s Sentence) (*PositionFix, error) {
	if err := s.requireFields(ggaFields); err != nil {
		return nil, err
	}
	m := &PositionFix{Sentence: s}
	var err error
	if m.Time, err = parseTimeOfDay(s.field(1)); err != nil {
		return nil, s.fieldError(1, err)
	}
	m.Latitude = parsePosition(s.field(2), s.field(3))
	m.Longitude = parsePosition(s.field(4), s.field(5))
	if hasContent(s.field(6)) {
		q, err := fieldToNumber[int](s.field(6))
		if err != nil {
			return nil, s.fieldError(6, err)
		}
		if q >= int(FixQualityInvalid) && q <= int(FixQualitySimulated) {
			m.FixQuality = FixQuality(q)
		}
	}
	if hasContent(s.field(7)) {
		if m.Satellites, err = fieldToNumber[int](s.field(7)); err != nil {
			return nil, s.fieldError(7, err)
		}
	}
	m.HDOP = optionalNumber[float64](s.field(8))
	m.Altitude = optionalAltitude(s.field(9), s.field(10))
	m.GeoidHeight = optionalAltitude(s.field(11), s.field(12))
	m.DGPSAge = optionalNumber[float64](s.field(13))
	m.DGPSStation = optionalNumber[int](s.field(14))
	return m, nil
}

func (m *PositionFix) Kind() Kind { return KindGGA }

func (m *PositionFix) Valid() bool { return m.FixQuality != FixQualityInvalid }

func (m *PositionFix) String() string {
	if !m.Valid() {
		return "Invalid"
	}
	return fmt.Sprintf("Time: %s; Lat: %s; Long: %s; Quality: %s; Satellites: %d",
		formatTimeOfDay(m.Time), m.Latitude, m.Longitude, m.FixQuality, m.Satellites)
}
