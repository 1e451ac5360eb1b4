package parser

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const rmcFields = 12

// knotsPerMeterPerSecond converts knots to m/s by division.
const knotsPerMeterPerSecond = 1.943844

// RecommendedMinimum is an RMC sentence: time, date, position and velocity.
type RecommendedMinimum struct {
	Sentence
	Timestamp         time.Time
	Status            FixStatus
	Latitude          Position
	Longitude         Position
	SpeedKnots        float64
	TrackAngle        float64
	MagneticVariation *Position
	// DataSource is FixSourceUnset before NMEA 2.3.
	DataSource        FixSource
}

func decodeRMC(s Sentence) (*RecommendedMinimum, error) {
	if err := s.requireFields(rmcFields); err != nil {
		return nil, err
	}
	m := &RecommendedMinimum{Sentence: s}
	var err error
	if m.Timestamp, err = parseDateTime(s.field(9), s.field(1)); err != nil {
		if errors.Is(err, ErrInvalidTime) {
			return nil, s.fieldError(1, err)
		}
		return nil, s.fieldError(9, err)
	}
	m.Status = parseStatus(s.field(2))
	m.Latitude = parsePosition(s.field(3), s.field(4))
	m.Longitude = parsePosition(s.field(5), s.field(6))
	if hasContent(s.field(7)) {
		if m.SpeedKnots, err = fieldToNumber[float64](s.field(7)); err != nil {
			return nil, s.fieldError(7, err)
		}
	}
	if hasContent(s.field(8)) {
		if m.TrackAngle, err = fieldToNumber[float64](s.field(8)); err != nil {
			return nil, s.fieldError(8, err)
		}
	}
	if hasContent(s.field(10)) && hasContent(s.field(11)) {
		v := parsePosition(s.field(10), s.field(11))
		m.MagneticVariation = &v
	}
	m.DataSource = parseSource(s, 12)
	return m, nil
}

// SpeedMetersPerSecond is SpeedKnots in m/s.
func (m *RecommendedMinimum) SpeedMetersPerSecond() float64 {
	return m.SpeedKnots / knotsPerMeterPerSecond
}

func (m *RecommendedMinimum) Kind() Kind { return KindRMC }

func (m *RecommendedMinimum) Valid() bool { return m.Status == StatusActive }

func (m *RecommendedMinimum) String() string {
	if !m.Valid() {
		return "Invalid"
	}
	return fmt.Sprintf("Time: %s; Lat: %s; Long: %s; Speed: %.2f kn; Track: %.2f",
		m.Timestamp.Format(time.RFC3339Nano), m.Latitude, m.Longitude, m.SpeedKnots, m.TrackAngle)
}

// parseStatus treats anything but a recognised letter as void.
func parseStatus(field string) FixStatus {
	if !hasContent(field) {
		return StatusVoid
	}
	status, _ := matchPrefix(strings.TrimSpace(field), fixStatusNames, StatusVoid)
	return status
}

// parseSource reads the NMEA 2.3 mode indicator at index i, if present.
func parseSource(s Sentence, i int) FixSource {
	if !hasContent(s.field(i)) {
		return FixSourceUnset
	}
	source, _ := matchPrefix(strings.TrimSpace(s.field(i)), fixSourceNames, FixSourceNotValid)
	return source
}
