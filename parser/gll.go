package parser

import (
	"fmt"
	"time"
)

const gllFields = 7

// GeographicPosition is the legacy GLL sentence.
type GeographicPosition struct {
	Sentence
	Latitude   *Position
	Longitude  *Position
	Time       time.Duration
	Status     FixStatus
	DataSource FixSource
}

func decodeGLL(s Sentence) (*GeographicPosition, error) {
	if err := s.requireFields(gllFields); err != nil {
		return nil, err
	}
	m := &GeographicPosition{Sentence: s}
	if hasContent(s.field(1)) && hasContent(s.field(2)) {
		lat := parsePosition(s.field(1), s.field(2))
		m.Latitude = &lat
	}
	if hasContent(s.field(3)) && hasContent(s.field(4)) {
		lon := parsePosition(s.field(3), s.field(4))
		m.Longitude = &lon
	}
	if hasContent(s.field(5)) {
		var err error
		if m.Time, err = parseTimeOfDay(s.field(5)); err != nil {
			return nil, s.fieldError(5, err)
		}
	}
	m.Status = parseStatus(s.field(6))
	m.DataSource = parseSource(s, 7)
	return m, nil
}

func (m *GeographicPosition) Kind() Kind { return KindGLL }

func (m *GeographicPosition) Valid() bool { return m.Status == StatusActive }

func (m *GeographicPosition) String() string {
	if !m.Valid() {
		return "Invalid"
	}
	return fmt.Sprintf("Lat: %s; Long: %s", optionalPosition(m.Latitude), optionalPosition(m.Longitude))
}

func optionalPosition(p *Position) string {
	if p == nil {
		return "Invalid"
	}
	return p.String()
}
