package parser

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

const (
	gsaFields        = 18
	gsaMaxSatellites = 12
)

// DilutionOfPrecision is a GSA sentence: fix geometry and the satellites used
// for it.
type DilutionOfPrecision struct {
	Sentence
	Selection  FixSelection
	FixType    FixType
	satellites []int
	PDOP       *float64
	HDOP       *float64
	VDOP       *float64
}

func decodeGSA(s Sentence) (*DilutionOfPrecision, error) {
	if err := s.requireFields(gsaFields); err != nil {
		return nil, err
	}
	m := &DilutionOfPrecision{Sentence: s}
	if !hasContent(s.field(1)) {
		return nil, s.fieldError(1, ErrNoEnumMatch)
	}
	selection, err := matchPrefix(strings.TrimSpace(s.field(1)), fixSelectionNames)
	if err != nil {
		return nil, s.fieldError(1, err)
	}
	m.Selection = selection
	m.FixType = FixTypeNone
	if hasContent(s.field(2)) {
		fixType, err := fieldToNumber[int](s.field(2))
		if err != nil {
			return nil, s.fieldError(2, err)
		}
		if fixType < int(FixTypeNone) || fixType > int(FixType3D) {
			return nil, s.fieldError(2, fmt.Errorf("%w: %d", ErrInvalidFixType, fixType))
		}
		m.FixType = FixType(fixType)
	}
	for i := 3; i < 3+gsaMaxSatellites; i++ {
		if !hasContent(s.field(i)) {
			continue
		}
		id, err := fieldToNumber[int](s.field(i))
		if err != nil {
			return nil, s.fieldError(i, fmt.Errorf("%w: %v", ErrInvalidSatellite, err))
		}
		m.satellites = append(m.satellites, id)
	}
	slices.Sort(m.satellites)
	m.PDOP = optionalNumber[float64](s.field(15))
	m.HDOP = optionalNumber[float64](s.field(16))
	m.VDOP = optionalNumber[float64](s.field(17))
	return m, nil
}

// Satellites returns the ids of the satellites used in the fix, ascending.
func (m *DilutionOfPrecision) Satellites() []int {
	return slices.Clone(m.satellites)
}

func (m *DilutionOfPrecision) Kind() Kind { return KindGSA }

func (m *DilutionOfPrecision) Valid() bool { return m.PDOP != nil }

func (m *DilutionOfPrecision) String() string {
	if !m.Valid() {
		return "Invalid"
	}
	return fmt.Sprintf("Dilution: %s; Hor: %s; Vert: %s", formatOptional(m.PDOP), formatOptional(m.HDOP), formatOptional(m.VDOP))
}

func (m *DilutionOfPrecision) MarshalJSON() ([]byte, error) {
	type alias DilutionOfPrecision
	return json.Marshal(struct {
		*alias
		Satellites []int `json:"Satellites"`
	}{alias: (*alias)(m), Satellites: m.Satellites()})
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
