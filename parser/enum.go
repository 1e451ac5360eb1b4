package parser

import (
	"fmt"
	"strconv"
	"strings"
)

type enumName[T any] struct {
	name  string
	value T
}

// matchPrefix returns the first value, in table order, whose name starts
// with candidate ignoring case. NMEA usually sends only the first letter.
// When nothing matches the optional fallback is returned, otherwise
// ErrNoEnumMatch.
func matchPrefix[T any](candidate string, table []enumName[T], fallback ...T) (T, error) {
	for _, e := range table {
		if len(candidate) <= len(e.name) && strings.EqualFold(e.name[:len(candidate)], candidate) {
			return e.value, nil
		}
	}
	if len(fallback) > 0 {
		return fallback[0], nil
	}
	var zero T
	return zero, fmt.Errorf("%w: %q", ErrNoEnumMatch, candidate)
}

// enumString names v, or renders its number when the table has no entry.
func enumString[T ~uint8](v T, table []enumName[T]) string {
	for _, e := range table {
		if e.value == v {
			return e.name
		}
	}
	return strconv.Itoa(int(v))
}

// Compass is the hemisphere of a latitude or longitude.
type Compass uint8

const (
	CompassInvalid Compass = iota
	CompassNorth
	CompassEast
	CompassSouth
	CompassWest
)

var compassNames = []enumName[Compass]{
	{"Invalid", CompassInvalid},
	{"North", CompassNorth},
	{"East", CompassEast},
	{"South", CompassSouth},
	{"West", CompassWest},
}

func (c Compass) String() string { return enumString(c, compassNames) }

func (c Compass) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// AltitudeUnit is the unit of an altitude or geoid height.
type AltitudeUnit uint8

const (
	AltitudeInvalid AltitudeUnit = iota
	AltitudeMeter
	AltitudeFeet
)

var altitudeUnitNames = []enumName[AltitudeUnit]{
	{"Invalid", AltitudeInvalid},
	{"Meter", AltitudeMeter},
	{"Feet", AltitudeFeet},
}

func (u AltitudeUnit) String() string { return enumString(u, altitudeUnitNames) }

func (u AltitudeUnit) MarshalText() ([]byte, error) { return []byte(u.String()), nil }

// FixQuality is the GGA fix quality indicator. Values match the wire digits.
type FixQuality uint8

const (
	FixQualityInvalid FixQuality = iota
	FixQualityGPS
	FixQualityDGPS
	FixQualityPPS
	FixQualityRTK
	FixQualityFloatRTK
	FixQualityEstimated
	FixQualityManual
	FixQualitySimulated
)

var fixQualityNames = []enumName[FixQuality]{
	{"Invalid", FixQualityInvalid},
	{"GPS", FixQualityGPS},
	{"DGPS", FixQualityDGPS},
	{"PPS", FixQualityPPS},
	{"RealTimeKinematic", FixQualityRTK},
	{"FloatRealTimeKinematic", FixQualityFloatRTK},
	{"Estimated", FixQualityEstimated},
	{"Manual", FixQualityManual},
	{"Simulated", FixQualitySimulated},
}

func (q FixQuality) String() string { return enumString(q, fixQualityNames) }

func (q FixQuality) MarshalText() ([]byte, error) { return []byte(q.String()), nil }

// FixSelection tells whether the receiver picked satellites itself.
type FixSelection uint8

const (
	SelectionAuto FixSelection = iota
	SelectionManual
)

var fixSelectionNames = []enumName[FixSelection]{
	{"Auto", SelectionAuto},
	{"Manual", SelectionManual},
}

func (s FixSelection) String() string { return enumString(s, fixSelectionNames) }

func (s FixSelection) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// FixType is the GSA fix dimension. Values match the wire digits.
type FixType uint8

const (
	FixTypeNone FixType = iota + 1
	FixType2D
	FixType3D
)

var fixTypeNames = []enumName[FixType]{
	{"None", FixTypeNone},
	{"TwoDimensional", FixType2D},
	{"ThreeDimensional", FixType3D},
}

func (t FixType) String() string { return enumString(t, fixTypeNames) }

func (t FixType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// FixSource is the mode indicator added in NMEA 2.3. FixSourceUnset means the
// sentence did not carry the field.
type FixSource uint8

const (
	FixSourceUnset FixSource = iota
	FixSourceAutonomous
	FixSourceDifferential
	FixSourceEstimated
	FixSourceNotValid
	FixSourceSimulator
)

var fixSourceNames = []enumName[FixSource]{
	{"Autonomous", FixSourceAutonomous},
	{"Differential", FixSourceDifferential},
	{"Estimated", FixSourceEstimated},
	{"NotValid", FixSourceNotValid},
	{"Simulator", FixSourceSimulator},
}

func (s FixSource) String() string {
	if s == FixSourceUnset {
		return "Unset"
	}
	return enumString(s, fixSourceNames)
}

func (s FixSource) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// FixStatus is the A/V status letter of RMC and GLL.
type FixStatus uint8

const (
	StatusVoid FixStatus = iota
	StatusActive
)

var fixStatusNames = []enumName[FixStatus]{
	{"Active", StatusActive},
	{"Void", StatusVoid},
}

func (s FixStatus) String() string { return enumString(s, fixStatusNames) }

func (s FixStatus) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Talker is the satellite system a sentence originates from.
type Talker uint8

const (
	TalkerOther Talker = iota
	TalkerBeidou
	TalkerGalileo
	TalkerGPS
	TalkerGLONASS
	TalkerLoran
)

var talkerNames = []enumName[Talker]{
	{"Other", TalkerOther},
	{"Beidou", TalkerBeidou},
	{"Galileo", TalkerGalileo},
	{"GPS", TalkerGPS},
	{"GLONASS", TalkerGLONASS},
	{"Loran", TalkerLoran},
}

func (t Talker) String() string { return enumString(t, talkerNames) }

func (t Talker) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func talkerFromCode(typeCode string) Talker {
	if len(typeCode) < 2 {
		return TalkerOther
	}
	switch strings.ToUpper(typeCode[:2]) {
	case "BD", "GB":
		return TalkerBeidou
	case "GA":
		return TalkerGalileo
	case "GP":
		return TalkerGPS
	case "GL":
		return TalkerGLONASS
	case "LC":
		return TalkerLoran
	default:
		return TalkerOther
	}
}
