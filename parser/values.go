package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// Position is one latitude or longitude as sent on the wire: whole degrees,
// decimal minutes and a hemisphere. The zero value is the invalid position.
type Position struct {
	Degrees int     `json:"degrees"`
	Minutes float64 `json:"minutes"`
	Compass Compass `json:"compass"`
}

// parsePosition never fails. Blank or malformed fields yield the zero Position
// because receivers routinely leave them empty while acquiring a fix.
func parsePosition(magnitude, direction string) Position {
	if !hasContent(magnitude) || !hasContent(direction) {
		return Position{}
	}
	compass, err := matchPrefix(strings.TrimSpace(direction), compassNames)
	if err != nil || compass == CompassInvalid {
		return Position{}
	}
	magnitude = strings.TrimSpace(magnitude)
	dot := strings.IndexByte(magnitude, '.')
	if dot < 3 {
		return Position{}
	}
	degPart := magnitude[:dot-2]
	if !isDigits(degPart) {
		return Position{}
	}
	degrees, err := strconv.Atoi(degPart)
	if err != nil {
		return Position{}
	}
	minutes, err := strconv.ParseFloat(magnitude[dot-2:], 64)
	if err != nil || minutes < 0 {
		return Position{}
	}
	return Position{Degrees: degrees, Minutes: minutes, Compass: compass}
}

func (p Position) Valid() bool { return p.Compass != CompassInvalid }

// Decimal returns signed decimal degrees, negative south and west.
func (p Position) Decimal() float64 {
	if !p.Valid() {
		return 0
	}
	v := float64(p.Degrees) + p.Minutes/60
	if p.Compass == CompassSouth || p.Compass == CompassWest {
		v = -v
	}
	return v
}

func (p Position) String() string {
	if !p.Valid() {
		return "Invalid"
	}
	return fmt.Sprintf("%d° %s' %c", p.Degrees, strconv.FormatFloat(p.Minutes, 'f', -1, 64), p.Compass.String()[0])
}

// Altitude is a height with its unit. A value that failed to parse carries
// AltitudeInvalid whatever unit was sent.
type Altitude struct {
	Value float64      `json:"value"`
	Unit  AltitudeUnit `json:"unit"`
}

func parseAltitude(value, unit string) Altitude {
	u, _ := matchPrefix(strings.TrimSpace(unit), altitudeUnitNames[1:], AltitudeInvalid)
	if !hasContent(unit) {
		u = AltitudeInvalid
	}
	v, err := fieldToNumber[float64](value)
	if err != nil {
		return Altitude{Unit: AltitudeInvalid}
	}
	return Altitude{Value: v, Unit: u}
}

// optionalAltitude is nil unless both the value and unit fields were sent.
func optionalAltitude(value, unit string) *Altitude {
	if !hasContent(value) || !hasContent(unit) {
		return nil
	}
	a := parseAltitude(value, unit)
	return &a
}

func (a Altitude) Valid() bool { return a.Unit != AltitudeInvalid }

// Meters converts the altitude to meters. Invalid altitudes report 0.
func (a Altitude) Meters() float64 {
	switch a.Unit {
	case AltitudeMeter:
		return a.Value
	case AltitudeFeet:
		return a.Value * 0.3048
	default:
		return 0
	}
}

func (a Altitude) String() string {
	if !a.Valid() {
		return "Invalid"
	}
	return fmt.Sprintf("%s %s", strconv.FormatFloat(a.Value, 'f', -1, 64), a.Unit)
}

// SatelliteInfo is one satellite record of a GSV page.
type SatelliteInfo struct {
	PRN       int `json:"prn"`
	Elevation int `json:"elevation"`
	Azimuth   int `json:"azimuth"`
	SNR       int `json:"snr"`
}

// parseSatelliteInfo requires the PRN. Elevation, azimuth and SNR are 0 when
// blank and SNR is clamped to [0,99].
func parseSatelliteInfo(prn, elevation, azimuth, snr string) (SatelliteInfo, error) {
	var (
		info SatelliteInfo
		err  error
	)
	if info.PRN, err = fieldToNumber[int](prn); err != nil {
		return SatelliteInfo{}, fmt.Errorf("%w: %v", ErrInvalidSatellite, err)
	}
	if hasContent(elevation) {
		if info.Elevation, err = fieldToNumber[int](elevation); err != nil {
			return SatelliteInfo{}, fmt.Errorf("elevation: %w", err)
		}
	}
	if hasContent(azimuth) {
		if info.Azimuth, err = fieldToNumber[int](azimuth); err != nil {
			return SatelliteInfo{}, fmt.Errorf("azimuth: %w", err)
		}
	}
	if hasContent(snr) {
		if info.SNR, err = fieldToNumber[int](snr); err != nil {
			return SatelliteInfo{}, fmt.Errorf("snr: %w", err)
		}
		info.SNR = min(max(info.SNR, 0), 99)
	}
	return info, nil
}

func (s SatelliteInfo) String() string {
	return fmt.Sprintf("PRN=%d; EL=%d; AZ=%d; SNR=%d", s.PRN, s.Elevation, s.Azimuth, s.SNR)
}
