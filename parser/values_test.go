package parser

import (
	"errors"
	"math"
	"testing"

	"gotest.tools/v3/assert"
)

func TestParsePosition(t *testing.T) {
	tests := map[string]struct {
		magnitude string
		direction string
		expected  Position
		decimal   float64
		text      string
	}{
		"latitude": {
			magnitude: "4807.038",
			direction: "N",
			expected:  Position{Degrees: 48, Minutes: 7.038, Compass: CompassNorth},
			decimal:   48.1173,
			text:      "48° 7.038' N",
		},
		"longitude three degree digits": {
			magnitude: "01131.000",
			direction: "E",
			expected:  Position{Degrees: 11, Minutes: 31, Compass: CompassEast},
			decimal:   11.516666666666667,
			text:      "11° 31' E",
		},
		"zero degrees west": {
			magnitude: "00007.5",
			direction: "W",
			expected:  Position{Degrees: 0, Minutes: 7.5, Compass: CompassWest},
			decimal:   -0.125,
			text:      "0° 7.5' W",
		},
		"south": {
			magnitude: "3352.128",
			direction: "s",
			expected:  Position{Degrees: 33, Minutes: 52.128, Compass: CompassSouth},
			decimal:   -33.8688,
			text:      "33° 52.128' S",
		},
		"empty magnitude": {
			direction: "N",
			text:      "Invalid",
		},
		"empty direction": {
			magnitude: "4807.038",
			text:      "Invalid",
		},
		"no decimal point": {
			magnitude: "4807038",
			direction: "N",
			text:      "Invalid",
		},
		"no degree digits": {
			magnitude: "07.5",
			direction: "N",
			text:      "Invalid",
		},
		"garbage minutes": {
			magnitude: "48a7.0",
			direction: "N",
			text:      "Invalid",
		},
		"negative": {
			magnitude: "-4807.0",
			direction: "N",
			text:      "Invalid",
		},
		"unknown direction": {
			magnitude: "4807.038",
			direction: "X",
			text:      "Invalid",
		},
		"invalid direction": {
			magnitude: "4807.038",
			direction: "I",
			text:      "Invalid",
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			p := parsePosition(tc.magnitude, tc.direction)
			assert.Equal(t, p, tc.expected)
			assert.Equal(t, p.Valid(), tc.expected.Compass != CompassInvalid)
			assert.Assert(t, math.Abs(p.Decimal()-tc.decimal) < 1e-9, "decimal %v", p.Decimal())
			assert.Equal(t, p.String(), tc.text)
		})
	}
}

func TestParseAltitude(t *testing.T) {
	tests := map[string]struct {
		value    string
		unit     string
		expected Altitude
		meters   float64
		text     string
	}{
		"meters": {
			value:    "545.4",
			unit:     "M",
			expected: Altitude{Value: 545.4, Unit: AltitudeMeter},
			meters:   545.4,
			text:     "545.4 Meter",
		},
		"feet": {
			value:    "100",
			unit:     "f",
			expected: Altitude{Value: 100, Unit: AltitudeFeet},
			meters:   30.48,
			text:     "100 Feet",
		},
		"bad value forces invalid unit": {
			value:    "abc",
			unit:     "M",
			expected: Altitude{Unit: AltitudeInvalid},
			text:     "Invalid",
		},
		"unknown unit": {
			value:    "12",
			unit:     "X",
			expected: Altitude{Value: 12, Unit: AltitudeInvalid},
			text:     "Invalid",
		},
		"blank unit": {
			value:    "12",
			unit:     " ",
			expected: Altitude{Value: 12, Unit: AltitudeInvalid},
			text:     "Invalid",
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			a := parseAltitude(tc.value, tc.unit)
			assert.Equal(t, a, tc.expected)
			assert.Assert(t, math.Abs(a.Meters()-tc.meters) < 1e-9)
			assert.Equal(t, a.String(), tc.text)
		})
	}
	assert.Assert(t, optionalAltitude("", "M") == nil)
	assert.Assert(t, optionalAltitude("10", "") == nil)
	assert.Equal(t, *optionalAltitude("10", "M"), Altitude{Value: 10, Unit: AltitudeMeter})
}

func TestParseSatelliteInfo(t *testing.T) {
	tests := map[string]struct {
		fields   [4]string
		expected SatelliteInfo
		err      error
	}{
		"full record": {
			fields:   [4]string{"01", "40", "083", "46"},
			expected: SatelliteInfo{PRN: 1, Elevation: 40, Azimuth: 83, SNR: 46},
		},
		"not tracked": {
			fields:   [4]string{"18", "05", "300", ""},
			expected: SatelliteInfo{PRN: 18, Elevation: 5, Azimuth: 300},
		},
		"only prn": {
			fields:   [4]string{"7", "", "", ""},
			expected: SatelliteInfo{PRN: 7},
		},
		"snr clamped high": {
			fields:   [4]string{"3", "10", "20", "120"},
			expected: SatelliteInfo{PRN: 3, Elevation: 10, Azimuth: 20, SNR: 99},
		},
		"snr clamped low": {
			fields:   [4]string{"3", "10", "20", "-5"},
			expected: SatelliteInfo{PRN: 3, Elevation: 10, Azimuth: 20},
		},
		"missing prn": {
			fields: [4]string{"", "10", "20", "30"},
			err:    ErrInvalidSatellite,
		},
		"bad prn": {
			fields: [4]string{"x1", "10", "20", "30"},
			err:    ErrInvalidSatellite,
		},
		"bad elevation": {
			fields: [4]string{"1", "high", "20", "30"},
			err:    ErrInvalidNumber,
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			info, err := parseSatelliteInfo(tc.fields[0], tc.fields[1], tc.fields[2], tc.fields[3])
			if tc.err != nil {
				assert.Assert(t, errors.Is(err, tc.err), "got %v", err)
				return
			}
			assert.NilError(t, err)
			assert.Equal(t, info, tc.expected)
		})
	}
	assert.Equal(t, SatelliteInfo{PRN: 1, Elevation: 40, Azimuth: 83, SNR: 46}.String(), "PRN=1; EL=40; AZ=83; SNR=46")
}
