package parser

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestVerifyChecksum(t *testing.T) {
	tests := map[string]struct {
		line    string
		present bool
		valid   bool
		value   byte
	}{
		"valid gga": {
			line:    "$GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,*47",
			present: true,
			valid:   true,
			value:   0x47,
		},
		"unknown type": {
			line:    "$GPXYZ,1,2,3*50",
			present: true,
			valid:   true,
			value:   0x50,
		},
		"gnss talker": {
			line:    "$GNGSA,A,3,80,71,73,79,69,,,,,,,,1.83,1.09,1.47*17",
			present: true,
			valid:   true,
			value:   0x17,
		},
		"mismatch": {
			line:    "$GPXXX,bad*00",
			present: true,
			valid:   false,
			value:   0x00,
		},
		"absent": {
			line: "$GPXYZ,1,2,3",
		},
		"not hex": {
			line: "$GPXYZ,1,2,3*G0",
		},
		"one digit": {
			line: "$GPXYZ,1,2,3*5",
		},
		"too short": {
			line: "*5",
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			present, valid, value := VerifyChecksum(tc.line)
			assert.Equal(t, present, tc.present)
			assert.Equal(t, valid, tc.valid)
			assert.Equal(t, value, tc.value)
		})
	}
}

func TestVerifyChecksumLowerCaseSuffix(t *testing.T) {
	present, valid, value := VerifyChecksum("$GPGSV,2,1,07,01,40,083,46,02,17,308,41,12,07,344,39,14,22,228,45*7a")
	assert.Assert(t, present)
	assert.Assert(t, valid)
	assert.Equal(t, value, byte(0x7a))
}

func TestChecksumSensitivity(t *testing.T) {
	lines := []string{
		"$GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,*47",
		"$GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W*6A",
		"$GPGLL,4916.45,N,12311.12,W,225444,A*31",
	}
	for _, line := range lines {
		_, valid, _ := VerifyChecksum(line)
		assert.Assert(t, valid, line)
		for i := 1; i < len(line)-3; i++ {
			mutated := []byte(line)
			if mutated[i] == 'Z' {
				mutated[i] = 'Y'
			} else {
				mutated[i] = 'Z'
			}
			present, valid, _ := VerifyChecksum(string(mutated))
			assert.Assert(t, present)
			assert.Assert(t, !valid, "mutation at %d of %s", i, line)
		}
	}
}

func TestAppendChecksum(t *testing.T) {
	assert.Equal(t, AppendChecksum("GPXYZ,1,2,3"), "$GPXYZ,1,2,3*50")
	assert.Equal(t, Checksum("GPXXX,bad"), byte(0x04))
	line := AppendChecksum("GPGLL,4916.45,N,12311.12,W,225444,A,D")
	present, valid, _ := VerifyChecksum(line)
	assert.Assert(t, present && valid)
}
