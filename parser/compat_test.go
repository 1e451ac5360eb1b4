package parser

import (
	"math"
	"strconv"
	"testing"
	"time"

	nmea "github.com/adrianmo/go-nmea"
	"golang.org/x/exp/slices"
	"gotest.tools/v3/assert"
)

// Decoded values are cross-checked against github.com/adrianmo/go-nmea.

func closeTo(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestCompatPositionFix(t *testing.T) {
	line := "$GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,*47"
	ref, err := nmea.Parse(line)
	assert.NilError(t, err)
	want := ref.(nmea.GGA)

	msg, err := Parse(line)
	assert.NilError(t, err)
	got := msg.(*PositionFix)

	assert.Assert(t, closeTo(got.Latitude.Decimal(), want.Latitude))
	assert.Assert(t, closeTo(got.Longitude.Decimal(), want.Longitude))
	assert.Equal(t, strconv.Itoa(int(got.FixQuality)), want.FixQuality)
	assert.Equal(t, int64(got.Satellites), want.NumSatellites)
	assert.Assert(t, closeTo(*got.HDOP, want.HDOP))
	assert.Assert(t, closeTo(got.Altitude.Value, want.Altitude))
	assert.Assert(t, closeTo(got.GeoidHeight.Value, want.Separation))
	h, m, s := splitDuration(got.Time)
	assert.Equal(t, h, want.Time.Hour)
	assert.Equal(t, m, want.Time.Minute)
	assert.Equal(t, s, want.Time.Second)
}

func TestCompatRecommendedMinimum(t *testing.T) {
	line := "$GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W*6A"
	ref, err := nmea.Parse(line)
	assert.NilError(t, err)
	want := ref.(nmea.RMC)

	msg, err := Parse(line)
	assert.NilError(t, err)
	got := msg.(*RecommendedMinimum)

	assert.Equal(t, want.Validity, nmea.ValidRMC)
	assert.Assert(t, got.Valid())
	assert.Assert(t, closeTo(got.Latitude.Decimal(), want.Latitude))
	assert.Assert(t, closeTo(got.Longitude.Decimal(), want.Longitude))
	assert.Assert(t, closeTo(got.SpeedKnots, want.Speed))
	assert.Assert(t, closeTo(got.TrackAngle, want.Course))
	assert.Equal(t, got.Timestamp.Day(), want.Date.DD)
	assert.Equal(t, int(got.Timestamp.Month()), want.Date.MM)
	assert.Equal(t, got.Timestamp.Year()-2000, want.Date.YY)
	assert.Equal(t, got.Timestamp.Hour(), want.Time.Hour)
}

func TestCompatSatelliteView(t *testing.T) {
	lines := []string{
		"$GPGSV,2,1,07,01,40,083,46,02,17,308,41,12,07,344,39,14,22,228,45*7A",
		"$GPGSV,2,2,07,15,12,045,30,16,55,120,42,18,05,300,*46",
	}
	for _, line := range lines {
		ref, err := nmea.Parse(line)
		assert.NilError(t, err)
		want := ref.(nmea.GSV)

		msg, err := Parse(line)
		assert.NilError(t, err)
		got := msg.(*SatelliteView)

		assert.Equal(t, int64(got.TotalPages), want.TotalMessages)
		assert.Equal(t, int64(got.Page), want.MessageNumber)
		assert.Equal(t, int64(got.SatellitesInView), want.NumberSVsInView)
		sats := got.Satellites()
		assert.Equal(t, len(sats), len(want.Info))
		for i, info := range want.Info {
			assert.Equal(t, int64(sats[i].PRN), info.SVPRNNumber)
			assert.Equal(t, int64(sats[i].Elevation), info.Elevation)
			assert.Equal(t, int64(sats[i].Azimuth), info.Azimuth)
			assert.Equal(t, int64(sats[i].SNR), info.SNR)
		}
	}
}

func TestCompatDilutionOfPrecision(t *testing.T) {
	line := "$GPGSA,A,3,04,05,,09,12,,,24,,,,,2.5,1.3,2.1*39"
	ref, err := nmea.Parse(line)
	assert.NilError(t, err)
	want := ref.(nmea.GSA)

	msg, err := Parse(line)
	assert.NilError(t, err)
	got := msg.(*DilutionOfPrecision)

	assert.Equal(t, strconv.Itoa(int(got.FixType)), want.FixType)
	ids := make([]int, 0, len(want.SV))
	for _, sv := range want.SV {
		if sv == "" {
			continue
		}
		id, err := strconv.Atoi(sv)
		assert.NilError(t, err)
		ids = append(ids, id)
	}
	slices.Sort(ids)
	assert.DeepEqual(t, got.Satellites(), ids)
	assert.Assert(t, closeTo(*got.PDOP, want.PDOP))
	assert.Assert(t, closeTo(*got.HDOP, want.HDOP))
	assert.Assert(t, closeTo(*got.VDOP, want.VDOP))
}

func TestCompatGeographicPosition(t *testing.T) {
	line := "$GPGLL,4916.45,N,12311.12,W,225444,A*31"
	ref, err := nmea.Parse(line)
	assert.NilError(t, err)
	want := ref.(nmea.GLL)

	msg, err := Parse(line)
	assert.NilError(t, err)
	got := msg.(*GeographicPosition)

	assert.Assert(t, closeTo(got.Latitude.Decimal(), want.Latitude))
	assert.Assert(t, closeTo(got.Longitude.Decimal(), want.Longitude))
	assert.Equal(t, want.Validity, nmea.ValidGLL)
	assert.Assert(t, got.Valid())
}

func splitDuration(d time.Duration) (int, int, int) {
	return int(d / time.Hour), int(d % time.Hour / time.Minute), int(d % time.Minute / time.Second)
}
