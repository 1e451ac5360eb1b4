package simulator

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/openfms/nmea-device/parser"
)

type randomTrack struct {
	randomizer *rand.Rand
	lat, long  float64
	altitude   float64
	heading    float64
}

func newRandomTrack(seed int64) *randomTrack {
	randomizer := rand.New(rand.NewSource(seed))
	return &randomTrack{
		randomizer: randomizer,
		lat:        getRandomFloat64(randomizer, -60, 60),
		long:       getRandomFloat64(randomizer, -180, 180),
		altitude:   getRandomFloat64(randomizer, 0, 1000),
		heading:    getRandomFloat64(randomizer, 0, 360),
	}
}

// next moves the track a little and renders the position as GGA and RMC.
func (rt *randomTrack) next(now time.Time) []string {
	speedKnots := getRandomFloat64(rt.randomizer, 0, 60)
	rt.heading = math.Mod(rt.heading+getRandomFloat64(rt.randomizer, -15, 15)+360, 360)
	step := speedKnots / 3600 / 60
	rt.lat = math.Max(-89, math.Min(89, rt.lat+step*math.Cos(rt.heading*math.Pi/180)))
	rt.long = math.Mod(rt.long+step*math.Sin(rt.heading*math.Pi/180)+540, 360) - 180
	rt.altitude += getRandomFloat64(rt.randomizer, -2, 2)

	lat, latHemi := formatCoordinate(rt.lat, 2, 'N', 'S')
	long, longHemi := formatCoordinate(rt.long, 3, 'E', 'W')
	hms := now.Format("150405") + fmt.Sprintf(".%02d", now.Nanosecond()/1e7)
	satellites := getRandomInt(rt.randomizer, 4, 12)

	gga := fmt.Sprintf("GPGGA,%s,%s,%c,%s,%c,1,%02d,%.1f,%.1f,M,46.9,M,,",
		hms, lat, latHemi, long, longHemi, satellites, getRandomFloat64(rt.randomizer, 0.5, 2.5), rt.altitude)
	rmc := fmt.Sprintf("GPRMC,%s,A,%s,%c,%s,%c,%.1f,%.1f,%s,,,A",
		hms, lat, latHemi, long, longHemi, speedKnots, rt.heading, now.Format("020106"))
	return []string{parser.AppendChecksum(gga), parser.AppendChecksum(rmc)}
}

// formatCoordinate renders decimal degrees as [D]DDMM.MMMM and a hemisphere.
func formatCoordinate(v float64, degreeDigits int, positive, negative byte) (string, byte) {
	hemi := positive
	if v < 0 {
		hemi = negative
		v = -v
	}
	degrees := math.Floor(v)
	minutes := (v - degrees) * 60
	return fmt.Sprintf("%0*d%07.4f", degreeDigits, int(degrees), minutes), hemi
}

func getRandomFloat64(randomizer *rand.Rand, min, max float64) float64 {
	return min + randomizer.Float64()*(max-min)
}

func getRandomInt(randomizer *rand.Rand, min, max int) int {
	return min + randomizer.Intn(max-min+1)
}
