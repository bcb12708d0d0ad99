package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKm(t *testing.T) {
	t.Run("zero for identical points", func(t *testing.T) {
		p := Point{Lat: 12.9716, Lon: 77.5946}
		assert.Equal(t, 0.0, DistanceKm(p, p))
	})

	t.Run("symmetric", func(t *testing.T) {
		a := Point{Lat: 12.9716, Lon: 77.5946}
		b := Point{Lat: 12.2958, Lon: 76.6394}
		assert.InDelta(t, DistanceKm(a, b), DistanceKm(b, a), 1e-9)
	})

	t.Run("one degree of latitude is about 111km", func(t *testing.T) {
		d := DistanceKm(Point{Lat: 0, Lon: 0}, Point{Lat: 1, Lon: 0})
		assert.InDelta(t, 111.19, d, 0.05)
	})

	t.Run("bengaluru to mysore", func(t *testing.T) {
		d := DistanceKm(Point{Lat: 12.9716, Lon: 77.5946}, Point{Lat: 12.2958, Lon: 76.6394})
		assert.InDelta(t, 128, d, 2)
	})

	t.Run("antipodal points stay finite", func(t *testing.T) {
		d := DistanceKm(Point{Lat: 0, Lon: 0}, Point{Lat: 0, Lon: 180})
		assert.False(t, math.IsNaN(d))
		assert.InDelta(t, math.Pi*EarthRadiusKm, d, 1e-6)
	})

	t.Run("longitude degrees shrink toward the poles", func(t *testing.T) {
		eq := DistanceKm(Point{Lat: 0, Lon: 0}, Point{Lat: 0, Lon: 1})
		north := DistanceKm(Point{Lat: 60, Lon: 0}, Point{Lat: 60, Lon: 1})
		assert.Less(t, north, eq)
	})
}

func TestParsePoint(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon string
		want     Point
		ok       bool
	}{
		{"valid", "12.97", "77.60", Point{12.97, 77.60}, true},
		{"whitespace", " 12.97 ", "77.60\n", Point{12.97, 77.60}, true},
		{"missing lat", "", "77.60", Point{}, false},
		{"missing lon", "12.97", "", Point{}, false},
		{"garbage", "north", "77.60", Point{}, false},
		{"nan", "NaN", "77.60", Point{}, false},
		{"inf", "12.97", "+Inf", Point{}, false},
		{"lat out of range", "91", "77.60", Point{}, false},
		{"lon out of range", "12.97", "-181", Point{}, false},
		{"edges", "-90", "180", Point{-90, 180}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParsePoint(tt.lat, tt.lon)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
