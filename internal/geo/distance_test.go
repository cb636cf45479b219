package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance_SamePointIsZero(t *testing.T) {
	points := []Coordinate{
		NewCoordinate(0, 0),
		NewCoordinate(32.0853, 34.7818),
		NewCoordinate(-90, 0),
		NewCoordinate(51.5007, -0.1246),
	}

	for _, p := range points {
		assert.Equal(t, 0.0, Distance(p, p))
	}
}

func TestDistance_Symmetric(t *testing.T) {
	a := NewCoordinate(32.0853, 34.7818)
	b := NewCoordinate(32.0880, 34.7830)

	assert.InDelta(t, Distance(a, b), Distance(b, a), 1e-9)
}

func TestDistance_KnownValues(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Coordinate
		meters float64
		delta  float64
	}{
		{
			name:   "Tel Aviv city blocks",
			a:      NewCoordinate(32.0850, 34.7810),
			b:      NewCoordinate(32.0880, 34.7830),
			meters: 383,
			delta:  5,
		},
		{
			name:   "Paris to London",
			a:      NewCoordinate(48.8566, 2.3522),
			b:      NewCoordinate(51.5074, -0.1278),
			meters: 343_500,
			delta:  1_000,
		},
		{
			name:   "equator quarter circumference",
			a:      NewCoordinate(0, 0),
			b:      NewCoordinate(0, 90),
			meters: math.Pi / 2 * EarthRadiusMeters,
			delta:  1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.meters, Distance(tc.a, tc.b), tc.delta)
		})
	}
}

func TestDistance_OutOfRangeInputsStillProduceNumbers(t *testing.T) {
	a := NewCoordinate(200, 400)
	b := NewCoordinate(-300, -720)

	d := Distance(a, b)
	assert.False(t, math.IsNaN(d))
	assert.GreaterOrEqual(t, d, 0.0)
}

func TestDistance_Antipodal(t *testing.T) {
	a := NewCoordinate(0, 0)
	b := NewCoordinate(0, 180)

	d := Distance(a, b)
	assert.InDelta(t, math.Pi*EarthRadiusMeters, d, 1)
}

func TestCoordinate_IsZero(t *testing.T) {
	assert.True(t, Coordinate{}.IsZero())
	assert.False(t, NewCoordinate(0.0001, 0).IsZero())
}

func TestCoordinate_Equals(t *testing.T) {
	a := NewCoordinate(1.5, 2.5)
	assert.True(t, a.Equals(NewCoordinate(1.5, 2.5)))
	assert.False(t, a.Equals(NewCoordinate(1.5, 2.6)))
}
