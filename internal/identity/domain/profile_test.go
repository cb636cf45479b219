package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfile_IsActiveAt(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
		hour       int
		want       bool
	}{
		{"inside window", 8, 22, 12, true},
		{"before window", 8, 22, 7, false},
		{"at start", 8, 22, 8, true},
		{"at end", 8, 22, 22, false},
		{"zero-width window always active", 0, 0, 3, true},
		{"wrapping window late evening", 22, 6, 23, true},
		{"wrapping window early morning", 22, 6, 5, true},
		{"wrapping window midday", 22, 6, 12, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := Profile{ActiveStartHour: tc.start, ActiveEndHour: tc.end}
			assert.Equal(t, tc.want, p.IsActiveAt(tc.hour))
		})
	}
}
