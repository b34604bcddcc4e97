package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpiredBoundary(t *testing.T) {
	today, now := "2026-03-10", "14:00"

	cases := []struct {
		name    string
		date    string
		endtime string
		want    bool
	}{
		{"yesterday is expired regardless of time", "2026-03-09", "23:00", true},
		{"today ending before now is expired", "2026-03-10", "13:00", true},
		{"today ending exactly now is expired", "2026-03-10", "14:00", true},
		{"today ending after now is still live", "2026-03-10", "15:00", false},
		{"tomorrow is never expired", "2026-03-11", "09:00", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, expired(tc.date, tc.endtime, today, now))
		})
	}
}

func TestExpiredIsStableAcrossReruns(t *testing.T) {
	// a second sweep at the same instant must select the same set
	today, now := "2026-03-10", "14:00"
	first := expired("2026-03-10", "14:00", today, now)
	second := expired("2026-03-10", "14:00", today, now)

	assert.True(t, first)
	assert.Equal(t, first, second)
}
