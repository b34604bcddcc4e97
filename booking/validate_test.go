package booking

import (
	"testing"

	"courtside/apperr"

	"github.com/stretchr/testify/assert"
)

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, validateRequest("2025-06-01", "09:00", "10:00"))
	assert.NoError(t, validateRequest("2025-06-01", "08:00", "22:00"))

	cases := []struct {
		name             string
		date, start, end string
	}{
		{"missing fields", "", "", ""},
		{"bad date format", "06/01/2025", "09:00", "10:00"},
		{"impossible date", "2025-13-40", "09:00", "10:00"},
		{"bad time format", "2025-06-01", "9am", "10:00"},
		{"off the hour grid", "2025-06-01", "09:30", "10:30"},
		{"start equals end", "2025-06-01", "09:00", "09:00"},
		{"start after end", "2025-06-01", "11:00", "10:00"},
		{"before opening", "2025-06-01", "07:00", "08:00"},
		{"past closing", "2025-06-01", "21:00", "23:00"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := validateRequest(c.date, c.start, c.end)
			assert.Error(t, err)
			assert.Equal(t, apperr.Validation, apperr.KindOf(err))
		})
	}
}
