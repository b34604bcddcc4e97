package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNowFormats(t *testing.T) {
	date, clock := Now()

	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, date)
	assert.Regexp(t, `^\d{2}:\d{2}$`, clock)

	// Now must report local wall-clock time, not UTC
	parsed, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, time.Local)
	assert.NoError(t, err)
	assert.WithinDuration(t, time.Now(), parsed, 2*time.Minute)
}
