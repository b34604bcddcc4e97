package booking

import (
	"testing"

	"courtside/models"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{models.StatusConfirmed, models.StatusCancelled, true},
		{models.StatusConfirmed, models.StatusCompleted, true},
		{models.StatusConfirmed, models.StatusConfirmed, false},
		{models.StatusCancelled, models.StatusCompleted, false},
		{models.StatusCancelled, models.StatusConfirmed, false},
		{models.StatusCompleted, models.StatusCancelled, false},
		{models.StatusCompleted, models.StatusConfirmed, false},
	}

	for _, c := range cases {
		assert.Equal(t, c.ok, CanTransition(c.from, c.to), "%s -> %s", c.from, c.to)
	}
}

func TestValidStatus(t *testing.T) {
	assert.True(t, validStatus(models.StatusConfirmed))
	assert.True(t, validStatus(models.StatusCancelled))
	assert.True(t, validStatus(models.StatusCompleted))
	assert.False(t, validStatus("Pending"))
	assert.False(t, validStatus(""))
}
