package booking

import (
	"fmt"
	"testing"

	"courtside/models"

	"github.com/stretchr/testify/assert"
)

func TestSlotGrid(t *testing.T) {
	grid := SlotGrid()

	assert.Len(t, grid, 14)
	assert.Equal(t, models.Slot{StartTime: "08:00", EndTime: "09:00"}, grid[0])
	assert.Equal(t, models.Slot{StartTime: "21:00", EndTime: "22:00"}, grid[len(grid)-1])

	// contiguous, each exactly one hour wide
	for i := 1; i < len(grid); i++ {
		assert.Equal(t, grid[i-1].EndTime, grid[i].StartTime)
	}
}

func TestOverlaps(t *testing.T) {
	// touching endpoints do not overlap (half-open intervals)
	assert.False(t, Overlaps("09:00", "10:00", "10:00", "11:00"))
	assert.False(t, Overlaps("10:00", "11:00", "09:00", "10:00"))

	assert.True(t, Overlaps("09:00", "10:00", "09:30", "10:30"))
	assert.True(t, Overlaps("09:30", "10:30", "09:00", "10:00"))
	assert.True(t, Overlaps("09:00", "12:00", "10:00", "11:00")) // contained
	assert.True(t, Overlaps("10:00", "11:00", "09:00", "12:00")) // containing
	assert.False(t, Overlaps("08:00", "09:00", "11:00", "12:00"))
}

func confirmed(start, end string) models.Booking {
	return models.Booking{
		BookingID:  "b1",
		FacilityID: "f1",
		Date:       "2025-06-01",
		StartTime:  start,
		EndTime:    end,
		Status:     models.StatusConfirmed,
	}
}

func TestAvailableSlots(t *testing.T) {
	grid := SlotGrid()

	// no bookings: everything free
	assert.Len(t, AvailableSlots(grid, nil), 14)

	// one confirmed booking removes exactly its slot
	avail := AvailableSlots(grid, []models.Booking{confirmed("14:00", "15:00")})
	assert.Len(t, avail, 13)
	for _, s := range avail {
		assert.NotEqual(t, "14:00", s.StartTime)
	}

	// a multi-hour booking removes every covered slot
	avail = AvailableSlots(grid, []models.Booking{confirmed("09:00", "12:00")})
	assert.Len(t, avail, 11)
}

func TestAvailabilityScenario(t *testing.T) {
	// bookings at 09:00-10:00 and 10:00-11:00: both slots taken, the other
	// twelve stay free, and the adjacency at 10:00 costs nothing extra
	grid := SlotGrid()
	booked := []models.Booking{
		confirmed("09:00", "10:00"),
		confirmed("10:00", "11:00"),
	}

	avail := AvailableSlots(grid, booked)
	assert.Len(t, avail, 12)

	starts := make(map[string]bool)
	for _, s := range avail {
		starts[s.StartTime] = true
	}
	assert.False(t, starts["09:00"])
	assert.False(t, starts["10:00"])
	assert.True(t, starts["08:00"])
	assert.True(t, starts["11:00"])
}

func TestBookedHours(t *testing.T) {
	assert.Equal(t, []string{"09:00"}, bookedHours("09:00", "10:00"))
	assert.Equal(t, []string{"09:00", "10:00", "11:00"}, bookedHours("09:00", "12:00"))
}

func TestClaimID(t *testing.T) {
	assert.Equal(t, "f1|2025-06-01|09:00", claimID("f1", "2025-06-01", "09:00"))

	// distinct hours of the same booking yield distinct keys
	seen := make(map[string]bool)
	for _, h := range bookedHours("08:00", "22:00") {
		id := claimID("f1", "2025-06-01", h)
		assert.False(t, seen[id], fmt.Sprintf("duplicate claim id %s", id))
		seen[id] = true
	}
}
