package booking

import (
	"fmt"
	"strconv"

	"courtside/models"
)

// Operating hours: start inclusive, end exclusive, hourly grid.
const (
	OpeningTime = "08:00"
	ClosingTime = "22:00"

	openingHour = 8
	closingHour = 22
)

// SlotGrid returns the full ordered sequence of bookable one-hour slots,
// 08:00-09:00 through 21:00-22:00.
func SlotGrid() []models.Slot {
	slots := make([]models.Slot, 0, closingHour-openingHour)
	for hour := openingHour; hour < closingHour; hour++ {
		slots = append(slots, models.Slot{
			StartTime: fmt.Sprintf("%02d:00", hour),
			EndTime:   fmt.Sprintf("%02d:00", hour+1),
		})
	}
	return slots
}

// Overlaps reports whether [aStart,aEnd) and [bStart,bEnd) intersect.
// Half-open: a booking ending at 10:00 does not collide with one starting
// at 10:00. Lexicographic comparison is exact for zero-padded HH:MM.
func Overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && bStart < aEnd
}

// AvailableSlots filters the grid down to slots no booking in booked
// overlaps. Callers pass only Confirmed bookings; Cancelled and Completed
// ones never block a slot.
func AvailableSlots(all []models.Slot, booked []models.Booking) []models.Slot {
	available := make([]models.Slot, 0, len(all))
	for _, slot := range all {
		free := true
		for _, b := range booked {
			if Overlaps(b.StartTime, b.EndTime, slot.StartTime, slot.EndTime) {
				free = false
				break
			}
		}
		if free {
			available = append(available, slot)
		}
	}
	return available
}

// bookedHours expands a whole-hour interval into its hour starts:
// 09:00-12:00 -> ["09:00" "10:00" "11:00"].
func bookedHours(start, end string) []string {
	from, _ := strconv.Atoi(start[:2])
	to, _ := strconv.Atoi(end[:2])
	hours := make([]string, 0, to-from)
	for h := from; h < to; h++ {
		hours = append(hours, fmt.Sprintf("%02d:00", h))
	}
	return hours
}

// claimID builds the natural key one SlotClaim document holds per booked
// hour. Uniqueness of this key is what makes racing admissions lose.
func claimID(facilityID, date, hour string) string {
	return facilityID + "|" + date + "|" + hour
}
