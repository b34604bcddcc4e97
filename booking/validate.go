package booking

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"courtside/apperr"
)

var (
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// validateRequest rejects malformed input before anything touches storage.
func validateRequest(date, start, end string) error {
	if date == "" || start == "" || end == "" {
		return apperr.New(apperr.Validation, "facilityId, date, startTime and endTime are required")
	}
	if !dateRe.MatchString(date) {
		return apperr.New(apperr.Validation, "Invalid date format (expected YYYY-MM-DD)")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return apperr.New(apperr.Validation, "Invalid date")
	}
	if !timeRe.MatchString(start) || !timeRe.MatchString(end) {
		return apperr.New(apperr.Validation, "Invalid time format (expected HH:MM)")
	}
	if !strings.HasSuffix(start, ":00") || !strings.HasSuffix(end, ":00") {
		return apperr.New(apperr.Validation, "Bookings must start and end on the hour")
	}
	if start >= end {
		return apperr.New(apperr.Validation, "Start time must be before end time")
	}
	if start < OpeningTime || end > ClosingTime {
		return apperr.New(apperr.Validation,
			fmt.Sprintf("Bookings must be between %s and %s", OpeningTime, ClosingTime))
	}
	return nil
}
