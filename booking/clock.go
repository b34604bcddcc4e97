package booking

import "time"

// Now returns the current local calendar date and wall-clock time in the
// formats bookings store ("YYYY-MM-DD", "HH:MM"). Local, never UTC: a UTC
// timestamp would sweep the wrong rows near midnight or across offset
// boundaries, because bookings are local wall-clock strings.
func Now() (date string, clock string) {
	now := time.Now()
	return now.Format("2006-01-02"), now.Format("15:04")
}
