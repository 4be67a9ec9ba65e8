package engine

import (
	"fmt"
	"time"
)

// dateLayout is the wire format for all calendar dates.
const dateLayout = "2006-01-02"

// maxRangeDays caps inclusive date ranges (seeding, pricing, reports)
// so a typo in a year cannot fan a request out into decades of rows.
const maxRangeDays = 730

// ParseDate parses a YYYY-MM-DD string into a UTC midnight time.
// Malformed input is reported as ErrInvalidInput with the offending
// value included.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad date %q, want YYYY-MM-DD", ErrInvalidInput, s)
	}
	return t.UTC(), nil
}

// nightsBetween returns the number of nights in a half-open stay
// [checkIn, checkOut).  A zero or negative result means the range is
// invalid.
func nightsBetween(checkIn, checkOut time.Time) int {
	return int(checkOut.Sub(checkIn).Hours() / 24)
}

// stayDates expands a half-open stay [checkIn, checkOut) into the
// occupied nights: checkIn, checkIn+1, ..., checkOut-1.
func stayDates(checkIn, checkOut time.Time) []time.Time {
	n := nightsBetween(checkIn, checkOut)
	if n <= 0 {
		return nil
	}
	out := make([]time.Time, 0, n)
	for d := checkIn; d.Before(checkOut); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}

// inclusiveDates expands an inclusive range [first, last] into its
// member dates.  Used by seeding and reporting, where both endpoints
// are stay dates.
func inclusiveDates(first, last time.Time) []time.Time {
	if last.Before(first) {
		return nil
	}
	out := make([]time.Time, 0, int(last.Sub(first).Hours()/24)+1)
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}

// validateStay checks a half-open booking range: checkOut must be
// strictly after checkIn and the stay may not exceed maxRangeDays.
func validateStay(checkIn, checkOut time.Time) error {
	n := nightsBetween(checkIn, checkOut)
	if n <= 0 {
		return fmt.Errorf("%w: check_out must be after check_in", ErrInvalidInput)
	}
	if n > maxRangeDays {
		return fmt.Errorf("%w: stay longer than %d nights", ErrInvalidInput, maxRangeDays)
	}
	return nil
}

// validateInclusiveRange checks an inclusive range: last must not
// precede first and the span may not exceed maxRangeDays.
func validateInclusiveRange(first, last time.Time) error {
	if last.Before(first) {
		return fmt.Errorf("%w: end date precedes start date", ErrInvalidInput)
	}
	if int(last.Sub(first).Hours()/24)+1 > maxRangeDays {
		return fmt.Errorf("%w: range longer than %d days", ErrInvalidInput, maxRangeDays)
	}
	return nil
}
