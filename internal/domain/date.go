package domain

import "time"

// DateLayout is the calendar-date encoding used in stored documents.
const DateLayout = "2006-01-02"

// Date is a UTC calendar date in DateLayout form.
type Date string

// DateOf returns the UTC calendar date of t.
func DateOf(t time.Time) Date {
	return Date(t.UTC().Format(DateLayout))
}

// Time parses the date as midnight UTC.
func (d Date) Time() (time.Time, bool) {
	t, err := time.Parse(DateLayout, string(d))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Valid reports whether the date parses.
func (d Date) Valid() bool {
	_, ok := d.Time()
	return ok
}

// AddDays shifts the date by n days. Unparseable dates are returned unchanged.
func (d Date) AddDays(n int) Date {
	t, ok := d.Time()
	if !ok {
		return d
	}
	return DateOf(t.AddDate(0, 0, n))
}

// DaysSince returns the number of whole calendar days from since to d.
// It is negative when since is after d, and 0 if either date is unparseable.
func (d Date) DaysSince(since Date) int {
	to, ok := d.Time()
	if !ok {
		return 0
	}
	from, ok := since.Time()
	if !ok {
		return 0
	}
	return int(to.Sub(from).Hours() / 24)
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	return d.DaysSince(other) < 0
}
