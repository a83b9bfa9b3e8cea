package rental

import (
	"errors"
	"strings"
	"time"
)

// DateLayout wire format of calendar dates
const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("rental: invalid date")

// ParseDate parses "YYYY-MM-DD" (a trailing "T..." time part is ignored) into
// UTC midnight. Dates never pass through a local zone, so a stored date reads
// back as the same day.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) > len(DateLayout) && s[len(DateLayout)] == 'T' {
		s = s[:len(DateLayout)]
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// DayOf drops the clock part, keeping the calendar date as seen in t's own zone
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders the calendar date of t
func FormatDate(t time.Time) string {
	return DayOf(t).Format(DateLayout)
}

// AddDays calendar-day arithmetic
func AddDays(t time.Time, n int) time.Time {
	return DayOf(t).AddDate(0, 0, n)
}

// Window inclusive range of calendar days
type Window struct {
	From time.Time
	To   time.Time
}

// Contains reports whether day d lies in [From, To]
func (w Window) Contains(d time.Time) bool {
	day := DayOf(d)
	return !day.Before(DayOf(w.From)) && !day.After(DayOf(w.To))
}

// Overlaps reports whether two inclusive windows share at least one day
func (w Window) Overlaps(o Window) bool {
	return !DayOf(w.From).After(DayOf(o.To)) && !DayOf(o.From).After(DayOf(w.To))
}

// Days lists every day of the window
func (w Window) Days() []time.Time {
	from, to := DayOf(w.From), DayOf(w.To)
	if to.Before(from) {
		return nil
	}
	days := make([]time.Time, 0, int(to.Sub(from).Hours()/24)+1)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
