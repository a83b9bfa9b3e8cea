package rental

import (
	"sort"
	"time"
)

const (
	// GridCells six weeks of seven days
	GridCells = 42
	// MaxVisibleEvents events listed per day before collapsing into "+N more"
	MaxVisibleEvents = 3
)

// EventKind how a booking occupies a day
type EventKind string

const (
	EventRental EventKind = "rental"
	EventBuffer EventKind = "buffer"
)

// CalendarEvent one booking as seen on one day
type CalendarEvent struct {
	Booking Booking
	Kind    EventKind
}

// DayCell one square of the month grid
type DayCell struct {
	Date    time.Time
	InMonth bool
	IsToday bool
	Events  []CalendarEvent // at most MaxVisibleEvents
	Total   int
	More    int // Total - MaxVisibleEvents when positive
}

// MonthGrid Sunday-first 6×7 grid covering a month
type MonthGrid struct {
	Year  int
	Month time.Month
	Cells []DayCell
}

// Filter optional constraints, ANDed; zero values match everything
type Filter struct {
	Status    Status
	StudentID string
	AttireID  string
}

// Match reports whether b passes every set constraint
func (f Filter) Match(b Booking) bool {
	if f.Status != "" && b.Status != f.Status {
		return false
	}
	if f.StudentID != "" && b.StudentID != f.StudentID {
		return false
	}
	if f.AttireID != "" && b.AttireID != f.AttireID {
		return false
	}
	return true
}

// NewMonthGrid lays out 42 days starting on the Sunday on or before the 1st
func NewMonthGrid(year int, month time.Month, today time.Time) MonthGrid {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	// normalizes out-of-range months (e.g. 13 → January next year)
	year, month = first.Year(), first.Month()
	start := first.AddDate(0, 0, -int(first.Weekday()))
	todayDay := DayOf(today)

	cells := make([]DayCell, GridCells)
	for i := range cells {
		d := start.AddDate(0, 0, i)
		cells[i] = DayCell{
			Date:    d,
			InMonth: d.Month() == month,
			IsToday: d.Equal(todayDay),
		}
	}
	return MonthGrid{Year: year, Month: month, Cells: cells}
}

// Window first to last day shown by the grid
func (g MonthGrid) Window() Window {
	return Window{From: g.Cells[0].Date, To: g.Cells[len(g.Cells)-1].Date}
}

// Project places every filtered booking on the days its rental or buffer window
// covers. Within a day rental events come before buffer events, then by start date.
func Project(g MonthGrid, bookings []Booking, f Filter) MonthGrid {
	index := make(map[time.Time]int, len(g.Cells))
	for i, c := range g.Cells {
		index[c.Date] = i
	}
	all := make([][]CalendarEvent, len(g.Cells))

	place := func(w Window, b Booking, kind EventKind) {
		for _, d := range w.Days() {
			if i, ok := index[d]; ok {
				all[i] = append(all[i], CalendarEvent{Booking: b, Kind: kind})
			}
		}
	}

	for _, b := range bookings {
		if !f.Match(b) {
			continue
		}
		place(b.RentalWindow(), b, EventRental)
		if w, ok := b.BufferWindow(); ok {
			place(w, b, EventBuffer)
		}
	}

	out := MonthGrid{Year: g.Year, Month: g.Month, Cells: make([]DayCell, len(g.Cells))}
	for i, c := range g.Cells {
		events := all[i]
		sort.SliceStable(events, func(a, b int) bool {
			if events[a].Kind != events[b].Kind {
				return events[a].Kind == EventRental
			}
			if !events[a].Booking.Start.Equal(events[b].Booking.Start) {
				return events[a].Booking.Start.Before(events[b].Booking.Start)
			}
			return events[a].Booking.ID < events[b].Booking.ID
		})
		c.Total = len(events)
		c.More = 0
		if c.Total > MaxVisibleEvents {
			c.More = c.Total - MaxVisibleEvents
			events = events[:MaxVisibleEvents]
		}
		c.Events = events
		out.Cells[i] = c
	}
	return out
}

// ShiftMonth previous/next month navigation
func ShiftMonth(year int, month time.Month, delta int) (int, time.Month) {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, delta, 0)
	return t.Year(), t.Month()
}
