package rental

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMonthGrid_ShapeForEveryMonth(t *testing.T) {
	today := day("2024-06-15")
	for year := 2023; year <= 2026; year++ {
		for m := time.January; m <= time.December; m++ {
			g := NewMonthGrid(year, m, today)
			require.Len(t, g.Cells, GridCells)

			first := time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
			last := first.AddDate(0, 1, -1)
			assert.Equal(t, time.Sunday, g.Cells[0].Date.Weekday())
			assert.Equal(t, first, g.Cells[int(first.Weekday())].Date)
			assert.False(t, g.Cells[GridCells-1].Date.Before(last), "%d-%02d", year, m)

			inMonth := 0
			for _, c := range g.Cells {
				if c.InMonth {
					inMonth++
				}
			}
			assert.Equal(t, last.Day(), inMonth)
		}
	}
}

func TestNewMonthGrid_Today(t *testing.T) {
	g := NewMonthGrid(2024, time.January, time.Date(2024, 1, 17, 15, 4, 0, 0, time.UTC))
	count := 0
	for _, c := range g.Cells {
		if c.IsToday {
			count++
			assert.Equal(t, "2024-01-17", FormatDate(c.Date))
		}
	}
	assert.Equal(t, 1, count)
}

func TestProject_RentalAndBufferKinds(t *testing.T) {
	g := NewMonthGrid(2024, time.January, day("2024-01-01"))
	b := Booking{ID: "r1", AttireID: "a1", StudentID: "s1", Status: StatusOutForRent,
		Start: day("2024-01-15"), End: day("2024-01-16"), BufferDays: intp(1)}

	out := Project(g, []Booking{b}, Filter{})

	kinds := map[string]EventKind{}
	for _, c := range out.Cells {
		for _, e := range c.Events {
			kinds[FormatDate(c.Date)] = e.Kind
		}
	}
	assert.Equal(t, map[string]EventKind{
		"2024-01-15": EventRental,
		"2024-01-16": EventRental,
		"2024-01-17": EventBuffer,
	}, kinds)
}

func TestProject_MoreIndicator(t *testing.T) {
	g := NewMonthGrid(2024, time.January, day("2024-01-01"))
	for n := 0; n <= 6; n++ {
		var bookings []Booking
		for i := 0; i < n; i++ {
			bookings = append(bookings, Booking{
				ID: fmt.Sprintf("r%d", i), AttireID: fmt.Sprintf("a%d", i), Status: StatusRequested,
				Start: day("2024-01-10"), End: day("2024-01-10"), BufferDays: intp(0),
			})
		}
		out := Project(g, bookings, Filter{})
		var cell DayCell
		for _, c := range out.Cells {
			if FormatDate(c.Date) == "2024-01-10" {
				cell = c
			}
		}
		assert.Equal(t, n, cell.Total)
		if n > MaxVisibleEvents {
			assert.Equal(t, n-MaxVisibleEvents, cell.More)
			assert.Len(t, cell.Events, MaxVisibleEvents)
		} else {
			assert.Equal(t, 0, cell.More)
			assert.Len(t, cell.Events, n)
		}
	}
}

func TestProject_FiltersAreANDed(t *testing.T) {
	g := NewMonthGrid(2024, time.January, day("2024-01-01"))
	bookings := []Booking{
		{ID: "r1", AttireID: "a1", StudentID: "s1", Status: StatusPending, Start: day("2024-01-05"), End: day("2024-01-05"), BufferDays: intp(0)},
		{ID: "r2", AttireID: "a1", StudentID: "s2", Status: StatusPending, Start: day("2024-01-05"), End: day("2024-01-05"), BufferDays: intp(0)},
		{ID: "r3", AttireID: "a2", StudentID: "s1", Status: StatusReturned, Start: day("2024-01-05"), End: day("2024-01-05"), BufferDays: intp(0)},
	}

	out := Project(g, bookings, Filter{Status: StatusPending, StudentID: "s1"})
	ids := []string{}
	for _, c := range out.Cells {
		for _, e := range c.Events {
			ids = append(ids, e.Booking.ID)
		}
	}
	assert.Equal(t, []string{"r1"}, ids)
}

func TestProject_OrderRentalFirst(t *testing.T) {
	g := NewMonthGrid(2024, time.January, day("2024-01-01"))
	bookings := []Booking{
		{ID: "early", AttireID: "a1", Status: StatusReturned, Start: day("2024-01-01"), End: day("2024-01-08"), BufferDays: intp(5)},
		{ID: "later", AttireID: "a2", Status: StatusRequested, Start: day("2024-01-10"), End: day("2024-01-12"), BufferDays: intp(0)},
	}
	out := Project(g, bookings, Filter{})
	for _, c := range out.Cells {
		if FormatDate(c.Date) == "2024-01-10" {
			require.Len(t, c.Events, 2)
			assert.Equal(t, EventRental, c.Events[0].Kind)
			assert.Equal(t, "later", c.Events[0].Booking.ID)
			assert.Equal(t, EventBuffer, c.Events[1].Kind)
		}
	}
}

func TestShiftMonth(t *testing.T) {
	y, m := ShiftMonth(2024, time.January, -1)
	assert.Equal(t, 2023, y)
	assert.Equal(t, time.December, m)

	y, m = ShiftMonth(2024, time.December, 1)
	assert.Equal(t, 2025, y)
	assert.Equal(t, time.January, m)
}
