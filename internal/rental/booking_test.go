package rental

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func intp(n int) *int { return &n }

func TestParseDate_RoundTrip(t *testing.T) {
	for _, s := range []string{"2024-01-15", "2024-02-29", "2024-12-31"} {
		d, err := ParseDate(s)
		require.NoError(t, err)
		assert.Equal(t, s, FormatDate(d))
	}

	d, err := ParseDate("2024-01-20T00:00:00")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-20", FormatDate(d))

	_, err = ParseDate("20/01/2024")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestDayOf_KeepsLocalCalendarDay(t *testing.T) {
	loc := time.FixedZone("EST", -5*3600)
	late := time.Date(2024, 1, 20, 23, 30, 0, 0, loc)
	assert.Equal(t, "2024-01-20", FormatDate(late))
}

func TestBufferEnd(t *testing.T) {
	end := day("2024-01-20")
	assert.Equal(t, end, BufferEnd(end, 0))
	assert.Equal(t, day("2024-01-27"), BufferEnd(end, 7))
	assert.Equal(t, end, BufferEnd(end, -3))
	assert.Equal(t, day("2024-02-03"), BufferEnd(end, 14))
}

func TestBufferEnd_Additive(t *testing.T) {
	end := day("2024-02-25")
	for a := 0; a < 10; a++ {
		for b := 0; b < 10; b++ {
			assert.Equal(t, BufferEnd(end, a+b), BufferEnd(BufferEnd(end, a), b))
		}
	}
}

func TestNormalizeBuffer(t *testing.T) {
	assert.Equal(t, DefaultBufferDays, NormalizeBuffer(nil))
	assert.Equal(t, 0, NormalizeBuffer(intp(-4)))
	assert.Equal(t, 3, NormalizeBuffer(intp(3)))
}

func TestBooking_Windows(t *testing.T) {
	b := Booking{Start: day("2024-01-15"), End: day("2024-01-20"), BufferDays: intp(2)}

	assert.Equal(t, Window{From: day("2024-01-15"), To: day("2024-01-20")}, b.RentalWindow())
	w, ok := b.BufferWindow()
	require.True(t, ok)
	assert.Equal(t, Window{From: day("2024-01-21"), To: day("2024-01-22")}, w)
	assert.Equal(t, day("2024-01-22"), b.BufferUntil())

	b.BufferDays = intp(0)
	_, ok = b.BufferWindow()
	assert.False(t, ok)
}

func TestFindConflict(t *testing.T) {
	existing := []Booking{
		{ID: "r1", AttireID: "a1", Status: StatusOutForRent, Start: day("2024-01-15"), End: day("2024-01-20"), BufferDays: intp(7)},
		{ID: "r2", AttireID: "a1", Status: StatusInactive, Start: day("2024-03-01"), End: day("2024-03-05")},
		{ID: "r3", AttireID: "a2", Status: StatusRequested, Start: day("2024-02-01"), End: day("2024-02-03")},
	}

	// inside r1's cleaning window
	c, ok := FindConflict(Booking{AttireID: "a1", Start: day("2024-01-25"), End: day("2024-01-26"), BufferDays: intp(0)}, existing)
	require.True(t, ok)
	assert.Equal(t, "r1", c.ID)

	// day after r1's buffer ends
	_, ok = FindConflict(Booking{AttireID: "a1", Start: day("2024-01-28"), End: day("2024-01-30")}, existing)
	assert.False(t, ok)

	// the candidate's own buffer reaches into a later booking
	_, ok = FindConflict(Booking{AttireID: "a2", Start: day("2024-01-28"), End: day("2024-01-30"), BufferDays: intp(2)}, existing)
	assert.True(t, ok)

	// inactive requests do not hold the item
	_, ok = FindConflict(Booking{AttireID: "a1", Start: day("2024-03-02"), End: day("2024-03-03")}, existing)
	assert.False(t, ok)

	// editing r1 never conflicts with itself
	_, ok = FindConflict(Booking{ID: "r1", AttireID: "a1", Start: day("2024-01-16"), End: day("2024-01-21")}, existing)
	assert.False(t, ok)
}

func TestCanSwitchOrDelete(t *testing.T) {
	for _, s := range Statuses {
		for _, st := range StudentStatuses {
			want := s == StatusReturned || st == StudentInactive
			assert.Equal(t, want, CanSwitchOrDelete(s, st), "%s/%s", s, st)
		}
	}
	assert.False(t, CanSwitchOrDelete(StatusOutForRent, StudentActive))
	assert.True(t, CanSwitchOrDelete(StatusReturned, StudentActive))
	assert.True(t, CanSwitchOrDelete(StatusOutForRent, StudentInactive))
	// only the canonical spelling unlocks
	assert.False(t, CanSwitchOrDelete(Status("returned"), StudentActive))
}
