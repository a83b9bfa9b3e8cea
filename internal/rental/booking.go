package rental

import "time"

// DefaultBufferDays cleaning turnaround used when a request carries no buffer
const DefaultBufferDays = 7

// Booking the scheduling view of an attire request
type Booking struct {
	ID         string
	AttireID   string
	StudentID  string
	Status     Status
	Start      time.Time
	End        time.Time
	BufferDays *int
}

// NormalizeBuffer nil → DefaultBufferDays, negative → 0
func NormalizeBuffer(days *int) int {
	if days == nil {
		return DefaultBufferDays
	}
	if *days < 0 {
		return 0
	}
	return *days
}

// BufferEnd last day of the cleaning window: end + days (negative clamped to 0)
func BufferEnd(end time.Time, days int) time.Time {
	if days < 0 {
		days = 0
	}
	return AddDays(end, days)
}

// Buffer effective buffer length in days
func (b Booking) Buffer() int {
	return NormalizeBuffer(b.BufferDays)
}

// BufferUntil last day the item is held for cleaning
func (b Booking) BufferUntil() time.Time {
	return BufferEnd(b.End, b.Buffer())
}

// RentalWindow [start, end]
func (b Booking) RentalWindow() Window {
	return Window{From: DayOf(b.Start), To: DayOf(b.End)}
}

// BufferWindow (end, end+buffer]; ok is false for a zero-day buffer
func (b Booking) BufferWindow() (Window, bool) {
	n := b.Buffer()
	if n == 0 {
		return Window{}, false
	}
	return Window{From: AddDays(b.End, 1), To: BufferEnd(b.End, n)}, true
}

// HeldWindow [start, end+buffer], the span no other booking of the attire may touch
func (b Booking) HeldWindow() Window {
	return Window{From: DayOf(b.Start), To: b.BufferUntil()}
}

// Overlaps reports whether two bookings' held windows intersect
func Overlaps(a, b Booking) bool {
	return a.HeldWindow().Overlaps(b.HeldWindow())
}

// FindConflict returns the first blocking booking of the same attire whose held
// window intersects candidate's. The candidate itself (same ID) is skipped.
func FindConflict(candidate Booking, existing []Booking) (Booking, bool) {
	for _, b := range existing {
		if b.ID != "" && b.ID == candidate.ID {
			continue
		}
		if b.AttireID != candidate.AttireID || !b.Status.Blocks() {
			continue
		}
		if Overlaps(candidate, b) {
			return b, true
		}
	}
	return Booking{}, false
}
