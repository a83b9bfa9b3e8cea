package rental

import "time"

// IsUnavailable reports whether day d falls inside [start, end] of any booking.
// Both boundaries count as occupied; callers pass only the bookings that block.
func IsUnavailable(d time.Time, bookings []Booking) bool {
	for _, b := range bookings {
		if b.RentalWindow().Contains(d) {
			return true
		}
	}
	return false
}

// UnavailableDates every day in [from, to] occupied by a rental window, ascending
func UnavailableDates(bookings []Booking, from, to time.Time) []time.Time {
	return collectDays(from, to, func(d time.Time) bool {
		return IsUnavailable(d, bookings)
	})
}

// BufferDates days in [from, to] held only by a cleaning window
func BufferDates(bookings []Booking, from, to time.Time) []time.Time {
	return collectDays(from, to, func(d time.Time) bool {
		if IsUnavailable(d, bookings) {
			return false
		}
		for _, b := range bookings {
			if w, ok := b.BufferWindow(); ok && w.Contains(d) {
				return true
			}
		}
		return false
	})
}

func collectDays(from, to time.Time, keep func(time.Time) bool) []time.Time {
	var out []time.Time
	for _, d := range (Window{From: from, To: to}).Days() {
		if keep(d) {
			out = append(out, d)
		}
	}
	return out
}

// BlockingOnly filters out bookings whose status no longer holds the attire
func BlockingOnly(bookings []Booking) []Booking {
	out := make([]Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.Status.Blocks() {
			out = append(out, b)
		}
	}
	return out
}
