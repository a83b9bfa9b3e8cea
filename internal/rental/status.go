// Package rental holds the booking rules of the rental program: status
// vocabularies, availability, buffer (cleaning) windows, item-switch permission
// and the staff month calendar. It has no I/O.
package rental

import (
	"errors"
	"strings"
	"unicode"
)

var (
	ErrUnknownStatus        = errors.New("rental: unknown request status")
	ErrUnknownStudentStatus = errors.New("rental: unknown student status")
	ErrUnknownAttireStatus  = errors.New("rental: unknown attire status")
	ErrUnknownSize          = errors.New("rental: unknown size")
	ErrUnknownGender        = errors.New("rental: unknown gender")
	ErrUnknownCategory      = errors.New("rental: category not allowed for gender")
)

// Status attire request lifecycle state, stored as its display text
type Status string

const (
	StatusRequested        Status = "Requested"
	StatusPending          Status = "Pending"
	StatusWaitingForPickup Status = "Waiting for Pick-up"
	StatusOutForRent       Status = "Out for Rent"
	StatusReturned         Status = "Returned"
	StatusReadyToBeCleaned Status = "Ready to be Cleaned"
	StatusReadyForRent     Status = "Ready for Rent"
	StatusInactive         Status = "Inactive"
)

// Statuses in lifecycle order
var Statuses = []Status{
	StatusRequested,
	StatusPending,
	StatusWaitingForPickup,
	StatusOutForRent,
	StatusReturned,
	StatusReadyToBeCleaned,
	StatusReadyForRent,
	StatusInactive,
}

var statusByKey = func() map[string]Status {
	m := make(map[string]Status, len(Statuses)+4)
	for _, s := range Statuses {
		m[foldKey(string(s))] = s
	}
	// values written by the old approval calendar
	m["approved"] = StatusWaitingForPickup
	m["rejected"] = StatusInactive
	m["cancelled"] = StatusInactive
	m["canceled"] = StatusInactive
	return m
}()

// foldKey lowercases and drops everything but letters, so "Waiting for Pick-up",
// "waiting for pickup" and "WaitingForPickup" share a key.
func foldKey(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// ParseStatus maps any known spelling (including legacy approval values) to
// the canonical status.
func ParseStatus(s string) (Status, error) {
	if st, ok := statusByKey[foldKey(s)]; ok {
		return st, nil
	}
	return "", ErrUnknownStatus
}

// Valid reports whether s is already a canonical value
func (s Status) Valid() bool {
	for _, c := range Statuses {
		if s == c {
			return true
		}
	}
	return false
}

// Blocks reports whether a request in this status still holds its attire.
// Inactive requests are treated as cancelled.
func (s Status) Blocks() bool {
	return s != StatusInactive
}

var badgeColors = map[Status]string{
	StatusRequested:        "blue",
	StatusPending:          "yellow",
	StatusWaitingForPickup: "purple",
	StatusOutForRent:       "orange",
	StatusReturned:         "green",
	StatusReadyToBeCleaned: "amber",
	StatusReadyForRent:     "emerald",
	StatusInactive:         "gray",
}

// BadgeColor display color for a status badge
func BadgeColor(s Status) string {
	if c, ok := badgeColors[s]; ok {
		return c
	}
	return "gray"
}

// ── students ──

// StudentStatus roster state of a student
type StudentStatus string

const (
	StudentActive    StudentStatus = "Active"
	StudentInactive  StudentStatus = "Inactive"
	StudentSuspended StudentStatus = "Suspended"
	StudentPending   StudentStatus = "Pending"
)

var StudentStatuses = []StudentStatus{StudentActive, StudentInactive, StudentSuspended, StudentPending}

// ParseStudentStatus case-insensitive lookup
func ParseStudentStatus(s string) (StudentStatus, error) {
	k := foldKey(s)
	for _, st := range StudentStatuses {
		if foldKey(string(st)) == k {
			return st, nil
		}
	}
	return "", ErrUnknownStudentStatus
}

// ── attires ──

// AttireStatus physical state of a catalog item
type AttireStatus string

const (
	AttireReadyForRent     AttireStatus = "Ready for Rent"
	AttireOutForRent       AttireStatus = "Out for Rent"
	AttireReadyToBeCleaned AttireStatus = "Ready to be Cleaned"
	AttireInactive         AttireStatus = "Inactive"
)

var AttireStatuses = []AttireStatus{AttireReadyForRent, AttireOutForRent, AttireReadyToBeCleaned, AttireInactive}

// ParseAttireStatus case-insensitive lookup
func ParseAttireStatus(s string) (AttireStatus, error) {
	k := foldKey(s)
	for _, st := range AttireStatuses {
		if foldKey(string(st)) == k {
			return st, nil
		}
	}
	return "", ErrUnknownAttireStatus
}

// Size garment size bucket
type Size string

const (
	SizeS      Size = "S"
	SizeM      Size = "M"
	SizeL      Size = "L"
	SizeXL     Size = "XL"
	SizeNoSize Size = "No Size"
)

var Sizes = []Size{SizeS, SizeM, SizeL, SizeXL, SizeNoSize}

// ParseSize case-insensitive lookup
func ParseSize(s string) (Size, error) {
	k := foldKey(s)
	for _, sz := range Sizes {
		if foldKey(string(sz)) == k {
			return sz, nil
		}
	}
	return "", ErrUnknownSize
}

// Gender catalog bucket
type Gender string

const (
	GenderMen    Gender = "Men"
	GenderWomen  Gender = "Women"
	GenderUnisex Gender = "Unisex"
)

// Categories fixed category list per gender bucket
var Categories = map[Gender][]string{
	GenderMen:    {"Suits", "Blazers", "Dress Shirts", "Dress Pants", "Ties", "Shoes"},
	GenderWomen:  {"Suits", "Blazers", "Blouses", "Dresses", "Skirts", "Dress Pants", "Shoes"},
	GenderUnisex: {"Outerwear", "Accessories", "Bags"},
}

// ParseGender case-insensitive lookup
func ParseGender(s string) (Gender, error) {
	k := foldKey(s)
	for g := range Categories {
		if foldKey(string(g)) == k {
			return g, nil
		}
	}
	return "", ErrUnknownGender
}

// ParseCategory returns the canonical spelling of category within gender
func ParseCategory(g Gender, category string) (string, error) {
	k := foldKey(category)
	for _, c := range Categories[g] {
		if foldKey(c) == k {
			return c, nil
		}
	}
	return "", ErrUnknownCategory
}
