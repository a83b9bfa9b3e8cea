package rental

// CanSwitchOrDelete reports whether a request may point at a different attire or
// be deleted: only once the item came back, or when the student left the program.
func CanSwitchOrDelete(request Status, student StudentStatus) bool {
	return request == StatusReturned || student == StudentInactive
}
