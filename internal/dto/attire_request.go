package dto

// ── attire requests ──

// CreateAttireRequestRequest new booking
type CreateAttireRequestRequest struct {
	StudentID  string `json:"student_id"  binding:"required,uuid"`
	AttireID   string `json:"attire_id"   binding:"required,uuid"`
	StartDate  string `json:"start_date"  binding:"required,date_only"`
	EndDate    string `json:"end_date"    binding:"required,date_only"`
	Status     string `json:"status"      binding:"omitempty,rental_status"`
	BufferDays *int   `json:"buffer_days"`
	Notes      string `json:"notes"       binding:"omitempty,max=500"`
}

// AttireRequestListRequest list query
type AttireRequestListRequest struct {
	PaginationRequest
	Status    string `form:"status"     binding:"omitempty,rental_status"`
	StudentID string `form:"student_id" binding:"omitempty,uuid"`
	AttireID  string `form:"attire_id"  binding:"omitempty,uuid"`
	From      string `form:"from"       binding:"omitempty,date_only"`
	To        string `form:"to"         binding:"omitempty,date_only"`
}

// UpdateStatusRequest status transition
type UpdateStatusRequest struct {
	Status  string `json:"status"  binding:"required,rental_status"`
	Version int    `json:"version" binding:"required,min=1"`
}

// UpdateBufferRequest cleaning buffer change; negative values are clamped to 0
type UpdateBufferRequest struct {
	BufferDays *int `json:"buffer_days" binding:"required"`
	Version    int  `json:"version"     binding:"required,min=1"`
}

// SwitchAttireRequest move a booking to another attire
type SwitchAttireRequest struct {
	AttireID string `json:"attire_id" binding:"required,uuid"`
	Version  int    `json:"version"   binding:"required,min=1"`
}

// AttireRequestResponse booking row
type AttireRequestResponse struct {
	ID                string        `json:"id"`
	StudentID         string        `json:"student_id"`
	AttireID          string        `json:"attire_id"`
	StartDate         string        `json:"start_date"`
	EndDate           string        `json:"end_date"`
	Status            string        `json:"status"`
	BadgeColor        string        `json:"badge_color"`
	BufferDays        int           `json:"buffer_days"`
	BufferUntil       string        `json:"buffer_until"`
	CanSwitchOrDelete bool          `json:"can_switch_or_delete"`
	Notes             string        `json:"notes,omitempty"`
	Version           int           `json:"version"`
	BufferConflict    bool          `json:"buffer_conflict,omitempty"`
	Student           *StudentBrief `json:"student,omitempty"`
	Attire            *AttireBrief  `json:"attire,omitempty"`
	CreatedAt         string        `json:"created_at"`
}

// StudentBrief joined student fields
type StudentBrief struct {
	ID            string `json:"id"`
	FullName      string `json:"full_name"`
	StudentNumber string `json:"student_number"`
	Email         string `json:"email"`
	Status        string `json:"status"`
}

// AttireBrief joined attire fields
type AttireBrief struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Size     string `json:"size"`
	Category string `json:"category"`
	ImageURL string `json:"image_url"`
}

// BufferUpdateResponse result of a buffer change.
// Version is the row version once the write has landed; send it with the next edit
// whether or not the write is still queued.
type BufferUpdateResponse struct {
	ID          string `json:"id"`
	BufferDays  int    `json:"buffer_days"`
	BufferUntil string `json:"buffer_until"`
	Version     int    `json:"version"`
	Queued      bool   `json:"queued"`
}
