package dto

// ── calendar ──

// CalendarMonthRequest month view query
type CalendarMonthRequest struct {
	Year      int    `form:"year"       binding:"required,min=1970,max=9999"`
	Month     int    `form:"month"      binding:"required,min=1,max=12"`
	Status    string `form:"status"     binding:"omitempty,rental_status"`
	StudentID string `form:"student_id" binding:"omitempty,uuid"`
	AttireID  string `form:"attire_id"  binding:"omitempty,uuid"`
}

// CalendarFilterRequest filters shared by ICS and export
type CalendarFilterRequest struct {
	Status    string `form:"status"     binding:"omitempty,rental_status"`
	StudentID string `form:"student_id" binding:"omitempty,uuid"`
	AttireID  string `form:"attire_id"  binding:"omitempty,uuid"`
	From      string `form:"from"       binding:"omitempty,date_only"`
	To        string `form:"to"         binding:"omitempty,date_only"`
}

// CalendarEventResponse one chip in a day cell
type CalendarEventResponse struct {
	RequestID   string `json:"request_id"`
	Kind        string `json:"kind"` // rental | buffer
	Status      string `json:"status"`
	BadgeColor  string `json:"badge_color"`
	StudentID   string `json:"student_id"`
	StudentName string `json:"student_name"`
	AttireID    string `json:"attire_id"`
	AttireName  string `json:"attire_name"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	BufferUntil string `json:"buffer_until"`
}

// CalendarDayResponse one grid cell
type CalendarDayResponse struct {
	Date    string                  `json:"date"`
	InMonth bool                    `json:"in_month"`
	IsToday bool                    `json:"is_today"`
	Events  []CalendarEventResponse `json:"events"`
	Total   int                     `json:"total"`
	More    int                     `json:"more"`
}

// CalendarMonthResponse 6x7 month grid
type CalendarMonthResponse struct {
	Year  int                   `json:"year"`
	Month int                   `json:"month"`
	Title string                `json:"title"`
	Prev  string                `json:"prev"` // YYYY-MM
	Next  string                `json:"next"`
	Days  []CalendarDayResponse `json:"days"`
}
