package dto

// ── notifications ──

// SendEmailRequest templated email to a student
type SendEmailRequest struct {
	To             string `json:"to"              binding:"required,email"`
	Template       string `json:"template"        binding:"required,oneof=request_received ready_for_pickup return_reminder"`
	StudentName    string `json:"student_name"    binding:"required,max=200"`
	AttireName     string `json:"attire_name"     binding:"required,max=200"`
	StartDate      string `json:"start_date"      binding:"required,date_only"`
	EndDate        string `json:"end_date"        binding:"required,date_only"`
	PickupLocation string `json:"pickup_location" binding:"omitempty,max=200"`
}

// SendEmailResponse delivery outcome
type SendEmailResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
