package dto

// ── students ──

// OrderItemDTO snapshot of a requested item
type OrderItemDTO struct {
	Name     string `json:"name"               binding:"required,max=200"`
	Category string `json:"category,omitempty" binding:"omitempty,max=50"`
	Size     string `json:"size,omitempty"     binding:"omitempty,attire_size"`
}

// CreateStudentRequest new roster entry
type CreateStudentRequest struct {
	FirstName     string         `json:"first_name"     binding:"required,max=100"`
	LastName      string         `json:"last_name"      binding:"required,max=100"`
	StudentNumber string         `json:"student_number" binding:"required,max=20"`
	Email         string         `json:"email"          binding:"required,email"`
	Status        string         `json:"status"         binding:"omitempty,student_status"`
	OrderItems    []OrderItemDTO `json:"order_items"    binding:"omitempty,dive"`
}

// UpdateStudentRequest partial update; nil fields are untouched
type UpdateStudentRequest struct {
	FirstName     *string         `json:"first_name"     binding:"omitempty,max=100"`
	LastName      *string         `json:"last_name"      binding:"omitempty,max=100"`
	StudentNumber *string         `json:"student_number" binding:"omitempty,max=20"`
	Email         *string         `json:"email"          binding:"omitempty,email"`
	Status        *string         `json:"status"         binding:"omitempty,student_status"`
	OrderItems    *[]OrderItemDTO `json:"order_items"    binding:"omitempty,dive"`
	Version       int             `json:"version"        binding:"required,min=1"`
}

// StudentListRequest list query
type StudentListRequest struct {
	PaginationRequest
	Q      string `form:"q"      binding:"omitempty,max=100"`
	Status string `form:"status" binding:"omitempty,student_status"`
}

// StudentResponse roster entry
type StudentResponse struct {
	ID            string         `json:"id"`
	FirstName     string         `json:"first_name"`
	LastName      string         `json:"last_name"`
	FullName      string         `json:"full_name"`
	StudentNumber string         `json:"student_number"`
	Email         string         `json:"email"`
	Status        string         `json:"status"`
	OrderItems    []OrderItemDTO `json:"order_items"`
	Version       int            `json:"version"`
	CreatedAt     string         `json:"created_at"`
	UpdatedAt     string         `json:"updated_at"`
}

// StudentDetailResponse student with their requests
type StudentDetailResponse struct {
	StudentResponse
	Requests []AttireRequestResponse `json:"requests"`
}
