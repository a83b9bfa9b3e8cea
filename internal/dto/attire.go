package dto

// ── attires ──

// CreateAttireRequest metadata part of the multipart create form
type CreateAttireRequest struct {
	Name     string `form:"name"     binding:"required,max=200"`
	Size     string `form:"size"     binding:"required,attire_size"`
	Gender   string `form:"gender"   binding:"required,oneof=Men Women Unisex"`
	Category string `form:"category" binding:"required,max=50"`
	Status   string `form:"status"   binding:"omitempty,attire_status"`
}

// UpdateAttireRequest metadata part of the multipart update form; image is optional
type UpdateAttireRequest struct {
	Name     *string `form:"name"     binding:"omitempty,max=200"`
	Size     *string `form:"size"     binding:"omitempty,attire_size"`
	Gender   *string `form:"gender"   binding:"omitempty,oneof=Men Women Unisex"`
	Category *string `form:"category" binding:"omitempty,max=50"`
	Status   *string `form:"status"   binding:"omitempty,attire_status"`
	Version  int     `form:"version"  binding:"required,min=1"`
}

// AttireListRequest staff list query
type AttireListRequest struct {
	PaginationRequest
	Q        string `form:"q"        binding:"omitempty,max=100"`
	Gender   string `form:"gender"   binding:"omitempty,oneof=Men Women Unisex"`
	Category string `form:"category" binding:"omitempty,max=50"`
	Size     string `form:"size"     binding:"omitempty,attire_size"`
	Status   string `form:"status"   binding:"omitempty,attire_status"`
}

// AttireResponse catalog item
type AttireResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Size      string `json:"size"`
	Gender    string `json:"gender"`
	Category  string `json:"category"`
	ImagePath string `json:"image_path"`
	ImageURL  string `json:"image_url"`
	Status    string `json:"status"`
	Version   int    `json:"version"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// CategoriesResponse allowed categories per gender
type CategoriesResponse struct {
	Sizes      []string            `json:"sizes"`
	Categories map[string][]string `json:"categories"`
}

// AvailabilityRequest window query, both bounds inclusive
type AvailabilityRequest struct {
	From string `form:"from" binding:"required,date_only"`
	To   string `form:"to"   binding:"required,date_only"`
}

// AvailabilityResponse occupied days of one attire
type AvailabilityResponse struct {
	AttireID         string   `json:"attire_id"`
	From             string   `json:"from"`
	To               string   `json:"to"`
	UnavailableDates []string `json:"unavailable_dates"`
	BufferDates      []string `json:"buffer_dates"`
}
