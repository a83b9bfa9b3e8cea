package dto

// ── home page content ──

// HeroSection landing banner
type HeroSection struct {
	Title    string `json:"title"    binding:"required,max=200"`
	Subtitle string `json:"subtitle" binding:"max=500"`
	CTAText  string `json:"cta_text" binding:"required,max=100"`
}

// Step how-it-works entry
type Step struct {
	ID          int    `json:"id"          binding:"required,min=1"`
	Title       string `json:"title"       binding:"required,max=200"`
	Description string `json:"description" binding:"max=1000"`
}

// HowItWorksSection ordered steps
type HowItWorksSection struct {
	Title string `json:"title" binding:"required,max=200"`
	Steps []Step `json:"steps" binding:"required,min=1,dive"`
}

// Rule rules list entry
type Rule struct {
	ID   int    `json:"id"   binding:"required,min=1"`
	Text string `json:"text" binding:"required,max=1000"`
}

// RulesSection program rules
type RulesSection struct {
	Title string `json:"title" binding:"required,max=200"`
	Items []Rule `json:"items" binding:"required,min=1,dive"`
}

// CallToActionSection closing banner
type CallToActionSection struct {
	Title       string `json:"title"       binding:"required,max=200"`
	Description string `json:"description" binding:"max=1000"`
	ButtonText  string `json:"button_text" binding:"required,max=100"`
}

// HomePageContent the whole landing page document
type HomePageContent struct {
	Hero         HeroSection         `json:"hero"           binding:"required"`
	HowItWorks   HowItWorksSection   `json:"how_it_works"   binding:"required"`
	Rules        RulesSection        `json:"rules"          binding:"required"`
	CallToAction CallToActionSection `json:"call_to_action" binding:"required"`
}

// ContentVersionResponse one stored version
type ContentVersionResponse struct {
	ID        string          `json:"id"`
	Content   HomePageContent `json:"content"`
	UpdatedAt string          `json:"updated_at"`
	UpdatedBy string          `json:"updated_by,omitempty"`
}
