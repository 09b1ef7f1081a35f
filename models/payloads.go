package models

// Request payloads for the admin and public APIs. They are validated by the
// services with go-playground/validator, so they carry `validate` tags rather
// than gin `binding` tags.

// NavbarCategoryPayload creates or replaces a navbar category.
// Slug is optional; when empty it is derived from Name.
type NavbarCategoryPayload struct {
	Name        string `json:"name" validate:"required,max=100"`
	Slug        string `json:"slug" validate:"max=120"`
	Description string `json:"description" validate:"max=1000"`
	Order       int    `json:"order" validate:"gte=0"`
	IsActive    *bool  `json:"isActive"`
}

type CategoryPayload struct {
	Name           string `json:"name" validate:"required,max=100"`
	Slug           string `json:"slug" validate:"max=120"`
	NavbarCategory string `json:"navbarCategory" validate:"required,mongodb"`
	Description    string `json:"description" validate:"max=2000"`
	Image          string `json:"image" validate:"max=500"`
	IsActive       *bool  `json:"isActive"`
}

type SubCategoryPayload struct {
	Name        string `json:"name" validate:"required,max=100"`
	Slug        string `json:"slug" validate:"max=120"`
	Category    string `json:"category" validate:"required,mongodb"`
	Description string `json:"description" validate:"max=2000"`
	Image       string `json:"image" validate:"max=500"`
	IsActive    *bool  `json:"isActive"`
}

type ProductPayload struct {
	Name           string   `json:"name" validate:"required,max=200"`
	Slug           string   `json:"slug" validate:"max=220"`
	Description    string   `json:"description" validate:"max=5000"`
	KeyFeatures    []string `json:"keyFeatures" validate:"max=50,dive,max=300"`
	Image1         string   `json:"image1" validate:"required,max=500"`
	Image2         string   `json:"image2" validate:"max=500"`
	Image3         string   `json:"image3" validate:"max=500"`
	Image4         string   `json:"image4" validate:"max=500"`
	NavbarCategory string   `json:"navbarCategory" validate:"required,mongodb"`
	Category       string   `json:"category" validate:"required,mongodb"`
	SubCategory    string   `json:"subcategory" validate:"omitempty,mongodb"`
	IsActive       *bool    `json:"isActive"`
}

// ContactPayload is what the public contact form posts.
type ContactPayload struct {
	FullName string `json:"fullName" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Phone    string `json:"phone" validate:"required,max=30"`
	Company  string `json:"company" validate:"max=100"`
	Service  string `json:"service" validate:"required"`
	Subject  string `json:"subject" validate:"required,max=200"`
	Message  string `json:"message" validate:"required,max=5000"`
	Source   string `json:"source" validate:"max=50"`
}

// ContactUpdatePayload is a partial admin update; nil fields are left unchanged.
type ContactUpdatePayload struct {
	Status   *string `json:"status"`
	Priority *string `json:"priority"`
	IsRead   *bool   `json:"isRead"`
}

// BulkContactPayload applies one action to many contacts.
type BulkContactPayload struct {
	IDs    []string `json:"ids" validate:"required,min=1,max=500,dive,mongodb"`
	Status string   `json:"status"`
}

// LoginPayload is the admin login form.
type LoginPayload struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
