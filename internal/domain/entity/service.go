package entity

import "time"

// ServiceCategory groups services. Bilingual fields come denormalized from the API.
type ServiceCategory struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	NameEn        string    `json:"name_en"`
	NameAr        string    `json:"name_ar"`
	Description   string    `json:"description"`
	DescriptionEn string    `json:"description_en"`
	DescriptionAr string    `json:"description_ar"`
	Slug          string    `json:"slug"`
	IsActive      bool      `json:"is_active"`
	Order         int       `json:"order"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Service is a single offered service.
type Service struct {
	ID               int       `json:"id"`
	CategoryID       int       `json:"category_id"`
	CategoryName     string    `json:"category_name"`
	CategorySlug     string    `json:"category_slug"`
	Title            string    `json:"title"`
	TitleEn          string    `json:"title_en"`
	TitleAr          string    `json:"title_ar"`
	Description      string    `json:"description"`
	ShortDescription string    `json:"short_description"`
	PriceRange       string    `json:"price_range"`   // free text, e.g. "$50-100"
	DeliveryTime     string    `json:"delivery_time"` // free text, e.g. "3-5 days"
	Features         []string  `json:"features"`
	IsActive         bool      `json:"is_active"`
	Order            int       `json:"order"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
