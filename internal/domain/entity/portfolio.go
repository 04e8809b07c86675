package entity

import "time"

// PortfolioItem is a completed project shown on the portfolio pages.
// The service category comes embedded (denormalized) in fetched payloads.
type PortfolioItem struct {
	ID                int              `json:"id"`
	Title             string           `json:"title"`
	TitleEn           string           `json:"title_en"`
	TitleAr           string           `json:"title_ar"`
	Description       string           `json:"description"`
	ServiceCategory   *ServiceCategory `json:"service_category"`
	ServiceCategoryID int              `json:"service_category_id"`
	ImageURL          string           `json:"image_url"`
	ClientType        string           `json:"client_type"`
	CompletionDate    string           `json:"completion_date"` // date only, ISO 8601
	TechnologiesUsed  []string         `json:"technologies_used"`
	ProjectDuration   string           `json:"project_duration"`
	IsFeatured        bool             `json:"is_featured"`
	IsActive          bool             `json:"is_active"`
	Order             int              `json:"order"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}
