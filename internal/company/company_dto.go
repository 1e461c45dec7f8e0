package company

import "time"

type CompanyResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Industry     string    `json:"industry"`
	Size         string    `json:"size"`
	Website      string    `json:"website,omitempty"`
	LogoURL      string    `json:"logo_url,omitempty"`
	EmailDomains []string  `json:"email_domains,omitempty"`
	Source       string    `json:"source,omitempty"`
	RequestID    string    `json:"request_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type StatsResponse struct {
	ID                 string            `json:"id"`
	Name               string            `json:"name"`
	Industry           string            `json:"industry"`
	Size               string            `json:"size"`
	LogoURL            string            `json:"logo_url,omitempty"`
	OverallRating      float64           `json:"overall_rating"`
	ReviewCount        int64             `json:"review_count"`
	RecommendationRate float64           `json:"recommendation_rate"`
	Dimensions         DimensionAverages `json:"dimensions"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

type SearchResult struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Industry string `json:"industry"`
	Size     string `json:"size"`
}

type UpdateCompanyRequest struct {
	Name         string   `json:"name"`
	Industry     string   `json:"industry"`
	Size         string   `json:"size"`
	Website      string   `json:"website"`
	EmailDomains []string `json:"email_domains"`
}

type LogoUploadResponse struct {
	LogoURL string `json:"logo_url"`
}
