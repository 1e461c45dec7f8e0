package company

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	SourceSeed        = "seed"
	SourceUserRequest = "user_request"
)

// Size buckets are ordinal; the literal strings are what the form offers
// and what the database stores.
const (
	SizeSmall      = "1-50 employees"
	SizeMedium     = "51-200 employees"
	SizeLarge      = "201-1000 employees"
	SizeEnterprise = "1000+ employees"
)

func ValidSize(size string) bool {
	switch size {
	case SizeSmall, SizeMedium, SizeLarge, SizeEnterprise:
		return true
	}
	return false
}

type Company struct {
	ID           uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string                      `gorm:"type:varchar(150);not null;index"`
	Industry     string                      `gorm:"type:varchar(100);not null"`
	Size         string                      `gorm:"type:varchar(50);not null"`
	Website      string                      `gorm:"type:varchar(255)"`
	LogoURL      string                      `gorm:"type:varchar(500)"`
	EmailDomains datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Source       string                      `gorm:"type:varchar(50)"`
	RequestID    *uuid.UUID                  `gorm:"type:uuid;uniqueIndex"`
	CreatedAt    time.Time                   `gorm:"not null;default:now()"`
	UpdatedAt    time.Time                   `gorm:"not null;default:now()"`
}

func (Company) TableName() string {
	return "companies"
}

// Stats maps the read-only company_stats view: per-company aggregates
// derived from reviews. Never written by application code.
type Stats struct {
	ID                 uuid.UUID                    `gorm:"type:uuid;primaryKey"`
	Name               string
	Industry           string
	Size               string
	LogoURL            string
	OverallRating      float64
	ReviewCount        int64
	RecommendationRate float64
	Dimensions         datatypes.JSONType[DimensionAverages] `gorm:"type:jsonb"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (Stats) TableName() string {
	return "company_stats"
}

// DimensionAverages mirrors the nine fixed review dimensions, averaged.
type DimensionAverages struct {
	Compensation   float64 `json:"compensation"`
	Management     float64 `json:"management"`
	Culture        float64 `json:"culture"`
	Career         float64 `json:"career"`
	Recognition    float64 `json:"recognition"`
	Environment    float64 `json:"environment"`
	Worklife       float64 `json:"worklife"`
	Cooperation    float64 `json:"cooperation"`
	BusinessHealth float64 `json:"business_health"`
}
