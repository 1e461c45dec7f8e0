package review

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Recommendation tri-state.
const (
	RecommendationHigh  = "highly-recommend"
	RecommendationMaybe = "maybe"
	RecommendationNo    = "not-recommended"
)

func ValidRecommendation(r string) bool {
	switch r {
	case RecommendationHigh, RecommendationMaybe, RecommendationNo:
		return true
	}
	return false
}

// Dimensions is the fixed 9-dimension rating vector, each 1-5.
type Dimensions struct {
	Compensation   int `json:"compensation" binding:"required,min=1,max=5"`
	Management     int `json:"management" binding:"required,min=1,max=5"`
	Culture        int `json:"culture" binding:"required,min=1,max=5"`
	Career         int `json:"career" binding:"required,min=1,max=5"`
	Recognition    int `json:"recognition" binding:"required,min=1,max=5"`
	Environment    int `json:"environment" binding:"required,min=1,max=5"`
	Worklife       int `json:"worklife" binding:"required,min=1,max=5"`
	Cooperation    int `json:"cooperation" binding:"required,min=1,max=5"`
	BusinessHealth int `json:"business_health" binding:"required,min=1,max=5"`
}

// Review is write-once; helpful_count is the only column mutated after
// insert.
type Review struct {
	ID             uuid.UUID                      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID      uuid.UUID                      `gorm:"type:uuid;not null;index"`
	UserID         uuid.UUID                      `gorm:"type:uuid;not null;index"`
	OverallRating  int                            `gorm:"not null"`
	Recommendation string                         `gorm:"type:varchar(30);not null"`
	Role           string                         `gorm:"type:varchar(100)"`
	Period         string                         `gorm:"type:varchar(50)"`
	Pros           datatypes.JSONSlice[string]    `gorm:"type:jsonb"`
	Cons           datatypes.JSONSlice[string]    `gorm:"type:jsonb"`
	Advice         string                         `gorm:"type:text"`
	Dimensions     datatypes.JSONType[Dimensions] `gorm:"type:jsonb;not null"`
	HelpfulCount   int                            `gorm:"not null;default:0"`
	CreatedAt      time.Time                      `gorm:"not null;default:now()"`
}

func (Review) TableName() string {
	return "reviews"
}
