package review

import "time"

type SubmitReviewRequest struct {
	CompanyID      string     `json:"company_id" binding:"required"`
	OverallRating  int        `json:"overall_rating" binding:"required,min=1,max=5"`
	Recommendation string     `json:"recommendation" binding:"required"`
	Role           string     `json:"role"`
	Period         string     `json:"period"`
	Pros           []string   `json:"pros"`
	Cons           []string   `json:"cons"`
	Advice         string     `json:"advice"`
	Dimensions     Dimensions `json:"dimensions" binding:"required"`
}

type ReviewResponse struct {
	ID             string     `json:"id"`
	CompanyID      string     `json:"company_id"`
	OverallRating  int        `json:"overall_rating"`
	Recommendation string     `json:"recommendation"`
	Role           string     `json:"role,omitempty"`
	Period         string     `json:"period,omitempty"`
	Pros           []string   `json:"pros"`
	Cons           []string   `json:"cons"`
	Advice         string     `json:"advice,omitempty"`
	Dimensions     Dimensions `json:"dimensions"`
	HelpfulCount   int        `json:"helpful_count"`
	CreatedAt      time.Time  `json:"created_at"`
}

// ListFilters mirror the review list controls: minimum overall rating,
// recommendation tri-state, sort order, pagination.
type ListFilters struct {
	MinRating      int
	Recommendation string
	SortBy         string
	Limit          int
	Offset         int
}

const (
	SortRecent     = "recent"
	SortRatingHigh = "rating-high"
	SortRatingLow  = "rating-low"
	SortHelpful    = "helpful"
)
