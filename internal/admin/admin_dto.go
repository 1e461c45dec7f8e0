package admin

// StatsResponse is the moderation dashboard summary.
type StatsResponse struct {
	PendingRequests  int64 `json:"pending_requests"`
	ApprovedRequests int64 `json:"approved_requests"`
	RejectedRequests int64 `json:"rejected_requests"`
	TotalCompanies   int64 `json:"total_companies"`
	TotalReviews     int64 `json:"total_reviews"`
}
