package request

import "time"

type SubmitRequest struct {
	Name          string   `json:"name" binding:"required,min=2,max=100"`
	Industry      string   `json:"industry" binding:"required,min=2,max=100"`
	Size          string   `json:"size" binding:"required"`
	Website       string   `json:"website" binding:"omitempty,max=255"`
	EmailDomains  []string `json:"email_domains" binding:"required,min=1,max=10,dive,hostname"`
	Description   string   `json:"description" binding:"omitempty,max=500"`
	Justification string   `json:"justification" binding:"omitempty,max=300"`
}

type CheckDuplicatesRequest struct {
	Name    string `json:"name" binding:"required"`
	Website string `json:"website"`
}

// DuplicateCompany is an existing catalog entry that looks similar to a
// proposed one. Similarity is in [0,1].
type DuplicateCompany struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Industry   string  `json:"industry"`
	Similarity float64 `json:"similarity"`
}

type CheckDuplicatesResponse struct {
	Matches   []DuplicateCompany `json:"matches"`
	MoreCount int                `json:"more_count"`
}

type ApproveRequest struct {
	AdminNotes string `json:"admin_notes" binding:"omitempty,max=2000"`

	// Optional overrides applied to the created company instead of the
	// requester's proposed values.
	Name         string   `json:"name" binding:"omitempty,min=2,max=100"`
	Industry     string   `json:"industry" binding:"omitempty,min=2,max=100"`
	Size         string   `json:"size" binding:"omitempty"`
	Website      string   `json:"website" binding:"omitempty,max=255"`
	EmailDomains []string `json:"email_domains" binding:"omitempty,max=10,dive,hostname"`
}

type RejectRequest struct {
	Reason     string `json:"reason" binding:"required"`
	AdminNotes string `json:"admin_notes" binding:"omitempty,max=2000"`
}

type RequestResponse struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Industry        string     `json:"industry"`
	Size            string     `json:"size"`
	Website         string     `json:"website,omitempty"`
	EmailDomains    []string   `json:"email_domains,omitempty"`
	Description     string     `json:"description,omitempty"`
	Justification   string     `json:"justification,omitempty"`
	Status          string     `json:"status"`
	AdminNotes      *string    `json:"admin_notes,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// ApproveResponse carries the decided request together with the company
// it produced.
type ApproveResponse struct {
	Request   RequestResponse `json:"request"`
	CompanyID string          `json:"company_id"`
}

type ListFilters struct {
	Status   string
	Industry string
	Limit    int
	Offset   int
}
