package request

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// CompanyRequest is a user's proposal to add a company to the catalog.
// It moves pending -> approved or pending -> rejected exactly once; a
// decided request is immutable.
type CompanyRequest struct {
	ID              uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RequesterHash   string                      `gorm:"type:varchar(64);not null;index"`
	RequesterEmail  string                      `gorm:"type:varchar(255);not null"`
	Name            string                      `gorm:"type:varchar(150);not null"`
	Industry        string                      `gorm:"type:varchar(100);not null"`
	Size            string                      `gorm:"type:varchar(50);not null"`
	Website         string                      `gorm:"type:varchar(255)"`
	EmailDomains    datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Description     string                      `gorm:"type:text"`
	Justification   string                      `gorm:"type:text"`
	Status          string                      `gorm:"type:varchar(20);not null;default:'pending';index"`
	AdminNotes      *string                     `gorm:"type:text"`
	RejectionReason *string                     `gorm:"type:text"`
	ReviewedAt      *time.Time
	ReviewedBy      *uuid.UUID `gorm:"type:uuid"`
	CreatedAt       time.Time  `gorm:"not null;default:now()"`
	UpdatedAt       time.Time  `gorm:"not null;default:now()"`
}

func (CompanyRequest) TableName() string {
	return "company_requests"
}

// HashEmail derives the stable anonymous identifier for a requester.
// The raw email is kept only for the approval/rejection email itself.
func HashEmail(email string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(email))))
	return hex.EncodeToString(sum[:])
}
