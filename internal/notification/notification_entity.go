package notification

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	TypeCompanyApproved = "company_approved"
	TypeCompanyRejected = "company_rejected"
)

// Notifications live for 7 days from creation; after that the token
// lookup treats them as missing.
const TTL = 7 * 24 * time.Hour

// Payload is the contextual data carried by a notification. Fields are
// populated per type.
type Payload struct {
	CompanyID       string `json:"company_id,omitempty"`
	CompanyName     string `json:"company_name,omitempty"`
	RejectionReason string `json:"rejection_reason,omitempty"`
	RequestID       string `json:"request_id,omitempty"`
}

type Notification struct {
	ID            uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RecipientHash string                      `gorm:"type:varchar(64);not null;index"`
	Type          string                      `gorm:"type:varchar(50);not null"`
	Title         string                      `gorm:"type:varchar(255);not null"`
	Message       string                      `gorm:"type:text;not null"`
	Data          datatypes.JSONType[Payload] `gorm:"type:jsonb"`
	Token         string                      `gorm:"type:varchar(64);not null;uniqueIndex"`
	Read          bool                        `gorm:"not null;default:false"`
	CreatedAt     time.Time                   `gorm:"not null;default:now()"`
	ExpiresAt     time.Time                   `gorm:"not null;index"`
}

func (Notification) TableName() string {
	return "notifications"
}

func (n *Notification) Expired(now time.Time) bool {
	return now.After(n.ExpiresAt)
}

// NewToken returns an opaque 64-hex-char token. The token is the only
// address of a notification; it is never derivable from the recipient.
func NewToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		// rand.Read never fails on supported platforms
		panic(err)
	}
	return hex.EncodeToString(b)
}

// NewCompanyApproved builds the notification sent to a requester whose
// company request was approved.
func NewCompanyApproved(recipientHash, companyID, companyName, requestID string) *Notification {
	now := time.Now().UTC()
	return &Notification{
		ID:            uuid.New(),
		RecipientHash: recipientHash,
		Type:          TypeCompanyApproved,
		Title:         "Company Request Approved!",
		Message:       fmt.Sprintf("Your request to add %q has been approved. You can now submit your review.", companyName),
		Data: datatypes.NewJSONType(Payload{
			CompanyID:   companyID,
			CompanyName: companyName,
			RequestID:   requestID,
		}),
		Token:     NewToken(),
		CreatedAt: now,
		ExpiresAt: now.Add(TTL),
	}
}

// NewCompanyRejected builds the notification sent to a requester whose
// company request was rejected, carrying the reason.
func NewCompanyRejected(recipientHash, companyName, rejectionReason, requestID string) *Notification {
	now := time.Now().UTC()
	return &Notification{
		ID:            uuid.New(),
		RecipientHash: recipientHash,
		Type:          TypeCompanyRejected,
		Title:         "Company Request Update",
		Message:       fmt.Sprintf("Your request to add %q could not be approved. Reason: %s", companyName, rejectionReason),
		Data: datatypes.NewJSONType(Payload{
			CompanyName:     companyName,
			RejectionReason: rejectionReason,
			RequestID:       requestID,
		}),
		Token:     NewToken(),
		CreatedAt: now,
		ExpiresAt: now.Add(TTL),
	}
}
