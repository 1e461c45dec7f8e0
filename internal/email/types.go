package email

// Topic carries queued email requests from the API (via the outbox) to
// the delivery consumer.
const Topic = "truplace.emails"

const (
	TypeCompanyApproved = "company_approved"
	TypeCompanyRejected = "company_rejected"
)

// EmailRequest is the message published for every email the system
// wants delivered. Delivery is asynchronous; no API response ever waits
// on it.
type EmailRequest struct {
	RecipientEmail    string `json:"recipient_email"`
	RecipientName     string `json:"recipient_name,omitempty"`
	EmailType         string `json:"email_type"`
	CompanyName       string `json:"company_name"`
	NotificationToken string `json:"notification_token,omitempty"`
	RejectionReason   string `json:"rejection_reason,omitempty"`
}

type EmailResult struct {
	Success   bool   `json:"success"`
	MessageID string `json:"message_id,omitempty"`
	Error     string `json:"error,omitempty"`
}
