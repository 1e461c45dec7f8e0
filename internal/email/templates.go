package email

import (
	"fmt"
	"strings"
)

// RenderedEmail is a fully assembled message ready for the transport.
type RenderedEmail struct {
	Subject  string
	HTMLBody string
	TextBody string
}

// Render produces the subject and body for a queued email request. The
// notification link points the recipient at the token-addressed
// notification page.
func Render(req EmailRequest, appURL string) (RenderedEmail, error) {
	link := notificationLink(appURL, req.NotificationToken)

	switch req.EmailType {
	case TypeCompanyApproved:
		subject := fmt.Sprintf("Great News! %s has been added to TruPlace", req.CompanyName)
		text := fmt.Sprintf(
			"Your request to add %s has been approved.\n\n"+
				"The company is now live and ready for reviews. View the details here:\n%s\n\n"+
				"Thank you for helping the community grow.",
			req.CompanyName, link,
		)
		html := fmt.Sprintf(
			`<p>Your request to add <strong>%s</strong> has been approved.</p>`+
				`<p>The company is now live and ready for reviews.</p>`+
				`<p><a href=%q>View the details</a></p>`+
				`<p>Thank you for helping the community grow.</p>`,
			req.CompanyName, link,
		)
		return RenderedEmail{Subject: subject, HTMLBody: html, TextBody: text}, nil

	case TypeCompanyRejected:
		subject := fmt.Sprintf("Update on Your Company Request - %s", req.CompanyName)
		text := fmt.Sprintf(
			"Your request to add %s could not be approved.\n\n"+
				"Reason: %s\n\n"+
				"Details are available here:\n%s\n\n"+
				"You are welcome to submit a new request with updated information.",
			req.CompanyName, req.RejectionReason, link,
		)
		html := fmt.Sprintf(
			`<p>Your request to add <strong>%s</strong> could not be approved.</p>`+
				`<p>Reason: %s</p>`+
				`<p><a href=%q>View the details</a></p>`+
				`<p>You are welcome to submit a new request with updated information.</p>`,
			req.CompanyName, req.RejectionReason, link,
		)
		return RenderedEmail{Subject: subject, HTMLBody: html, TextBody: text}, nil

	default:
		return RenderedEmail{}, fmt.Errorf("unknown email type %q", req.EmailType)
	}
}

func notificationLink(appURL, token string) string {
	return fmt.Sprintf("%s/notification/%s", strings.TrimRight(appURL, "/"), token)
}
