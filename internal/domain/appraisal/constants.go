package appraisal

const (
	StatusSubmitted   = "submitted"
	StatusApproved    = "approved"
	StatusRejected    = "rejected"
	StatusNegotiation = "negotiation"
	StatusAccepted    = "accepted"

	TicketOpen     = "open"
	TicketInReview = "in_review"
	TicketResolved = "resolved"
	TicketClosed   = "closed"
)

var TicketStatuses = []string{TicketOpen, TicketInReview, TicketResolved, TicketClosed}

const DefaultFinalRemarks = "Generated automatically based on performance ratings."

func StatusLabel(status string) string {
	switch status {
	case StatusSubmitted:
		return "Submitted"
	case StatusApproved:
		return "Approved"
	case StatusRejected:
		return "Rejected"
	case StatusNegotiation:
		return "Under Negotiation"
	case StatusAccepted:
		return "Accepted"
	default:
		return status
	}
}
