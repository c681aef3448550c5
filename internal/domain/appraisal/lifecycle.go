package appraisal

// Lifecycle guards. Creation enters at "submitted"; approve/reject are HR
// decisions on submitted appraisals; negotiation stays open until the
// employee accepts. Out-of-order transitions surface ErrConflict.

func CanApprove(status string) bool {
	return status == StatusSubmitted
}

func CanReject(status string) bool {
	return status == StatusSubmitted
}

func CanNegotiate(status string) bool {
	return status != StatusAccepted
}

// CanAccept requires a decided appraisal: a fresh submission cannot be
// short-circuited to accepted before HR has looked at it.
func CanAccept(status string) bool {
	switch status {
	case StatusApproved, StatusRejected, StatusNegotiation:
		return true
	default:
		return false
	}
}

func ValidTicketStatus(status string) bool {
	for _, candidate := range TicketStatuses {
		if candidate == status {
			return true
		}
	}
	return false
}
