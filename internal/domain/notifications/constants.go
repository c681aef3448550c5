package notifications

const (
	TypeAppraisalCreated     = "appraisal_created"
	TypeAppraisalSubmitted   = "appraisal_submitted"
	TypeAppraisalApproved    = "appraisal_approved"
	TypeAppraisalRejected    = "appraisal_rejected"
	TypeAppraisalAccepted    = "appraisal_accepted"
	TypeNegotiationRequested = "negotiation_requested"
	TypeNegotiationResolved  = "negotiation_resolved"
)
