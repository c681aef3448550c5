package appraisal

import "errors"

var (
	ErrNotFound  = errors.New("appraisal not found")
	ErrForbidden = errors.New("not allowed to act on this appraisal")
	ErrConflict  = errors.New("appraisal is not in a state that permits this transition")
	ErrNoPeriod  = errors.New("no appraisal period exists")

	ErrInvalidPeriod       = errors.New("period end date must be after its start date")
	ErrInvalidTicketStatus = errors.New("unknown negotiation ticket status")
)
