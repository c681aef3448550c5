package appraisal

import "time"

type Period struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	IsActive  bool      `json:"isActive"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

type PeriodInput struct {
	Title     string
	StartDate time.Time
	EndDate   time.Time
	IsActive  bool
}

type Appraisal struct {
	ID                  string    `json:"id"`
	EmployeeID          string    `json:"employeeId"`
	PeriodID            string    `json:"periodId"`
	ManagerID           string    `json:"managerId"`
	OverallPercentage   float64   `json:"overallPercentage"`
	TaskCompletionScore float64   `json:"taskCompletionScore"`
	QualityScore        float64   `json:"qualityScore"`
	TimelinessScore     float64   `json:"timelinessScore"`
	Status              string    `json:"status"`
	FinalRemarks        string    `json:"finalRemarks"`
	HRApproved          bool      `json:"hrApproved"`
	HRApprovedBy        string    `json:"hrApprovedBy,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

type NegotiationTicket struct {
	ID              string     `json:"id"`
	AppraisalID     string     `json:"appraisalId"`
	NegotiatedBy    string     `json:"negotiatedBy,omitempty"`
	EmployeeReason  string     `json:"employeeReason"`
	ManagerResponse string     `json:"managerResponse,omitempty"`
	HRDecision      string     `json:"hrDecision,omitempty"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"createdAt"`
	ResolvedAt      *time.Time `json:"resolvedAt,omitempty"`
}

// TicketUpdate carries the HR-settable ticket fields; empty strings leave the
// stored value unchanged.
type TicketUpdate struct {
	Status          string
	ManagerResponse string
	HRDecision      string
}

// ScoresUpdate is the HR score/remarks override.
type ScoresUpdate struct {
	OverallPercentage   float64
	TaskCompletionScore float64
	QualityScore        float64
	TimelinessScore     float64
	FinalRemarks        string
}
