package appraisal

import "context"

type StoreAPI interface {
	LatestPeriod(ctx context.Context) (Period, error)
	GetPeriod(ctx context.Context, periodID string) (Period, error)
	ListPeriods(ctx context.Context) ([]Period, error)
	CreatePeriod(ctx context.Context, createdBy string, input PeriodInput) (Period, error)
	UpdatePeriod(ctx context.Context, periodID string, input PeriodInput) (Period, error)

	GetAppraisal(ctx context.Context, appraisalID string) (Appraisal, error)
	FindByEmployeeAndPeriod(ctx context.Context, employeeID, periodID string) (Appraisal, error)
	ListForEmployee(ctx context.Context, employeeID string) ([]Appraisal, error)
	ListForManager(ctx context.Context, managerID string) ([]Appraisal, error)
	ListAll(ctx context.Context) ([]Appraisal, error)
	InsertAppraisal(ctx context.Context, employeeID, periodID, managerID, finalRemarks string) (Appraisal, error)
	Recalculate(ctx context.Context, appraisalID string) (Appraisal, error)

	Approve(ctx context.Context, appraisalID, approverID string) (Appraisal, error)
	Reject(ctx context.Context, appraisalID, approverID string) (Appraisal, error)
	OpenNegotiation(ctx context.Context, appraisalID, negotiatedBy, reason string) (Appraisal, NegotiationTicket, error)
	Accept(ctx context.Context, appraisalID string) (Appraisal, *NegotiationTicket, error)

	TicketForAppraisal(ctx context.Context, appraisalID string) (*NegotiationTicket, error)
	UpdateTicket(ctx context.Context, appraisalID string, update TicketUpdate) (NegotiationTicket, error)
	UpdateScoresAndRemarks(ctx context.Context, appraisalID string, update ScoresUpdate) (Appraisal, error)
}
