package appraisal

import (
	"context"
	"errors"
	"fmt"

	"appraise/internal/domain/auth"
	"appraise/internal/domain/directory"
	"appraise/internal/domain/notifications"
)

type DirectoryAPI interface {
	UserRef(ctx context.Context, userID string) (directory.UserRef, error)
	GetUser(ctx context.Context, userID string) (directory.User, error)
	ListUsers(ctx context.Context, role string) ([]directory.User, error)
}

// Notifier delivers workflow notifications. Delivery is best effort and must
// never fail a transition, so there is no error return.
type Notifier interface {
	Emit(ctx context.Context, recipientID, ntype, title, message, appraisalID string)
}

type Service struct {
	store     StoreAPI
	directory DirectoryAPI
	notifier  Notifier
}

func NewService(store StoreAPI, dir DirectoryAPI, notifier Notifier) *Service {
	return &Service{store: store, directory: dir, notifier: notifier}
}

// View bundles an appraisal with its negotiation ticket, when one exists.
type View struct {
	Appraisal Appraisal          `json:"appraisal"`
	Ticket    *NegotiationTicket `json:"ticket,omitempty"`
}

// Create forms an appraisal for employeeID in the latest period. Managers may
// only appraise their own direct reports; HR admins may appraise anyone. If
// an appraisal already exists for the pair, it is returned with created set
// to false rather than duplicated.
func (s *Service) Create(ctx context.Context, actorID, employeeID string) (Appraisal, bool, error) {
	actor, err := s.directory.UserRef(ctx, actorID)
	if err != nil {
		return Appraisal{}, false, err
	}
	target, err := s.directory.UserRef(ctx, employeeID)
	if err != nil {
		return Appraisal{}, false, err
	}
	if actor.Role != auth.RoleHR && !directory.CanManage(actor, target) {
		return Appraisal{}, false, ErrForbidden
	}

	period, err := s.store.LatestPeriod(ctx)
	if err != nil {
		return Appraisal{}, false, err
	}

	existing, err := s.store.FindByEmployeeAndPeriod(ctx, employeeID, period.ID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Appraisal{}, false, err
	}

	managerID := actorID
	if actor.Role == auth.RoleHR && target.ManagerID != "" {
		managerID = target.ManagerID
	}

	a, err := s.store.InsertAppraisal(ctx, employeeID, period.ID, managerID, DefaultFinalRemarks)
	if err != nil {
		return Appraisal{}, false, err
	}
	a, err = s.store.Recalculate(ctx, a.ID)
	if err != nil {
		return Appraisal{}, false, err
	}

	name := s.displayName(ctx, employeeID)
	s.notifier.Emit(ctx, employeeID, notifications.TypeAppraisalCreated,
		"Appraisal Created",
		fmt.Sprintf("Your appraisal for %s has been submitted for HR review.", period.Title), a.ID)
	s.notifyHR(ctx, notifications.TypeAppraisalSubmitted,
		"Appraisal Awaiting Review",
		fmt.Sprintf("An appraisal for %s (%s) is awaiting an HR decision.", name, period.Title), a.ID)

	return a, true, nil
}

// Get returns an appraisal with its ticket. Visibility is limited to the
// appraised employee, the manager who formed it, and HR.
func (s *Service) Get(ctx context.Context, actorID, actorRole, appraisalID string) (View, error) {
	a, err := s.store.GetAppraisal(ctx, appraisalID)
	if err != nil {
		return View{}, err
	}
	if !canView(actorID, actorRole, a) {
		return View{}, ErrForbidden
	}
	ticket, err := s.store.TicketForAppraisal(ctx, appraisalID)
	if err != nil {
		return View{}, err
	}
	return View{Appraisal: a, Ticket: ticket}, nil
}

func (s *Service) List(ctx context.Context, actorID, actorRole string) ([]Appraisal, error) {
	switch actorRole {
	case auth.RoleHR:
		return s.store.ListAll(ctx)
	case auth.RoleTeamLeader, auth.RoleManager:
		mine, err := s.store.ListForEmployee(ctx, actorID)
		if err != nil {
			return nil, err
		}
		managed, err := s.store.ListForManager(ctx, actorID)
		if err != nil {
			return nil, err
		}
		return append(mine, managed...), nil
	default:
		return s.store.ListForEmployee(ctx, actorID)
	}
}

// Approve is the HR decision path. Only submitted appraisals can be approved;
// anything else reports ErrConflict.
func (s *Service) Approve(ctx context.Context, actorID, appraisalID string) (Appraisal, error) {
	a, err := s.store.Approve(ctx, appraisalID, actorID)
	if err != nil {
		return Appraisal{}, err
	}
	s.notifier.Emit(ctx, a.EmployeeID, notifications.TypeAppraisalApproved,
		"Appraisal Approved", "HR has approved your appraisal. You can now accept it or open a negotiation.", a.ID)
	s.notifier.Emit(ctx, a.ManagerID, notifications.TypeAppraisalApproved,
		"Appraisal Approved", fmt.Sprintf("HR has approved the appraisal you formed for %s.", s.displayName(ctx, a.EmployeeID)), a.ID)
	return a, nil
}

func (s *Service) Reject(ctx context.Context, actorID, appraisalID string) (Appraisal, error) {
	a, err := s.store.Reject(ctx, appraisalID, actorID)
	if err != nil {
		return Appraisal{}, err
	}
	s.notifier.Emit(ctx, a.EmployeeID, notifications.TypeAppraisalRejected,
		"Appraisal Rejected", "HR has rejected your appraisal. You can accept the decision or open a negotiation.", a.ID)
	s.notifier.Emit(ctx, a.ManagerID, notifications.TypeAppraisalRejected,
		"Appraisal Rejected", fmt.Sprintf("HR has rejected the appraisal you formed for %s.", s.displayName(ctx, a.EmployeeID)), a.ID)
	return a, nil
}

// Negotiate opens (or re-enters) the negotiation sub-lifecycle. Only the
// appraised employee may contest their own appraisal; HR may do it on the
// employee's behalf. Accepted appraisals are final and report ErrConflict.
func (s *Service) Negotiate(ctx context.Context, actorID, actorRole, appraisalID, reason string) (Appraisal, NegotiationTicket, error) {
	a, err := s.store.GetAppraisal(ctx, appraisalID)
	if err != nil {
		return Appraisal{}, NegotiationTicket{}, err
	}
	if a.EmployeeID != actorID && actorRole != auth.RoleHR {
		return Appraisal{}, NegotiationTicket{}, ErrForbidden
	}

	a, ticket, err := s.store.OpenNegotiation(ctx, appraisalID, actorID, reason)
	if err != nil {
		return Appraisal{}, NegotiationTicket{}, err
	}

	name := s.displayName(ctx, a.EmployeeID)
	s.notifier.Emit(ctx, a.ManagerID, notifications.TypeNegotiationRequested,
		"Negotiation Requested", fmt.Sprintf("%s has contested their appraisal.", name), a.ID)
	s.notifyHR(ctx, notifications.TypeNegotiationRequested,
		"Negotiation Requested", fmt.Sprintf("%s has contested their appraisal.", name), a.ID)
	return a, ticket, nil
}

// Accept is the employee's final sign-off. It resolves any open negotiation
// ticket in the same transaction as the status change.
func (s *Service) Accept(ctx context.Context, actorID, appraisalID string) (Appraisal, error) {
	a, err := s.store.GetAppraisal(ctx, appraisalID)
	if err != nil {
		return Appraisal{}, err
	}
	if a.EmployeeID != actorID {
		return Appraisal{}, ErrForbidden
	}

	a, ticket, err := s.store.Accept(ctx, appraisalID)
	if err != nil {
		return Appraisal{}, err
	}

	name := s.displayName(ctx, a.EmployeeID)
	if ticket != nil {
		s.notifier.Emit(ctx, a.ManagerID, notifications.TypeNegotiationResolved,
			"Negotiation Resolved", fmt.Sprintf("%s has accepted their appraisal; the negotiation is resolved.", name), a.ID)
		s.notifyHR(ctx, notifications.TypeNegotiationResolved,
			"Negotiation Resolved", fmt.Sprintf("%s has accepted their appraisal; the negotiation is resolved.", name), a.ID)
	} else {
		s.notifier.Emit(ctx, a.ManagerID, notifications.TypeAppraisalAccepted,
			"Appraisal Accepted", fmt.Sprintf("%s has accepted their appraisal.", name), a.ID)
	}
	return a, nil
}

// RefreshScores recomputes the aggregated scores on demand. Allowed for HR
// and for the manager who formed the appraisal.
func (s *Service) RefreshScores(ctx context.Context, actorID, actorRole, appraisalID string) (Appraisal, error) {
	a, err := s.store.GetAppraisal(ctx, appraisalID)
	if err != nil {
		return Appraisal{}, err
	}
	if actorRole != auth.RoleHR && a.ManagerID != actorID {
		return Appraisal{}, ErrForbidden
	}
	return s.store.Recalculate(ctx, appraisalID)
}

// UpdateScores is the HR override for scores and final remarks.
func (s *Service) UpdateScores(ctx context.Context, appraisalID string, update ScoresUpdate) (Appraisal, error) {
	return s.store.UpdateScoresAndRemarks(ctx, appraisalID, update)
}

// UpdateTicket applies HR's moderation of a negotiation ticket.
func (s *Service) UpdateTicket(ctx context.Context, appraisalID string, update TicketUpdate) (NegotiationTicket, error) {
	if update.Status != "" && !ValidTicketStatus(update.Status) {
		return NegotiationTicket{}, ErrInvalidTicketStatus
	}
	return s.store.UpdateTicket(ctx, appraisalID, update)
}

func (s *Service) CreatePeriod(ctx context.Context, actorID string, input PeriodInput) (Period, error) {
	if !input.EndDate.After(input.StartDate) {
		return Period{}, ErrInvalidPeriod
	}
	return s.store.CreatePeriod(ctx, actorID, input)
}

func (s *Service) UpdatePeriod(ctx context.Context, periodID string, input PeriodInput) (Period, error) {
	if !input.EndDate.After(input.StartDate) {
		return Period{}, ErrInvalidPeriod
	}
	return s.store.UpdatePeriod(ctx, periodID, input)
}

func (s *Service) ListPeriods(ctx context.Context) ([]Period, error) {
	return s.store.ListPeriods(ctx)
}

func canView(actorID, actorRole string, a Appraisal) bool {
	return actorRole == auth.RoleHR || a.EmployeeID == actorID || a.ManagerID == actorID
}

func (s *Service) notifyHR(ctx context.Context, ntype, title, message, appraisalID string) {
	admins, err := s.directory.ListUsers(ctx, auth.RoleHR)
	if err != nil {
		return
	}
	for _, admin := range admins {
		s.notifier.Emit(ctx, admin.ID, ntype, title, message, appraisalID)
	}
}

func (s *Service) displayName(ctx context.Context, userID string) string {
	u, err := s.directory.GetUser(ctx, userID)
	if err != nil {
		return "an employee"
	}
	return u.FullName()
}
