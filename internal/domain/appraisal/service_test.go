package appraisal

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"appraise/internal/domain/auth"
	"appraise/internal/domain/directory"
)

type fakeDirectory struct {
	users map[string]directory.User
}

func (f *fakeDirectory) UserRef(_ context.Context, userID string) (directory.UserRef, error) {
	u, ok := f.users[userID]
	if !ok {
		return directory.UserRef{}, directory.ErrNotFound
	}
	return directory.UserRef{ID: u.ID, Role: u.Role, ManagerID: u.ManagerID}, nil
}

func (f *fakeDirectory) GetUser(_ context.Context, userID string) (directory.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return directory.User{}, directory.ErrNotFound
	}
	return u, nil
}

func (f *fakeDirectory) ListUsers(_ context.Context, role string) ([]directory.User, error) {
	var out []directory.User
	for _, u := range f.users {
		if role == "" || u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeStore struct {
	nextID     int
	period     *Period
	appraisals map[string]*Appraisal
	tickets    map[string]*NegotiationTicket
	samples    map[string][]RatingSample
	tasks      map[string][2]int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		appraisals: map[string]*Appraisal{},
		tickets:    map[string]*NegotiationTicket{},
		samples:    map[string][]RatingSample{},
		tasks:      map[string][2]int{},
	}
}

func (f *fakeStore) id() string {
	f.nextID++
	return fmt.Sprintf("id-%d", f.nextID)
}

func (f *fakeStore) LatestPeriod(context.Context) (Period, error) {
	if f.period == nil {
		return Period{}, ErrNoPeriod
	}
	return *f.period, nil
}

func (f *fakeStore) GetPeriod(_ context.Context, periodID string) (Period, error) {
	if f.period == nil || f.period.ID != periodID {
		return Period{}, ErrNotFound
	}
	return *f.period, nil
}

func (f *fakeStore) ListPeriods(context.Context) ([]Period, error) {
	if f.period == nil {
		return nil, nil
	}
	return []Period{*f.period}, nil
}

func (f *fakeStore) CreatePeriod(_ context.Context, createdBy string, input PeriodInput) (Period, error) {
	p := Period{ID: f.id(), Title: input.Title, StartDate: input.StartDate, EndDate: input.EndDate, IsActive: input.IsActive, CreatedBy: createdBy}
	f.period = &p
	return p, nil
}

func (f *fakeStore) UpdatePeriod(_ context.Context, periodID string, input PeriodInput) (Period, error) {
	if f.period == nil || f.period.ID != periodID {
		return Period{}, ErrNotFound
	}
	f.period.Title = input.Title
	f.period.StartDate = input.StartDate
	f.period.EndDate = input.EndDate
	f.period.IsActive = input.IsActive
	return *f.period, nil
}

func (f *fakeStore) GetAppraisal(_ context.Context, appraisalID string) (Appraisal, error) {
	a, ok := f.appraisals[appraisalID]
	if !ok {
		return Appraisal{}, ErrNotFound
	}
	return *a, nil
}

func (f *fakeStore) FindByEmployeeAndPeriod(_ context.Context, employeeID, periodID string) (Appraisal, error) {
	for _, a := range f.appraisals {
		if a.EmployeeID == employeeID && a.PeriodID == periodID {
			return *a, nil
		}
	}
	return Appraisal{}, ErrNotFound
}

func (f *fakeStore) ListForEmployee(_ context.Context, employeeID string) ([]Appraisal, error) {
	var out []Appraisal
	for _, a := range f.appraisals {
		if a.EmployeeID == employeeID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeStore) ListForManager(_ context.Context, managerID string) ([]Appraisal, error) {
	var out []Appraisal
	for _, a := range f.appraisals {
		if a.ManagerID == managerID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeStore) ListAll(context.Context) ([]Appraisal, error) {
	var out []Appraisal
	for _, a := range f.appraisals {
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeStore) InsertAppraisal(_ context.Context, employeeID, periodID, managerID, finalRemarks string) (Appraisal, error) {
	a := &Appraisal{ID: f.id(), EmployeeID: employeeID, PeriodID: periodID, ManagerID: managerID, Status: StatusSubmitted, FinalRemarks: finalRemarks}
	f.appraisals[a.ID] = a
	return *a, nil
}

func (f *fakeStore) Recalculate(_ context.Context, appraisalID string) (Appraisal, error) {
	a, ok := f.appraisals[appraisalID]
	if !ok {
		return Appraisal{}, ErrNotFound
	}
	counts := f.tasks[a.EmployeeID]
	scores := ComputeScores(f.samples[a.EmployeeID], counts[0], counts[1])
	a.OverallPercentage = scores.OverallPercentage
	a.TaskCompletionScore = scores.TaskCompletionScore
	a.QualityScore = scores.QualityScore
	a.TimelinessScore = scores.TimelinessScore
	return *a, nil
}

func (f *fakeStore) Approve(_ context.Context, appraisalID, approverID string) (Appraisal, error) {
	return f.decide(appraisalID, approverID, StatusApproved)
}

func (f *fakeStore) Reject(_ context.Context, appraisalID, approverID string) (Appraisal, error) {
	return f.decide(appraisalID, approverID, StatusRejected)
}

func (f *fakeStore) decide(appraisalID, approverID, status string) (Appraisal, error) {
	a, ok := f.appraisals[appraisalID]
	if !ok {
		return Appraisal{}, ErrNotFound
	}
	if !CanApprove(a.Status) {
		return Appraisal{}, ErrConflict
	}
	a.Status = status
	a.HRApproved = status == StatusApproved
	a.HRApprovedBy = approverID
	return *a, nil
}

func (f *fakeStore) OpenNegotiation(_ context.Context, appraisalID, negotiatedBy, reason string) (Appraisal, NegotiationTicket, error) {
	a, ok := f.appraisals[appraisalID]
	if !ok {
		return Appraisal{}, NegotiationTicket{}, ErrNotFound
	}
	if !CanNegotiate(a.Status) {
		return Appraisal{}, NegotiationTicket{}, ErrConflict
	}
	t, ok := f.tickets[appraisalID]
	if !ok {
		t = &NegotiationTicket{ID: f.id(), AppraisalID: appraisalID, NegotiatedBy: negotiatedBy, EmployeeReason: reason, Status: TicketOpen}
		f.tickets[appraisalID] = t
	}
	a.Status = StatusNegotiation
	return *a, *t, nil
}

func (f *fakeStore) Accept(_ context.Context, appraisalID string) (Appraisal, *NegotiationTicket, error) {
	a, ok := f.appraisals[appraisalID]
	if !ok {
		return Appraisal{}, nil, ErrNotFound
	}
	if !CanAccept(a.Status) {
		return Appraisal{}, nil, ErrConflict
	}
	a.Status = StatusAccepted
	t, ok := f.tickets[appraisalID]
	if ok && t.ResolvedAt == nil {
		now := time.Now()
		t.Status = TicketResolved
		t.ResolvedAt = &now
		resolved := *t
		return *a, &resolved, nil
	}
	return *a, nil, nil
}

func (f *fakeStore) TicketForAppraisal(_ context.Context, appraisalID string) (*NegotiationTicket, error) {
	t, ok := f.tickets[appraisalID]
	if !ok {
		return nil, nil
	}
	clone := *t
	return &clone, nil
}

func (f *fakeStore) UpdateTicket(_ context.Context, appraisalID string, update TicketUpdate) (NegotiationTicket, error) {
	t, ok := f.tickets[appraisalID]
	if !ok {
		return NegotiationTicket{}, ErrNotFound
	}
	if update.Status != "" {
		t.Status = update.Status
	}
	if update.ManagerResponse != "" {
		t.ManagerResponse = update.ManagerResponse
	}
	if update.HRDecision != "" {
		t.HRDecision = update.HRDecision
	}
	return *t, nil
}

func (f *fakeStore) UpdateScoresAndRemarks(_ context.Context, appraisalID string, update ScoresUpdate) (Appraisal, error) {
	a, ok := f.appraisals[appraisalID]
	if !ok {
		return Appraisal{}, ErrNotFound
	}
	a.OverallPercentage = update.OverallPercentage
	a.TaskCompletionScore = update.TaskCompletionScore
	a.QualityScore = update.QualityScore
	a.TimelinessScore = update.TimelinessScore
	if update.FinalRemarks != "" {
		a.FinalRemarks = update.FinalRemarks
	}
	return *a, nil
}

type recordingNotifier struct {
	events []string
}

func (n *recordingNotifier) Emit(_ context.Context, recipientID, ntype, _, _, _ string) {
	n.events = append(n.events, recipientID+":"+ntype)
}

func testFixture() (*Service, *fakeStore, *recordingNotifier) {
	dir := &fakeDirectory{users: map[string]directory.User{
		"emp":  {ID: "emp", Username: "emp", FirstName: "Eva", LastName: "Lund", Role: auth.RoleEmployee, ManagerID: "lead"},
		"lead": {ID: "lead", Username: "lead", FirstName: "Liam", LastName: "Ng", Role: auth.RoleTeamLeader, ManagerID: "mgr"},
		"mgr":  {ID: "mgr", Username: "mgr", FirstName: "Mona", LastName: "Iri", Role: auth.RoleManager},
		"hr":   {ID: "hr", Username: "hr", FirstName: "Hana", LastName: "Ro", Role: auth.RoleHR},
	}}
	store := newFakeStore()
	store.period = &Period{ID: "p1", Title: "H1 2026"}
	notifier := &recordingNotifier{}
	return NewService(store, dir, notifier), store, notifier
}

func TestCreateRequiresManagementOrHR(t *testing.T) {
	svc, _, _ := testFixture()
	ctx := context.Background()

	if _, _, err := svc.Create(ctx, "mgr", "emp"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("a manager may not appraise a skip-level employee, got %v", err)
	}

	a, created, err := svc.Create(ctx, "lead", "emp")
	if err != nil || !created {
		t.Fatalf("team leader should appraise direct report, got created=%v err=%v", created, err)
	}
	if a.Status != StatusSubmitted {
		t.Fatalf("new appraisals enter at submitted, got %s", a.Status)
	}
	if a.ManagerID != "lead" {
		t.Fatalf("expected appraising manager lead, got %s", a.ManagerID)
	}
}

func TestCreateIsIdempotentPerPeriod(t *testing.T) {
	svc, _, _ := testFixture()
	ctx := context.Background()

	first, created, err := svc.Create(ctx, "lead", "emp")
	if err != nil || !created {
		t.Fatalf("first create failed: created=%v err=%v", created, err)
	}
	second, created, err := svc.Create(ctx, "lead", "emp")
	if err != nil {
		t.Fatalf("second create errored: %v", err)
	}
	if created {
		t.Fatal("second create for the same employee and period must not insert")
	}
	if second.ID != first.ID {
		t.Fatalf("expected the existing appraisal back, got %s vs %s", second.ID, first.ID)
	}
}

func TestCreateWithoutPeriod(t *testing.T) {
	svc, store, _ := testFixture()
	store.period = nil

	if _, _, err := svc.Create(context.Background(), "lead", "emp"); !errors.Is(err, ErrNoPeriod) {
		t.Fatalf("expected ErrNoPeriod, got %v", err)
	}
}

func TestCreateComputesScores(t *testing.T) {
	svc, store, _ := testFixture()
	store.samples["emp"] = []RatingSample{{Quality: "excellent", Timeliness: "on_time", Overall: 90}}
	store.tasks["emp"] = [2]int{4, 2}

	a, _, err := svc.Create(context.Background(), "lead", "emp")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if a.QualityScore != 100 || a.TimelinessScore != 100 || a.OverallPercentage != 90 {
		t.Fatalf("rating scores not aggregated: %+v", a)
	}
	if a.TaskCompletionScore != 50 {
		t.Fatalf("expected task completion 50, got %v", a.TaskCompletionScore)
	}
}

func TestHRCanCreateForAnyone(t *testing.T) {
	svc, _, _ := testFixture()

	a, created, err := svc.Create(context.Background(), "hr", "emp")
	if err != nil || !created {
		t.Fatalf("HR create failed: created=%v err=%v", created, err)
	}
	if a.ManagerID != "lead" {
		t.Fatalf("HR-created appraisal should carry the employee's own manager, got %s", a.ManagerID)
	}
}

func TestDecisionTransitions(t *testing.T) {
	svc, _, notifier := testFixture()
	ctx := context.Background()

	a, _, _ := svc.Create(ctx, "lead", "emp")

	approved, err := svc.Approve(ctx, "hr", a.ID)
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if approved.Status != StatusApproved || !approved.HRApproved || approved.HRApprovedBy != "hr" {
		t.Fatalf("approval not recorded: %+v", approved)
	}

	if _, err := svc.Approve(ctx, "hr", a.ID); !errors.Is(err, ErrConflict) {
		t.Fatalf("double approve must conflict, got %v", err)
	}
	if _, err := svc.Reject(ctx, "hr", a.ID); !errors.Is(err, ErrConflict) {
		t.Fatalf("reject after approve must conflict, got %v", err)
	}

	found := false
	for _, event := range notifier.events {
		if event == "emp:appraisal_approved" {
			found = true
		}
	}
	if !found {
		t.Fatalf("employee was not notified of approval: %v", notifier.events)
	}
}

func TestNegotiationFlow(t *testing.T) {
	svc, _, notifier := testFixture()
	ctx := context.Background()

	a, _, _ := svc.Create(ctx, "lead", "emp")
	if _, _, err := svc.Negotiate(ctx, "lead", auth.RoleTeamLeader, a.ID, "scores look low"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("only the appraised employee may negotiate, got %v", err)
	}

	updated, ticket, err := svc.Negotiate(ctx, "emp", auth.RoleEmployee, a.ID, "scores look low")
	if err != nil {
		t.Fatalf("negotiate failed: %v", err)
	}
	if updated.Status != StatusNegotiation || ticket.Status != TicketOpen {
		t.Fatalf("negotiation not opened: %+v %+v", updated, ticket)
	}
	if ticket.EmployeeReason != "scores look low" {
		t.Fatalf("reason not stored: %q", ticket.EmployeeReason)
	}

	// Re-negotiating keeps the one ticket per appraisal.
	_, again, err := svc.Negotiate(ctx, "emp", auth.RoleEmployee, a.ID, "still low")
	if err != nil {
		t.Fatalf("second negotiate failed: %v", err)
	}
	if again.ID != ticket.ID {
		t.Fatal("a second negotiation must reuse the existing ticket")
	}

	hrNotified := false
	for _, event := range notifier.events {
		if event == "hr:negotiation_requested" {
			hrNotified = true
		}
	}
	if !hrNotified {
		t.Fatalf("HR was not notified of the negotiation: %v", notifier.events)
	}
}

func TestAcceptFinalizes(t *testing.T) {
	svc, _, _ := testFixture()
	ctx := context.Background()

	a, _, _ := svc.Create(ctx, "lead", "emp")

	if _, err := svc.Accept(ctx, "emp", a.ID); !errors.Is(err, ErrConflict) {
		t.Fatalf("accept before an HR decision must conflict, got %v", err)
	}

	if _, err := svc.Approve(ctx, "hr", a.ID); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	if _, err := svc.Accept(ctx, "lead", a.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("only the appraised employee may accept, got %v", err)
	}

	accepted, err := svc.Accept(ctx, "emp", a.ID)
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if accepted.Status != StatusAccepted {
		t.Fatalf("expected accepted, got %s", accepted.Status)
	}

	if _, _, err := svc.Negotiate(ctx, "emp", auth.RoleEmployee, a.ID, "too late"); !errors.Is(err, ErrConflict) {
		t.Fatalf("negotiation after acceptance must conflict, got %v", err)
	}
}

func TestAcceptResolvesTicket(t *testing.T) {
	svc, store, _ := testFixture()
	ctx := context.Background()

	a, _, _ := svc.Create(ctx, "lead", "emp")
	if _, _, err := svc.Negotiate(ctx, "emp", auth.RoleEmployee, a.ID, "disagree"); err != nil {
		t.Fatalf("negotiate failed: %v", err)
	}
	if _, err := svc.Accept(ctx, "emp", a.ID); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	ticket := store.tickets[a.ID]
	if ticket.Status != TicketResolved || ticket.ResolvedAt == nil {
		t.Fatalf("ticket should be resolved on acceptance: %+v", ticket)
	}
}

func TestGetVisibility(t *testing.T) {
	svc, _, _ := testFixture()
	ctx := context.Background()

	a, _, _ := svc.Create(ctx, "lead", "emp")

	for actor, role := range map[string]string{"emp": auth.RoleEmployee, "lead": auth.RoleTeamLeader, "hr": auth.RoleHR} {
		if _, err := svc.Get(ctx, actor, role, a.ID); err != nil {
			t.Fatalf("%s should see the appraisal: %v", actor, err)
		}
	}
	if _, err := svc.Get(ctx, "mgr", auth.RoleManager, a.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("an uninvolved manager must not see the appraisal, got %v", err)
	}
}

func TestCreatePeriodValidatesDates(t *testing.T) {
	svc, _, _ := testFixture()
	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.CreatePeriod(context.Background(), "hr", PeriodInput{Title: "Bad", StartDate: start, EndDate: start})
	if !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}
}

func TestUpdateTicketValidatesStatus(t *testing.T) {
	svc, _, _ := testFixture()
	ctx := context.Background()

	a, _, _ := svc.Create(ctx, "lead", "emp")
	if _, _, err := svc.Negotiate(ctx, "emp", auth.RoleEmployee, a.ID, "r"); err != nil {
		t.Fatalf("negotiate failed: %v", err)
	}

	if _, err := svc.UpdateTicket(ctx, a.ID, TicketUpdate{Status: "escalated"}); !errors.Is(err, ErrInvalidTicketStatus) {
		t.Fatalf("expected ErrInvalidTicketStatus, got %v", err)
	}
	ticket, err := svc.UpdateTicket(ctx, a.ID, TicketUpdate{Status: TicketInReview, HRDecision: "reviewing"})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if ticket.Status != TicketInReview || ticket.HRDecision != "reviewing" {
		t.Fatalf("ticket update not applied: %+v", ticket)
	}
}
