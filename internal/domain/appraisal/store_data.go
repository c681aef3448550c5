package appraisal

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

const appraisalColumns = `id, employee_id, period_id, manager_id,
  overall_percentage, task_completion_score, quality_score, timeliness_score,
  status, final_remarks, hr_approved, COALESCE(hr_approved_by::text, ''), created_at, updated_at`

const ticketColumns = `id, appraisal_id, COALESCE(negotiated_by::text, ''),
  employee_reason, manager_response, hr_decision, status, created_at, resolved_at`

func (s *Store) GetAppraisal(ctx context.Context, appraisalID string) (Appraisal, error) {
	row := s.DB.QueryRow(ctx, "SELECT "+appraisalColumns+" FROM appraisals WHERE id = $1", appraisalID)
	return scanAppraisal(row)
}

func (s *Store) FindByEmployeeAndPeriod(ctx context.Context, employeeID, periodID string) (Appraisal, error) {
	row := s.DB.QueryRow(ctx,
		"SELECT "+appraisalColumns+" FROM appraisals WHERE employee_id = $1 AND period_id = $2",
		employeeID, periodID)
	return scanAppraisal(row)
}

func (s *Store) ListForEmployee(ctx context.Context, employeeID string) ([]Appraisal, error) {
	return s.list(ctx, "SELECT "+appraisalColumns+" FROM appraisals WHERE employee_id = $1 ORDER BY created_at DESC", employeeID)
}

func (s *Store) ListForManager(ctx context.Context, managerID string) ([]Appraisal, error) {
	return s.list(ctx, "SELECT "+appraisalColumns+" FROM appraisals WHERE manager_id = $1 ORDER BY created_at DESC", managerID)
}

func (s *Store) ListAll(ctx context.Context) ([]Appraisal, error) {
	return s.list(ctx, "SELECT " + appraisalColumns + " FROM appraisals ORDER BY created_at DESC")
}

func (s *Store) list(ctx context.Context, query string, args ...any) ([]Appraisal, error) {
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var appraisals []Appraisal
	for rows.Next() {
		a, err := scanAppraisal(rows)
		if err != nil {
			return nil, err
		}
		appraisals = append(appraisals, a)
	}
	return appraisals, rows.Err()
}

func (s *Store) InsertAppraisal(ctx context.Context, employeeID, periodID, managerID, finalRemarks string) (Appraisal, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO appraisals (employee_id, period_id, manager_id, status, final_remarks)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING `+appraisalColumns+`
  `, employeeID, periodID, managerID, StatusSubmitted, finalRemarks)
	return scanAppraisal(row)
}

// Recalculate locks the appraisal row, reads the employee's full rating and
// task history, and overwrites the four scores with freshly computed means.
func (s *Store) Recalculate(ctx context.Context, appraisalID string) (Appraisal, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return Appraisal{}, err
	}
	defer tx.Rollback(ctx)

	a, err := lockAppraisal(ctx, tx, appraisalID)
	if err != nil {
		return Appraisal{}, err
	}

	samples, err := ratingSamples(ctx, tx, a.EmployeeID)
	if err != nil {
		return Appraisal{}, err
	}

	var total, completed int
	err = tx.QueryRow(ctx, `
    SELECT COUNT(*), COUNT(*) FILTER (WHERE status = 'completed')
    FROM tasks WHERE assigned_to = $1
  `, a.EmployeeID).Scan(&total, &completed)
	if err != nil {
		return Appraisal{}, err
	}

	scores := ComputeScores(samples, total, completed)
	row := tx.QueryRow(ctx, `
    UPDATE appraisals
    SET overall_percentage = $1, task_completion_score = $2,
        quality_score = $3, timeliness_score = $4, updated_at = now()
    WHERE id = $5
    RETURNING `+appraisalColumns+`
  `, scores.OverallPercentage, scores.TaskCompletionScore, scores.QualityScore, scores.TimelinessScore, appraisalID)
	a, err = scanAppraisal(row)
	if err != nil {
		return Appraisal{}, err
	}

	return a, tx.Commit(ctx)
}

func (s *Store) Approve(ctx context.Context, appraisalID, approverID string) (Appraisal, error) {
	return s.decide(ctx, appraisalID, approverID, StatusApproved)
}

func (s *Store) Reject(ctx context.Context, appraisalID, approverID string) (Appraisal, error) {
	return s.decide(ctx, appraisalID, approverID, StatusRejected)
}

func (s *Store) decide(ctx context.Context, appraisalID, approverID, status string) (Appraisal, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return Appraisal{}, err
	}
	defer tx.Rollback(ctx)

	a, err := lockAppraisal(ctx, tx, appraisalID)
	if err != nil {
		return Appraisal{}, err
	}
	if !CanApprove(a.Status) {
		return Appraisal{}, ErrConflict
	}

	row := tx.QueryRow(ctx, `
    UPDATE appraisals
    SET status = $1, hr_approved = $2, hr_approved_by = $3, updated_at = now()
    WHERE id = $4
    RETURNING `+appraisalColumns+`
  `, status, status == StatusApproved, approverID, appraisalID)
	a, err = scanAppraisal(row)
	if err != nil {
		return Appraisal{}, err
	}

	return a, tx.Commit(ctx)
}

// OpenNegotiation moves the appraisal to negotiation and opens a ticket for
// it if none exists yet. Re-negotiating keeps the existing ticket untouched.
func (s *Store) OpenNegotiation(ctx context.Context, appraisalID, negotiatedBy, reason string) (Appraisal, NegotiationTicket, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return Appraisal{}, NegotiationTicket{}, err
	}
	defer tx.Rollback(ctx)

	a, err := lockAppraisal(ctx, tx, appraisalID)
	if err != nil {
		return Appraisal{}, NegotiationTicket{}, err
	}
	if !CanNegotiate(a.Status) {
		return Appraisal{}, NegotiationTicket{}, ErrConflict
	}

	_, err = tx.Exec(ctx, `
    INSERT INTO negotiation_tickets (appraisal_id, negotiated_by, employee_reason)
    VALUES ($1, $2, $3)
    ON CONFLICT (appraisal_id) DO NOTHING
  `, appraisalID, nullIfEmpty(negotiatedBy), reason)
	if err != nil {
		return Appraisal{}, NegotiationTicket{}, err
	}

	ticket, err := scanTicket(tx.QueryRow(ctx,
		"SELECT "+ticketColumns+" FROM negotiation_tickets WHERE appraisal_id = $1", appraisalID))
	if err != nil {
		return Appraisal{}, NegotiationTicket{}, err
	}

	row := tx.QueryRow(ctx, `
    UPDATE appraisals SET status = $1, updated_at = now()
    WHERE id = $2
    RETURNING `+appraisalColumns+`
  `, StatusNegotiation, appraisalID)
	a, err = scanAppraisal(row)
	if err != nil {
		return Appraisal{}, NegotiationTicket{}, err
	}

	return a, ticket, tx.Commit(ctx)
}

// Accept finalizes the appraisal and resolves its open negotiation ticket, if
// any. The returned ticket is nil when the appraisal was never negotiated.
func (s *Store) Accept(ctx context.Context, appraisalID string) (Appraisal, *NegotiationTicket, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return Appraisal{}, nil, err
	}
	defer tx.Rollback(ctx)

	a, err := lockAppraisal(ctx, tx, appraisalID)
	if err != nil {
		return Appraisal{}, nil, err
	}
	if !CanAccept(a.Status) {
		return Appraisal{}, nil, ErrConflict
	}

	var ticket *NegotiationTicket
	row := tx.QueryRow(ctx, `
    UPDATE negotiation_tickets
    SET status = $1, resolved_at = now()
    WHERE appraisal_id = $2 AND resolved_at IS NULL
    RETURNING `+ticketColumns+`
  `, TicketResolved, appraisalID)
	resolved, err := scanTicket(row)
	switch {
	case err == nil:
		ticket = &resolved
	case !errors.Is(err, ErrNotFound):
		return Appraisal{}, nil, err
	}

	row = tx.QueryRow(ctx, `
    UPDATE appraisals SET status = $1, updated_at = now()
    WHERE id = $2
    RETURNING `+appraisalColumns+`
  `, StatusAccepted, appraisalID)
	a, err = scanAppraisal(row)
	if err != nil {
		return Appraisal{}, nil, err
	}

	return a, ticket, tx.Commit(ctx)
}

func (s *Store) TicketForAppraisal(ctx context.Context, appraisalID string) (*NegotiationTicket, error) {
	row := s.DB.QueryRow(ctx,
		"SELECT "+ticketColumns+" FROM negotiation_tickets WHERE appraisal_id = $1", appraisalID)
	ticket, err := scanTicket(row)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (s *Store) UpdateTicket(ctx context.Context, appraisalID string, update TicketUpdate) (NegotiationTicket, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE negotiation_tickets
    SET status           = CASE WHEN $1 = '' THEN status ELSE $1 END,
        manager_response = CASE WHEN $2 = '' THEN manager_response ELSE $2 END,
        hr_decision      = CASE WHEN $3 = '' THEN hr_decision ELSE $3 END,
        resolved_at      = CASE WHEN $1 IN ('resolved', 'closed') AND resolved_at IS NULL THEN now() ELSE resolved_at END
    WHERE appraisal_id = $4
    RETURNING `+ticketColumns+`
  `, update.Status, update.ManagerResponse, update.HRDecision, appraisalID)
	return scanTicket(row)
}

func (s *Store) UpdateScoresAndRemarks(ctx context.Context, appraisalID string, update ScoresUpdate) (Appraisal, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE appraisals
    SET overall_percentage = $1, task_completion_score = $2,
        quality_score = $3, timeliness_score = $4,
        final_remarks = CASE WHEN $5 = '' THEN final_remarks ELSE $5 END,
        updated_at = now()
    WHERE id = $6
    RETURNING `+appraisalColumns+`
  `, update.OverallPercentage, update.TaskCompletionScore, update.QualityScore, update.TimelinessScore, update.FinalRemarks, appraisalID)
	return scanAppraisal(row)
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func lockAppraisal(ctx context.Context, tx pgx.Tx, appraisalID string) (Appraisal, error) {
	row := tx.QueryRow(ctx, "SELECT "+appraisalColumns+" FROM appraisals WHERE id = $1 FOR UPDATE", appraisalID)
	return scanAppraisal(row)
}

func ratingSamples(ctx context.Context, tx pgx.Tx, employeeID string) ([]RatingSample, error) {
	rows, err := tx.Query(ctx,
		"SELECT quality_rating, timeliness_rating, overall_rating FROM performance_ratings WHERE employee_id = $1",
		employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []RatingSample
	for rows.Next() {
		var sample RatingSample
		if err := rows.Scan(&sample.Quality, &sample.Timeliness, &sample.Overall); err != nil {
			return nil, err
		}
		samples = append(samples, sample)
	}
	return samples, rows.Err()
}

func scanAppraisal(row pgx.Row) (Appraisal, error) {
	var a Appraisal
	err := row.Scan(
		&a.ID, &a.EmployeeID, &a.PeriodID, &a.ManagerID,
		&a.OverallPercentage, &a.TaskCompletionScore, &a.QualityScore, &a.TimelinessScore,
		&a.Status, &a.FinalRemarks, &a.HRApproved, &a.HRApprovedBy, &a.CreatedAt, &a.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Appraisal{}, ErrNotFound
	}
	if err != nil {
		return Appraisal{}, err
	}
	return a, nil
}

func scanTicket(row pgx.Row) (NegotiationTicket, error) {
	var t NegotiationTicket
	err := row.Scan(
		&t.ID, &t.AppraisalID, &t.NegotiatedBy,
		&t.EmployeeReason, &t.ManagerResponse, &t.HRDecision,
		&t.Status, &t.CreatedAt, &t.ResolvedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return NegotiationTicket{}, ErrNotFound
	}
	if err != nil {
		return NegotiationTicket{}, err
	}
	return t, nil
}
