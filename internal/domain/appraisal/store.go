package appraisal

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const periodColumns = "id, title, start_date, end_date, is_active, created_by, created_at"

// LatestPeriod implements PeriodResolver: appraisals are always formed
// against the most recently created period; is_active is informational.
func (s *Store) LatestPeriod(ctx context.Context) (Period, error) {
	row := s.DB.QueryRow(ctx, "SELECT "+periodColumns+" FROM appraisal_periods ORDER BY created_at DESC, id DESC LIMIT 1")
	p, err := scanPeriod(row)
	if errors.Is(err, ErrNotFound) {
		return Period{}, ErrNoPeriod
	}
	return p, err
}

func (s *Store) GetPeriod(ctx context.Context, periodID string) (Period, error) {
	row := s.DB.QueryRow(ctx, "SELECT "+periodColumns+" FROM appraisal_periods WHERE id = $1", periodID)
	return scanPeriod(row)
}

func (s *Store) ListPeriods(ctx context.Context) ([]Period, error) {
	rows, err := s.DB.Query(ctx, "SELECT "+periodColumns+" FROM appraisal_periods ORDER BY start_date DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var periods []Period
	for rows.Next() {
		var p Period
		if err := rows.Scan(&p.ID, &p.Title, &p.StartDate, &p.EndDate, &p.IsActive, &p.CreatedBy, &p.CreatedAt); err != nil {
			return nil, err
		}
		periods = append(periods, p)
	}
	return periods, rows.Err()
}

func (s *Store) CreatePeriod(ctx context.Context, createdBy string, input PeriodInput) (Period, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO appraisal_periods (title, start_date, end_date, is_active, created_by)
    VALUES ($1,$2,$3,$4,$5)
    RETURNING `+periodColumns+`
  `, input.Title, input.StartDate, input.EndDate, input.IsActive, createdBy)
	return scanPeriod(row)
}

func (s *Store) UpdatePeriod(ctx context.Context, periodID string, input PeriodInput) (Period, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE appraisal_periods
    SET title = $1, start_date = $2, end_date = $3, is_active = $4
    WHERE id = $5
    RETURNING `+periodColumns+`
  `, input.Title, input.StartDate, input.EndDate, input.IsActive, periodID)
	return scanPeriod(row)
}

func scanPeriod(row pgx.Row) (Period, error) {
	var p Period
	err := row.Scan(&p.ID, &p.Title, &p.StartDate, &p.EndDate, &p.IsActive, &p.CreatedBy, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Period{}, ErrNotFound
	}
	if err != nil {
		return Period{}, err
	}
	return p, nil
}
