package ratings

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) CreateRating(ctx context.Context, employeeID, managerID string, input RatingInput) (PerformanceRating, error) {
	var r PerformanceRating
	err := s.DB.QueryRow(ctx, `
    INSERT INTO performance_ratings (employee_id, manager_id, task_id, quality_rating, timeliness_rating, overall_rating, remarks, keywords)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    RETURNING id, employee_id, manager_id, COALESCE(task_id::text, ''), quality_rating, timeliness_rating, overall_rating, remarks, keywords, created_at
  `, employeeID, managerID, nullIfEmpty(input.TaskID), input.Quality, input.Timeliness, input.Overall, input.Remarks, input.Keywords).
		Scan(&r.ID, &r.EmployeeID, &r.ManagerID, &r.TaskID, &r.Quality, &r.Timeliness, &r.Overall, &r.Remarks, &r.Keywords, &r.CreatedAt)
	if err != nil {
		return PerformanceRating{}, err
	}
	return r, nil
}

func (s *Store) ListForEmployee(ctx context.Context, employeeID string) ([]PerformanceRating, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, manager_id, COALESCE(task_id::text, ''), quality_rating, timeliness_rating, overall_rating, remarks, keywords, created_at
    FROM performance_ratings
    WHERE employee_id = $1
    ORDER BY created_at DESC
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PerformanceRating
	for rows.Next() {
		var r PerformanceRating
		if err := rows.Scan(&r.ID, &r.EmployeeID, &r.ManagerID, &r.TaskID, &r.Quality, &r.Timeliness, &r.Overall, &r.Remarks, &r.Keywords, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
