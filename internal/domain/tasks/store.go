package tasks

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const taskColumns = `
    id, title, description, assigned_to, assigned_by, priority, status,
    due_date, completed_date, artifact_ref, created_at, updated_at
`

func (s *Store) CreateTask(ctx context.Context, assignedBy string, input TaskInput) (Task, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO tasks (title, description, assigned_to, assigned_by, priority, due_date)
    VALUES ($1,$2,$3,$4,$5,$6)
    RETURNING `+taskColumns+`
  `, input.Title, input.Description, input.AssignedTo, assignedBy, input.Priority, input.DueDate)
	return scanTask(row)
}

func (s *Store) GetTask(ctx context.Context, taskID string) (Task, error) {
	row := s.DB.QueryRow(ctx, "SELECT "+taskColumns+" FROM tasks WHERE id = $1", taskID)
	return scanTask(row)
}

// TaskForAssignee mirrors a lookup scoped to the assignee: a task that exists
// but belongs to someone else is reported as not found.
func (s *Store) TaskForAssignee(ctx context.Context, taskID, assigneeID string) (Task, error) {
	row := s.DB.QueryRow(ctx, "SELECT "+taskColumns+" FROM tasks WHERE id = $1 AND assigned_to = $2", taskID, assigneeID)
	return scanTask(row)
}

func (s *Store) CompleteTask(ctx context.Context, taskID string, completedAt time.Time, artifactRef string) (Task, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE tasks
    SET status = $1, completed_date = $2,
        artifact_ref = CASE WHEN $3 = '' THEN artifact_ref ELSE $3 END,
        updated_at = now()
    WHERE id = $4
    RETURNING `+taskColumns+`
  `, StatusCompleted, completedAt, artifactRef, taskID)
	return scanTask(row)
}

func (s *Store) ListAssignedTo(ctx context.Context, userID string) ([]Task, error) {
	return s.list(ctx, "SELECT "+taskColumns+" FROM tasks WHERE assigned_to = $1 ORDER BY created_at DESC", userID)
}

func (s *Store) ListAssignedBy(ctx context.Context, userID string) ([]Task, error) {
	return s.list(ctx, "SELECT "+taskColumns+" FROM tasks WHERE assigned_by = $1 ORDER BY created_at DESC", userID)
}

func (s *Store) list(ctx context.Context, query string, args ...any) ([]Task, error) {
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Task
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.AssignedTo, &t.AssignedBy, &t.Priority,
			&t.Status, &t.DueDate, &t.CompletedDate, &t.ArtifactRef, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func scanTask(row pgx.Row) (Task, error) {
	var t Task
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.AssignedTo, &t.AssignedBy, &t.Priority,
		&t.Status, &t.DueDate, &t.CompletedDate, &t.ArtifactRef, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Task{}, ErrNotFound
	}
	if err != nil {
		return Task{}, err
	}
	return t, nil
}
