package notifications

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

const notificationColumns = `id, recipient_id, notification_type, title, message,
  COALESCE(appraisal_id::text, ''), is_read, created_at`

func (s *Store) CreateNotification(ctx context.Context, n Notification) (Notification, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO notifications (recipient_id, notification_type, title, message, appraisal_id)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING `+notificationColumns+`
  `, n.RecipientID, n.Type, n.Title, n.Message, nullIfEmpty(n.AppraisalID))
	return scanNotification(row)
}

func (s *Store) ListForRecipient(ctx context.Context, recipientID string, unreadOnly bool) ([]Notification, error) {
	query := "SELECT " + notificationColumns + " FROM notifications WHERE recipient_id = $1"
	if unreadOnly {
		query += " AND NOT is_read"
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.DB.Query(ctx, query, recipientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

// MarkRead is scoped to the recipient so one user cannot clear another's feed.
func (s *Store) MarkRead(ctx context.Context, notificationID, recipientID string) error {
	tag, err := s.DB.Exec(ctx,
		"UPDATE notifications SET is_read = true WHERE id = $1 AND recipient_id = $2",
		notificationID, recipientID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) UserEmail(ctx context.Context, userID string) (string, error) {
	var email string
	err := s.DB.QueryRow(ctx, "SELECT email FROM users WHERE id = $1", userID).Scan(&email)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	return email, err
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func scanNotification(row pgx.Row) (Notification, error) {
	var n Notification
	err := row.Scan(&n.ID, &n.RecipientID, &n.Type, &n.Title, &n.Message, &n.AppraisalID, &n.IsRead, &n.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Notification{}, ErrNotFound
	}
	if err != nil {
		return Notification{}, err
	}
	return n, nil
}
