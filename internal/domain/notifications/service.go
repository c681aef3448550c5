package notifications

import (
	"context"
	"log/slog"
)

type Mailer interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

type Service struct {
	store       StoreAPI
	Mailer      Mailer
	DefaultFrom string
}

func New(store StoreAPI, mailer Mailer) *Service {
	return &Service{store: store, Mailer: mailer, DefaultFrom: "no-reply@example.com"}
}

// Emit records an in-app notification and sends a best-effort email copy.
// It never fails the calling workflow: a lost notification must not roll back
// an appraisal transition, so problems are logged and swallowed.
func (s *Service) Emit(ctx context.Context, recipientID, ntype, title, message, appraisalID string) {
	_, err := s.store.CreateNotification(ctx, Notification{
		RecipientID: recipientID,
		Type:        ntype,
		Title:       title,
		Message:     message,
		AppraisalID: appraisalID,
	})
	if err != nil {
		slog.Warn("notification write failed", "type", ntype, "recipient", recipientID, "err", err)
		return
	}

	if s.Mailer == nil {
		return
	}
	email, err := s.store.UserEmail(ctx, recipientID)
	if err != nil {
		slog.Warn("notification email lookup failed", "err", err)
		return
	}
	if email == "" {
		return
	}
	if err := s.Mailer.Send(ctx, s.DefaultFrom, email, title, message); err != nil {
		slog.Warn("notification email send failed", "err", err)
	}
}

func (s *Service) List(ctx context.Context, recipientID string, unreadOnly bool) ([]Notification, error) {
	return s.store.ListForRecipient(ctx, recipientID, unreadOnly)
}

func (s *Service) MarkRead(ctx context.Context, notificationID, recipientID string) error {
	return s.store.MarkRead(ctx, notificationID, recipientID)
}
