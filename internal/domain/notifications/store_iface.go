package notifications

import "context"

type StoreAPI interface {
	CreateNotification(ctx context.Context, n Notification) (Notification, error)
	ListForRecipient(ctx context.Context, recipientID string, unreadOnly bool) ([]Notification, error)
	MarkRead(ctx context.Context, notificationID, recipientID string) error
	UserEmail(ctx context.Context, userID string) (string, error)
}
