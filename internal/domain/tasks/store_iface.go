package tasks

import (
	"context"
	"time"
)

type StoreAPI interface {
	CreateTask(ctx context.Context, assignedBy string, input TaskInput) (Task, error)
	GetTask(ctx context.Context, taskID string) (Task, error)
	TaskForAssignee(ctx context.Context, taskID, assigneeID string) (Task, error)
	CompleteTask(ctx context.Context, taskID string, completedAt time.Time, artifactRef string) (Task, error)
	ListAssignedTo(ctx context.Context, userID string) ([]Task, error)
	ListAssignedBy(ctx context.Context, userID string) ([]Task, error)
}
