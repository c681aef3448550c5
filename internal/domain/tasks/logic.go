package tasks

import "time"

// IsOverdue is derived on read; the stored status is never swept to
// "overdue", so callers must use this and not the status column.
func IsOverdue(t Task, now time.Time) bool {
	return t.DueDate.Before(now) && t.Status != StatusCompleted
}

func CompletionStatus(t Task, now time.Time) string {
	if t.Status == StatusCompleted {
		if t.CompletedDate != nil && !t.CompletedDate.After(t.DueDate) {
			return CompletionOnTime
		}
		return CompletionLate
	}
	if IsOverdue(t, now) {
		return CompletionOverdue
	}
	return CompletionPending
}
