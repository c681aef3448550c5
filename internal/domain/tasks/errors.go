package tasks

import "errors"

var (
	ErrNotFound  = errors.New("task not found")
	ErrForbidden = errors.New("not allowed to manage this user's tasks")
)
