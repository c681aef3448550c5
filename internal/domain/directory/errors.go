package directory

import "errors"

var (
	ErrNotFound     = errors.New("user not found")
	ErrManagerCycle = errors.New("manager assignment would create a cycle")
)
