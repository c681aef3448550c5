package ratings

import "errors"

var (
	ErrForbidden      = errors.New("not allowed to rate this user")
	ErrInvalidOverall = errors.New("overall rating must be between 0 and 100")
)
