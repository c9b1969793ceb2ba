package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrConflict              = errors.New("resource already exists")
	ErrWeekClosed            = errors.New("week is closed for entries")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
