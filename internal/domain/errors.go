package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation failed")
	ErrInvalidTransition = errors.New("invalid booking status transition")
	ErrRoomUnavailable   = errors.New("room unavailable")
)
