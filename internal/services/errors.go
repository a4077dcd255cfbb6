package services

import "errors"

// Sentinel errors the handlers map onto HTTP status codes.
var (
	ErrForbidden = errors.New("insufficient venture access")
	ErrNotFound  = errors.New("not found")
	ErrBadInput  = errors.New("invalid input")
)
