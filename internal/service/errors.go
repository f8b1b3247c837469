package service

import "errors"

// ErrForbidden is returned when a user tries to act on another user's
// resource or without the required role.
var ErrForbidden = errors.New("forbidden")

// ErrValidation wraps all request-validation failures. Handlers map it to a
// 400 before any write happens.
var ErrValidation = errors.New("validation failed")

// Auth errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailInUse         = errors.New("email already in use")
	ErrSuspended          = errors.New("account suspended")
)
