package dispatch

import "errors"

var (
	ErrMissingRequiredFields = errors.New("missing required fields")
	ErrInvalidJobID          = errors.New("invalid job id")
	ErrInvalidCourierID      = errors.New("invalid courier id")

	ErrJobNotFound      = errors.New("job not found")
	ErrJobAlreadyExists = errors.New("job with this code already exists")
	ErrCourierNotFound  = errors.New("courier not found")

	ErrInvalidState     = errors.New("invalid job state for transition")
	ErrUndefinedStatus  = errors.New("undefined job status")
	ErrNotBroadcasting  = errors.New("job is not broadcasting")
	ErrAlreadyAssigned  = errors.New("job already assigned")
	ErrBroadcastExpired = errors.New("broadcast window expired")
)
