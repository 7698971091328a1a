package organization

import "errors"

var (
	ErrMissingName        = errors.New("organization name is required")
	ErrMissingCity        = errors.New("city is required")
	ErrInvalidType        = errors.New("invalid organization type")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrMissingServiceName = errors.New("service name is required")
	ErrNotFound           = errors.New("organization not found")
	ErrForbidden          = errors.New("forbidden")
)
