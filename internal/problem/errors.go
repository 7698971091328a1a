package problem

import "errors"

var (
	ErrMissingTitle       = errors.New("title is required")
	ErrMissingDescription = errors.New("description is required")
	ErrMissingLocation    = errors.New("location is required")
	ErrInvalidDangerLevel = errors.New("invalid danger level")
	ErrNotFound           = errors.New("problem not found")
)
