package models

import "errors"

var (
	ErrDuplicateID     = errors.New("duplicate location id")
	ErrInvalidCapacity = errors.New("total spots must be positive")
	ErrMissingID       = errors.New("location id is empty")
	ErrUnknownKind     = errors.New("unknown location kind")
	ErrWindowDays      = errors.New("operating window has no days of week")
)
