package contract

import "errors"

var (
	ErrValidation    = errors.New("validation failed")
	ErrUnknownIntent = errors.New("intent has no registered handler")
)
