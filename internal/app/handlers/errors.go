package handlers

import (
	"errors"
	"fmt"
)

var (
	ErrURLRequired        = errors.New("URL is required")
	ErrInvalidShortcode   = errors.New("shortcode may contain only latin letters, digits, '-' and '_' and be at most 64 characters long")
	ErrReservedShortcode  = errors.New("shortcode is reserved")
	ErrShortcodeExists    = errors.New("shortcode already exists")
	ErrBodyTooLarge       = errors.New("request body is too large")
	ErrUnreadableBody     = errors.New("couldn't read request body")
	ErrInvalidRequestJSON = errors.New("invalid JSON data")
)

// ShortcodeConflictError - код уже занят. Хранит сам код, чтобы его можно было залогировать.
type ShortcodeConflictError struct {
	Shortcode string
	Err       error
}

func (e *ShortcodeConflictError) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Shortcode)
}

func NewShortcodeConflictError(err error, shortcode string) error {
	return &ShortcodeConflictError{
		Shortcode: shortcode,
		Err:       err,
	}
}

func (e *ShortcodeConflictError) Unwrap() error { return e.Err }
