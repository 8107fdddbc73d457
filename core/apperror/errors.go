package apperror

import (
	"errors"

	"gorm.io/gorm"
)

// Kind classifies an Error.
type Kind string

const (
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindNetwork    Kind = "network"
	KindInternal   Kind = "internal"
)

// Error is a normalized core error.
type Error struct {
	// Kind is the error class.
	Kind Kind
	// Message is the fixed, user-facing message.
	Message string
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation returns a precondition failure.
func Validation(message string) error {
	return &Error{Kind: KindValidation, Message: message}
}

// NotFound returns a missing-record failure.
func NotFound(message string, err error) error {
	return &Error{Kind: KindNotFound, Message: message, Err: err}
}

// Network returns a remote call failure.
func Network(message string, err error) error {
	return &Error{Kind: KindNetwork, Message: message, Err: err}
}

// Wrap normalizes err under a fixed message. The kind of an already normalized
// error is kept; gorm.ErrRecordNotFound maps to KindNotFound; anything else is
// KindInternal. Wrap returns nil for a nil err.
func Wrap(message string, err error) error {
	if err == nil {
		return nil
	}
	kind := KindInternal
	var ae *Error
	switch {
	case errors.As(err, &ae):
		kind = ae.Kind
	case errors.Is(err, gorm.ErrRecordNotFound):
		kind = KindNotFound
	}
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf reports the kind of err, or KindInternal when err is not normalized.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// Is reports whether err is a normalized error of the given kind.
func Is(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}

// Message returns the user-facing message of err.
func Message(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "Something went wrong"
}
