// Package errors carries the coded errors returned across the oscillator,
// feed, marker and notifier packages.
//
// Codes are grouped by hundreds; see ErrorCode.Category. Construct with New,
// Newf, Wrap or Wrapf and inspect with GetCode or HasCode:
//
//	if errors.HasCode(err, errors.ErrCodeIndexRegression) { ... }
//
// InsufficientDataError is kept separate from Error because it is not a
// failure: it marks an index the oscillator cannot evaluate yet.
package errors

import (
	"errors"
	"fmt"
)

// Error is a coded error with an optional cause.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

func New(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Newf(code ErrorCode, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap attaches a code and message to cause. A nil cause yields the same
// error New would.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return Wrap(code, fmt.Sprintf(format, args...), cause)
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("[%d] %s", e.Code, e.Message)
	}

	return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is mirrors the standard library so callers need only this package.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As mirrors the standard library so callers need only this package.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode returns the code of the outermost *Error in err's chain, or
// ErrCodeUnknown when there is none.
func GetCode(err error) ErrorCode {
	var coded *Error
	if !errors.As(err, &coded) {
		return ErrCodeUnknown
	}

	return coded.Code
}

func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// Category names the range a code belongs to.
func (c ErrorCode) Category() string {
	switch c / 100 {
	case 0:
		return "general"
	case 1:
		return "validation"
	case 2:
		return "data"
	case 3:
		return "indicator"
	case 7:
		return "market data"
	case 9:
		return "delivery"
	default:
		return "unknown"
	}
}

// InsufficientDataError reports that an index lies inside the warm-up window
// of the oscillator or before the first aggregation bar.
type InsufficientDataError struct {
	Required int
	Actual   int
	// Symbol is empty when the series carries no instrument.
	Symbol  string
	Message string
}

func NewInsufficientDataError(required, actual int, symbol, message string) *InsufficientDataError {
	return &InsufficientDataError{Required: required, Actual: actual, Symbol: symbol, Message: message}
}

func NewInsufficientDataErrorf(required, actual int, symbol, format string, args ...any) *InsufficientDataError {
	return NewInsufficientDataError(required, actual, symbol, fmt.Sprintf(format, args...))
}

func (e *InsufficientDataError) Error() string {
	return e.Message
}

// Missing is how many more bars are needed before the index is computable.
func (e *InsufficientDataError) Missing() int {
	if e.Actual >= e.Required {
		return 0
	}

	return e.Required - e.Actual
}

// IsInsufficientDataError reports whether err's chain holds an
// InsufficientDataError.
func IsInsufficientDataError(err error) bool {
	var insufficient *InsufficientDataError

	return errors.As(err, &insufficient)
}
