// Package errors provides coded errors shared by the trading core.
//
// Codes are grouped by range:
//   - General (1-99)
//   - Validation (100-199): bad parameters, malformed bars, short history
//   - Data (200-299): feed and query failures
//   - Indicator (300-399): numeric failures inside indicator math
//   - Strategy (400-499): registry lookups, parameter decoding, runtime faults
//   - Trading (500-599): risk rejections, unknown positions, engine state
//   - Backtest (600-699): runner configuration and report output
//   - Live loop (700-799): fetch failures, exhausted retry budget
//   - Trade log (800-899): sink reads and writes
//
// Rejections and not-found results are ordinary values carrying their own
// code; callers branch on them with HasCode, IsRejection or IsNotFound.
//
//	err := errors.Newf(errors.ErrCodeInvalidBar, "high %.2f below low %.2f", high, low)
//	if errors.IsDataError(err) { ... }
package errors

import (
	"errors"
	"fmt"
)

// coded is implemented by every error in this package that carries a code.
type coded interface {
	error
	ErrorCode() ErrorCode
}

// Error is a coded error with an optional cause.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

func New(code ErrorCode, message string) *Error {
	return Wrap(code, message, nil)
}

func Newf(code ErrorCode, format string, args ...any) *Error {
	return Wrap(code, fmt.Sprintf(format, args...), nil)
}

// Wrap attaches a code and message to cause. cause may be nil.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return Wrap(code, fmt.Sprintf(format, args...), cause)
}

// Error renders "[code] message: cause".
func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("[%d] %s", e.Code, e.Message)
	}

	return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) ErrorCode() ErrorCode {
	return e.Code
}

// GetCode returns the code of the first coded error in the chain, or
// ErrCodeUnknown. A FatalLoopError carries no code of its own, so the code
// of its last failure is reported.
func GetCode(err error) ErrorCode {
	var c coded
	if errors.As(err, &c) {
		return c.ErrorCode()
	}

	return ErrCodeUnknown
}

func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// InsufficientDataError is returned while an indicator or strategy is still
// warming up. It reports ErrCodeInsufficientData.
type InsufficientDataError struct {
	Required int
	Actual   int
	Symbol   string
	Message  string
}

func NewInsufficientDataErrorf(required, actual int, symbol, format string, args ...any) *InsufficientDataError {
	return &InsufficientDataError{
		Required: required,
		Actual:   actual,
		Symbol:   symbol,
		Message:  fmt.Sprintf(format, args...),
	}
}

func (e *InsufficientDataError) Error() string {
	return e.Message
}

func (e *InsufficientDataError) ErrorCode() ErrorCode {
	return ErrCodeInsufficientData
}

// IsInsufficientDataError reports whether err wraps an InsufficientDataError.
func IsInsufficientDataError(err error) bool {
	var insufficientErr *InsufficientDataError

	return errors.As(err, &insufficientErr)
}

// FatalLoopError terminates a live loop after too many consecutive failures.
type FatalLoopError struct {
	Attempts int
	Limit    int
	Last     error
}

// NewFatalLoopError creates a FatalLoopError for the given failure streak.
func NewFatalLoopError(attempts, limit int, last error) *FatalLoopError {
	return &FatalLoopError{
		Attempts: attempts,
		Limit:    limit,
		Last:     last,
	}
}

func (e *FatalLoopError) Error() string {
	return fmt.Sprintf("[%d] %d consecutive errors exceeded limit of %d: %v", ErrCodeFatalLoop, e.Attempts, e.Limit, e.Last)
}

func (e *FatalLoopError) Unwrap() error {
	return e.Last
}

// AsFatalLoopError returns the FatalLoopError in err's chain, if any.
func AsFatalLoopError(err error) (*FatalLoopError, bool) {
	var fatalErr *FatalLoopError
	if errors.As(err, &fatalErr) {
		return fatalErr, true
	}

	return nil, false
}

// IsFatalLoopError reports whether err wraps a FatalLoopError.
func IsFatalLoopError(err error) bool {
	_, ok := AsFatalLoopError(err)

	return ok
}

// IsDataError reports bar-scoped data problems: short history, malformed or
// out-of-order bars.
// A wrapped InsufficientDataError counts even under another code.
func IsDataError(err error) bool {
	if IsInsufficientDataError(err) {
		return true
	}

	switch GetCode(err) {
	case ErrCodeInvalidBar, ErrCodeInsufficientData, ErrCodeOutOfOrderBar:
		return true
	default:
		return false
	}
}

// IsStrategyError reports indicator or strategy runtime failures.
func IsStrategyError(err error) bool {
	switch GetCode(err) {
	case ErrCodeIndicatorCalculation, ErrCodeStrategyRuntimeError:
		return true
	default:
		return false
	}
}

// IsRejection reports a normal "no" from the risk sizer or ledger.
func IsRejection(err error) bool {
	return HasCode(err, ErrCodeRiskRejected)
}

// IsNotFound reports a close or lookup on an unknown or already closed position.
func IsNotFound(err error) bool {
	return HasCode(err, ErrCodePositionNotFound)
}
