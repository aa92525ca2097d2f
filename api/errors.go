// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities for the timeloop library.

package api

import "fmt"

// Common errors used across the library.
var (
	ErrLoopClosed        = fmt.Errorf("event loop is closed")
	ErrEmptyTimerQueue   = fmt.Errorf("timer queue is empty")
	ErrNotRegistered     = fmt.Errorf("endpoint is not registered")
	ErrAlreadyRegistered = fmt.Errorf("endpoint is already registered")
	ErrTransportClosed   = fmt.Errorf("transport is closed")
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeLoopClosed
	ErrCodeEmptyTimerQueue
	ErrCodeNotRegistered
	ErrCodeAlreadyRegistered
	ErrCodeTransportClosed
	ErrCodeInternal
)

// sentinel maps an ErrorCode to its package-level sentinel, so that
// errors.Is keeps working on structured errors.
func (c ErrorCode) sentinel() error {
	switch c {
	case ErrCodeLoopClosed:
		return ErrLoopClosed
	case ErrCodeEmptyTimerQueue:
		return ErrEmptyTimerQueue
	case ErrCodeNotRegistered:
		return ErrNotRegistered
	case ErrCodeAlreadyRegistered:
		return ErrAlreadyRegistered
	case ErrCodeTransportClosed:
		return ErrTransportClosed
	default:
		return nil
	}
}

// Error represents a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (context: %+v)", e.Message, e.Context)
}

// Unwrap exposes the sentinel matching the error code.
func (e *Error) Unwrap() error {
	return e.Code.sentinel()
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Context: make(map[string]any),
	}
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}
