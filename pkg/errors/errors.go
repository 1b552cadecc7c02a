package errors

import "fmt"

// ErrInvalidArgument indicates a malformed input, rejected before any state change
type ErrInvalidArgument struct {
	Field  string
	Reason string
}

func (e *ErrInvalidArgument) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ErrNotFound indicates a missing resource
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUserNotFound indicates the inquiry was attempted without a resolvable user
type ErrUserNotFound struct {
	UserID string
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrUnauthorized indicates a failed authentication attempt
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	return e.Message
}

// ErrTemplateUnavailable indicates the inquiry template could not be read
type ErrTemplateUnavailable struct {
	Path string
	Err  error
}

func (e *ErrTemplateUnavailable) Error() string {
	return fmt.Sprintf("inquiry template unavailable at %s: %v", e.Path, e.Err)
}

func (e *ErrTemplateUnavailable) Unwrap() error {
	return e.Err
}

// ErrNotifierFailure indicates the mail dispatch failed or timed out
type ErrNotifierFailure struct {
	Err error
}

func (e *ErrNotifierFailure) Error() string {
	return fmt.Sprintf("inquiry delivery failed: %v", e.Err)
}

func (e *ErrNotifierFailure) Unwrap() error {
	return e.Err
}

// ErrInvalidStateTransition indicates an invalid cart state transition
type ErrInvalidStateTransition struct {
	From interface{}
	To   interface{}
}

func (e *ErrInvalidStateTransition) Error() string {
	return fmt.Sprintf("invalid state transition from %v to %v", e.From, e.To)
}
