package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for simple conditions without extra context.
var (
	ErrKeyNotFound        = errors.New("key not found")
	ErrTenantNotFound     = errors.New("tenant not found")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// SlugConflictError is returned when a tenant slug is already in use.
type SlugConflictError struct {
	Slug string
}

func (e *SlugConflictError) Error() string {
	return fmt.Sprintf("slug %q is already in use", e.Slug)
}

// EmailConflictError is returned when an account email is already registered.
type EmailConflictError struct {
	Email string
}

func (e *EmailConflictError) Error() string {
	return fmt.Sprintf("email %q is already registered", e.Email)
}

// DuplicateItemError reports an add of an item whose id is already present.
// It is informational, not a failure: containers leave the sequence
// untouched and the UI shows a duplicate notice.
type DuplicateItemError struct {
	Kind ContainerKind
	ID   string
}

func (e *DuplicateItemError) Error() string {
	return fmt.Sprintf("item %q is already in the %s", e.ID, e.Kind)
}

// TransitionError is returned when a session-state transition is not allowed.
type TransitionError struct {
	Event   SessionEvent
	Current SessionState
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("event %q is not valid from state %q", e.Event, e.Current)
}
