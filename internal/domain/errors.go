package domain

import (
	"errors"
	"fmt"
)

// Causes wrapped by the operation errors below.
var (
	ErrNoSession          = errors.New("not logged in")
	ErrNotFound           = errors.New("link not found")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrEmptyPatch         = errors.New("nothing to update")
	ErrInvalidCredentials = errors.New("invalid login credentials")
	ErrEmailTaken         = errors.New("user already registered")
	ErrInvalidEmail       = errors.New("unable to validate email address: invalid format")
	ErrWeakPassword       = errors.New("password is too short")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// AuthError is returned when the auth provider rejects credentials or a signup.
type AuthError struct {
	Op  string // "login" | "signup" | "logout"
	Err error
}

func (e *AuthError) Error() string { return fmt.Sprintf("%s failed: %v", e.Op, e.Err) }
func (e *AuthError) Unwrap() error { return e.Err }

// FetchError is returned when listing links fails.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string { return fmt.Sprintf("failed to fetch links: %v", e.Err) }
func (e *FetchError) Unwrap() error { return e.Err }

// MutationError is returned when a create, update or delete fails.
type MutationError struct {
	Op  string // "create" | "update" | "delete"
	ID  string // empty on create
	Err error
}

func (e *MutationError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("failed to %s link: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("failed to %s link %s: %v", e.Op, e.ID, e.Err)
}

func (e *MutationError) Unwrap() error { return e.Err }
