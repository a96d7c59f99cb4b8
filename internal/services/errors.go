package services

import "errors"

// Sentinel errors returned by the services. The HTTP layer maps these to
// status codes in one place; anything else becomes a 500.
var (
	// ErrEmailTaken is returned when registering an email that already
	// has an account.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password, so a login response never reveals whether the account
	// exists.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTodoNotFound is returned when a todo id does not exist.
	ErrTodoNotFound = errors.New("todo not found")

	// ErrNotOwner is returned when a todo exists but belongs to another
	// user. Existence is always checked first, so callers probing foreign
	// ids get 403, never 200.
	ErrNotOwner = errors.New("todo owned by another user")
)
