package domain

import "errors"

var (
	// ErrInvalidInput marks malformed or missing request data.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotAuthorized is returned when an email is outside the allow-list.
	// Surfaced as a 401 with an access-denied message, distinct from
	// ErrInvalidCredentials.
	ErrNotAuthorized = errors.New("email not authorized")

	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password, so the response does not reveal which check failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrRegistrationClosed = errors.New("registration is closed")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrProjectNotFound    = errors.New("project not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
)
