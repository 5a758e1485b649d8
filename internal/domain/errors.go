package domain

import "errors"

var (
	ErrValidation         = errors.New("invalid request")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserDisabled       = errors.New("account deactivated")
	ErrEmailTaken         = errors.New("email already registered")
	ErrTokenInvalid       = errors.New("invalid or expired verification code")
	ErrWeakPassword       = errors.New("password does not meet policy")
	ErrSelfDeactivation   = errors.New("cannot deactivate own account")
	ErrForbidden          = errors.New("insufficient role")
	ErrUnauthorized       = errors.New("authentication required")
)
