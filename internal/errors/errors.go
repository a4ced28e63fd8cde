package errors

import "errors"

// Common error types for the cinema client
var (
	// Session errors
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrCorruptSnapshot  = errors.New("corrupt session snapshot")

	// Storage errors
	ErrWrongPassphrase = errors.New("wrong passphrase or tampered file")
	ErrNotFound        = errors.New("not found")

	// Cache errors
	ErrInvalidKey      = errors.New("invalid cache key")
	ErrUnknownMutation = errors.New("unknown mutation")

	// General errors
	ErrInvalidRequest = errors.New("invalid request")
)
