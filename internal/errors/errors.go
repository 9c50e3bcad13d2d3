package errors

import (
	"errors"
	"fmt"
)

// Common error types for the admin client
var (
	// Credential errors
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrInvalidStorageKey   = errors.New("invalid storage key")

	// Client errors
	ErrInvalidBaseURL = errors.New("invalid base URL")
	ErrInvalidRequest = errors.New("invalid request")
	ErrEmptyResponse  = errors.New("empty response")

	// Configuration errors
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}
