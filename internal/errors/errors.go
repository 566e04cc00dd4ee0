package errors

import (
	"errors"
	"fmt"
)

// Common error types for the saved cart service and its client
var (
	// Identity errors
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrInvalidToken     = errors.New("invalid token")
	ErrTokenExpired     = errors.New("token expired")
	ErrForbidden        = errors.New("forbidden")

	// Request errors
	ErrInvalidRequest    = errors.New("invalid request")
	ErrMissingCustomerID = errors.New("customer id is required")
	ErrInvalidItem       = errors.New("invalid saved item")

	// Remote persistence errors (client side)
	ErrRemoteUnavailable = errors.New("remote persistence unavailable")
	ErrMalformedResponse = errors.New("malformed response")

	// Storage errors (service side)
	ErrStorageFailure = errors.New("storage failure")

	// General errors
	ErrNotFound    = errors.New("not found")
	ErrInternal    = errors.New("internal error")
	ErrUnsupported = errors.New("unsupported operation")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Join is errors.Join, re-exported so callers need a single errors import
func Join(errs ...error) error {
	return errors.Join(errs...)
}
