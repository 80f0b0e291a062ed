package errx

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	// SystemErrorMessage is a user-facing fallback when internal errors occur.
	SystemErrorMessage = "internal assistant error"
	// StoreErrorMessage describes dialogue history store failures.
	StoreErrorMessage = "history store operation failed"
	// RedisErrorMessage describes Redis related failures.
	RedisErrorMessage = "redis operation failed"
	// RedisNotFoundMessage describes a missing Redis key.
	RedisNotFoundMessage = "redis key not found"
	// CipherErrorMessage describes encryption or decryption failures.
	CipherErrorMessage = "cipher operation failed"
	// HandlerErrorMessage describes an intent handler failure.
	HandlerErrorMessage = "intent handler failed"
)

// AppError wraps an underlying error with an HTTP-style status and a message
// that is safe to surface to the user.
type AppError struct {
	Err     error
	Status  int
	Message string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with the provided information.
func New(err error, status int, message string) *AppError {
	return &AppError{
		Err:     err,
		Status:  status,
		Message: message,
	}
}

// WrapStore wraps a history store error with a consistent status and message.
func WrapStore(err error) error {
	if err == nil {
		return nil
	}
	return New(err, http.StatusInternalServerError, StoreErrorMessage)
}

// WrapCipher wraps an encryption or decryption error.
func WrapCipher(err error) error {
	if err == nil {
		return nil
	}
	return New(err, http.StatusInternalServerError, CipherErrorMessage)
}

// WrapHandler wraps an intent handler error so the dispatch boundary can
// distinguish collaborator failures from classification misses.
func WrapHandler(err error) error {
	if err == nil {
		return nil
	}
	return New(err, http.StatusBadGateway, HandlerErrorMessage)
}

// Is reports whether the target matches the underlying error or the AppError itself.
func (e *AppError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// As allows casting to AppError or the wrapped error in a chain.
func (e *AppError) As(target any) bool {
	if errors.As(e.Err, target) {
		return true
	}
	if t, ok := target.(**AppError); ok {
		*t = e
		return true
	}
	return false
}
