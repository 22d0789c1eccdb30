package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// Session tokens
	ErrInvalidToken     = errors.New("invalid session token")
	ErrTokenExpired     = errors.New("session token expired")
	ErrBadSigningMethod = errors.New("unexpected token signing method")

	// Authorization
	ErrUnauthorized       = errors.New("Unauthorized")
	ErrForbidden          = errors.New("Forbidden")
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrAccountLocked      = errors.New("Too many failed attempts. Try again later.")

	// Context
	ErrNoSessionInContext = errors.New("no session claims in request context")

	// Generic
	ErrNotFound   = errors.New("record not found")
	ErrBadRequest = errors.New("invalid request")
)

// HttpError carries the HTTP status and a user-facing message alongside the
// internal cause, which is logged but never sent to the client.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Context map[string]interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error {
	return e.Err
}

func NewHttpError(code int, message string, err error, ctx map[string]interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Context: ctx}
}

func NewBadRequestError(message string) *HttpError {
	return &HttpError{Code: http.StatusBadRequest, Message: message}
}

func NewNotFoundError(message string) *HttpError {
	return &HttpError{Code: http.StatusNotFound, Message: message}
}

func NewConflictError(message string) *HttpError {
	return &HttpError{Code: http.StatusConflict, Message: message}
}

// StatusOf maps the sentinel taxonomy to wire status codes. Unauthorized and
// Forbidden both surface as 403: the wire code coincides even though the
// conditions are distinct (no valid identity vs. identity without entitlement).
func StatusOf(err error) int {
	var httpErr *HttpError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}
	switch {
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrAccountLocked):
		return http.StatusTooManyRequests
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
