package domain

import "fmt"

// ErrorKind classifies a failed submission.
type ErrorKind string

const (
	ErrorKindValidation ErrorKind = "validation"
	ErrorKindTransport  ErrorKind = "transport"
	ErrorKindAPI        ErrorKind = "api"
)

// QueryError is the structured failure stored in a failed QueryState.
// Message is the single string shown to the user.
type QueryError struct {
	Kind       ErrorKind
	Message    string
	StatusCode int
	Err        error
}

func (e *QueryError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s error (status %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// NewValidationError reports bad input detected before any network activity.
func NewValidationError(message string) *QueryError {
	return &QueryError{Kind: ErrorKindValidation, Message: message}
}

// NewTransportError reports a network, timeout or decode failure.
func NewTransportError(err error) *QueryError {
	return &QueryError{
		Kind:    ErrorKindTransport,
		Message: fmt.Sprintf("Network error: %v", err),
		Err:     err,
	}
}

// NewAPIError reports a non-success HTTP status.
func NewAPIError(statusCode int, message string) *QueryError {
	return &QueryError{Kind: ErrorKindAPI, Message: message, StatusCode: statusCode}
}
