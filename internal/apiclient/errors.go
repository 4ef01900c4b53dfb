package apiclient

import (
	"errors"
	"fmt"
)

// ConnectionFailedMessage is reported when the endpoint cannot be reached.
const ConnectionFailedMessage = "Connection failed. Possible causes: CORS block, wrong deployment URL, or internet issue."

// DefaultOperationMessage is used when a failed response carries no message.
const DefaultOperationMessage = "Operation failed"

// ConnectionError means the request never produced an HTTP response.
type ConnectionError struct {
	Operation string
	Cause     error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Operation, ConnectionFailedMessage, e.Cause)
}

func (e *ConnectionError) Unwrap() error {
	return e.Cause
}

// HTTPError is a non-2xx response.
type HTTPError struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s: server returned %d: %s", e.Operation, e.StatusCode, e.Body)
}

// OperationError is a well-formed response with ok set to false.
type OperationError struct {
	Operation string
	Message   string
}

func (e *OperationError) Error() string {
	return e.Message
}

// NotFoundError means a single-record read returned no record.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ResponseError is a 2xx response whose body is not a valid envelope.
type ResponseError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *ResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Operation, e.Message)
}

func (e *ResponseError) Unwrap() error {
	return e.Cause
}

// InputError wraps a payload rejected before it was sent.
type InputError struct {
	Operation string
	Cause     error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: invalid input: %v", e.Operation, e.Cause)
}

func (e *InputError) Unwrap() error {
	return e.Cause
}

// Message returns the human-readable text for err, or fallback when err
// does not come from this package.
func Message(err error, fallback string) string {
	var (
		connErr     *ConnectionError
		httpErr     *HTTPError
		opErr       *OperationError
		notFoundErr *NotFoundError
		respErr     *ResponseError
		inputErr    *InputError
	)
	switch {
	case err == nil:
		return fallback
	case errors.As(err, &connErr):
		return ConnectionFailedMessage
	case errors.As(err, &opErr):
		return opErr.Message
	case errors.As(err, &notFoundErr):
		return notFoundErr.Error()
	case errors.As(err, &httpErr):
		return fmt.Sprintf("Server returned %d", httpErr.StatusCode)
	case errors.As(err, &respErr):
		return "Unexpected response from server"
	case errors.As(err, &inputErr):
		return inputErr.Cause.Error()
	default:
		if fallback != "" {
			return fallback
		}
		return err.Error()
	}
}
