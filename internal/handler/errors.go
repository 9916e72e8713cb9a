package handler

import (
	"net/http"
)

// ErrorKind identifies the stage of an invocation that failed.
type ErrorKind int

const (
	// SecretRetrievalError is a failed secret store lookup.
	SecretRetrievalError ErrorKind = iota

	// SecretParseError is a secret payload that isn't a JSON credentials object.
	SecretParseError

	// ConnectionError is a failure to connect to the database.
	ConnectionError

	// RequestParseError is a request body that isn't valid JSON.
	RequestParseError

	// MissingQueryError is a request without a sql_query.
	MissingQueryError

	// ValidationError is a statement rejected by the allow-list, or an unknown output format.
	ValidationError

	// ExecutionError is a failure to run the statement or encode its result.
	ExecutionError

	// TeardownError is a failure to close the database connection.
	TeardownError
)

// String returns the name of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case SecretRetrievalError:
		return "SecretRetrievalError"
	case SecretParseError:
		return "SecretParseError"
	case ConnectionError:
		return "ConnectionError"
	case RequestParseError:
		return "RequestParseError"
	case MissingQueryError:
		return "MissingQueryError"
	case ValidationError:
		return "ValidationError"
	case ExecutionError:
		return "ExecutionError"
	case TeardownError:
		return "TeardownError"
	default:
		return "UnknownError"
	}
}

// Status returns the HTTP status reported for the error kind: 400 for problems with the
// request, 500 for everything on the server side.
func (k ErrorKind) Status() int {
	switch k {
	case RequestParseError, MissingQueryError, ValidationError:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Error is a failed invocation. Message is what the caller sees.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying error, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}
