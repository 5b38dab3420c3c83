package errors

import (
	"errors"
	"fmt"
)

type Status string

// A pool id or amount argument failed validation before any network call
const InvalidArgument Status = "InvalidArgument"

// An operation that needs a signer was called with no wallet set
const Unauthenticated Status = "Unauthenticated"

// The referenced pool does not exist on chain
const NotFound Status = "NotFound"

// The signer holds less of the asset than the requested amount
const InsufficientBalance Status = "InsufficientBalance"

// The signer has no holding account for the asset at all
const AccountNotFound Status = "AccountNotFound"

// The claims API answered with a non-2xx status
const RemoteServiceError Status = "RemoteServiceError"

// The claims API could not be reached at the transport level
const NetworkError Status = "NetworkError"

// No outcome for this error known
const UnknownError Status = "UnknownError"

type Error struct {
	Status  Status
	Message string
	// HTTP status answered by the remote service, for RemoteServiceError
	StatusCode int
}

var _ error = &Error{}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Status, e.Message)
}

func Errorf(status Status, format string, args ...interface{}) error {
	return &Error{
		Status:  status,
		Message: fmt.Sprintf(format, args...),
	}
}

func InvalidArgumentf(format string, args ...interface{}) error {
	return Errorf(InvalidArgument, format, args...)
}

func Unauthenticatedf(format string, args ...interface{}) error {
	return Errorf(Unauthenticated, format, args...)
}

func NotFoundf(format string, args ...interface{}) error {
	return Errorf(NotFound, format, args...)
}

func InsufficientBalancef(format string, args ...interface{}) error {
	return Errorf(InsufficientBalance, format, args...)
}

func AccountNotFoundf(format string, args ...interface{}) error {
	return Errorf(AccountNotFound, format, args...)
}

func NetworkErrorf(format string, args ...interface{}) error {
	return Errorf(NetworkError, format, args...)
}

// RemoteServicef carries the HTTP status code answered by the remote service.
func RemoteServicef(statusCode int, format string, args ...interface{}) error {
	return &Error{
		Status:     RemoteServiceError,
		Message:    fmt.Sprintf(format, args...),
		StatusCode: statusCode,
	}
}

// StatusOf reports the Status of an error produced by this package,
// or UnknownError for anything else (including pass-through ledger errors).
func StatusOf(err error) Status {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return UnknownError
}
