package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the coarse classification of a failed gateway call.
type Kind string

const (
	KindNetwork    Kind = "network"
	KindAuth       Kind = "auth"
	KindValidation Kind = "validation"
	KindConflict   Kind = "conflict"
	KindNotFound   Kind = "not_found"
	KindServer     Kind = "server"
)

// Error carries the server's message verbatim alongside the kind and
// HTTP status. Transport failures have Status 0 and KindNetwork.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("gateway: %s", e.Message)
	}
	return fmt.Sprintf("gateway: %s (%d): %s", e.Kind, e.Status, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

func networkError(err error) *Error {
	return &Error{Kind: KindNetwork, Message: err.Error(), cause: err}
}

func statusError(status int, message string) *Error {
	if message == "" {
		message = http.StatusText(status)
	}
	return &Error{Kind: kindForStatus(status), Status: status, Message: message}
}

func kindForStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return KindAuth
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusConflict:
		return KindConflict
	case status >= 400 && status < 500:
		return KindValidation
	default:
		return KindServer
	}
}

// AsError extracts a gateway *Error from err, if any.
func AsError(err error) (*Error, bool) {
	var ge *Error
	if errors.As(err, &ge) {
		return ge, true
	}
	return nil, false
}

// IsKind reports whether err is a gateway error of the given kind.
func IsKind(err error, kind Kind) bool {
	if ge, ok := AsError(err); ok {
		return ge.Kind == kind
	}
	return false
}

func IsAuth(err error) bool     { return IsKind(err, KindAuth) }
func IsConflict(err error) bool { return IsKind(err, KindConflict) }
func IsNotFound(err error) bool { return IsKind(err, KindNotFound) }
