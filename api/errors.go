package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// Kind separates the failures a consumer has to treat differently.
type Kind int

const (
	KindNetwork     Kind = iota + 1 // no response from the server
	KindAPI                         // non-2xx with a server message
	KindValidation                  // 400 with field errors
	KindAuthExpired                 // session could not be renewed
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindAPI:
		return "api"
	case KindValidation:
		return "validation"
	case KindAuthExpired:
		return "auth_expired"
	}
	return "unknown"
}

// Error is the only error type the adapter produces.
type Error struct {
	Kind      Kind
	Method    string
	Path      string
	Status    int               // 0 for network failures
	Code      int               // server error code (1001 invalid credentials, ...)
	Message   string            // server-supplied message when available
	Fields    map[string]string // field -> message for KindValidation
	Details   json.RawMessage   // raw details as sent
	RequestID string
	Err       error // underlying cause, if any
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindNetwork:
		return fmt.Sprintf("%s %s: network error: %v", e.Method, e.Path, e.Err)
	case KindAuthExpired:
		return fmt.Sprintf("session expired: %v", e.Err)
	}
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// AsError extracts the adapter error from anywhere in err's chain.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

func IsKind(err error, kind Kind) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.Kind == kind
}

func IsNetwork(err error) bool {
	return IsKind(err, KindNetwork)
}

func IsValidation(err error) bool {
	return IsKind(err, KindValidation)
}

func IsAuthExpired(err error) bool {
	return IsKind(err, KindAuthExpired)
}

func IsStatus(err error, status int) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.Status == status
}

func IsUnauthorized(err error) bool {
	return IsStatus(err, http.StatusUnauthorized)
}

// AuthExpired marks a failed session renewal.
func AuthExpired(cause error) *Error {
	e := &Error{Kind: KindAuthExpired, Err: cause}
	if prev, ok := AsError(cause); ok {
		e.Status = prev.Status
		e.Code = prev.Code
		e.Message = prev.Message
		e.Path = prev.Path
		e.Method = prev.Method
		e.RequestID = prev.RequestID
	}
	return e
}
