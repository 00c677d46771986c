package graph

import (
	"errors"
	"fmt"
)

// ErrConfig, ErrTransport and ErrRemote are the three failure kinds the
// client distinguishes. Callers can branch on them with errors.Is.
var (
	// ErrConfig marks a malformed call detected before any network I/O.
	ErrConfig = errors.New("configuration error")
	// ErrTransport marks a failed HTTP exchange or an unparseable response body.
	ErrTransport = errors.New("transport error")
	// ErrRemote marks a request the Graph API itself rejected.
	ErrRemote = errors.New("remote api error")
)

// WrapConfig annotates an error as a configuration error.
func WrapConfig(err error) error {
	if err == nil {
		return ErrConfig
	}
	return fmt.Errorf("%w: %v", ErrConfig, err)
}

// WrapTransport annotates an error as a transport error.
func WrapTransport(err error) error {
	if err == nil {
		return ErrTransport
	}
	return fmt.Errorf("%w: %v", ErrTransport, err)
}

// APIError is the decoded error object the Graph API returns alongside a
// non-200 status. It wraps ErrRemote so errors.Is(err, ErrRemote) holds, and
// is reachable through errors.As for callers that need the raw code.
// A rejection with no decodable error object carries only HTTPStatus; Code
// stays zero so HTTP statuses never collide with Graph error codes.
type APIError struct {
	Message   string `json:"message"`
	Type      string `json:"type"`
	Code      int    `json:"code"`
	Subcode   int    `json:"error_subcode,omitempty"`
	FBTraceID string `json:"fbtrace_id,omitempty"`

	// HTTPStatus is the status of the exchange that produced the error.
	HTTPStatus int `json:"-"`
}

func (e *APIError) Error() string {
	if e.Type == "" && e.Code == 0 {
		return fmt.Sprintf("%v: %s (http status %d)", ErrRemote, e.Message, e.HTTPStatus)
	}
	return fmt.Sprintf("%v: %s (code %d, type %s)", ErrRemote, e.Message, e.Code, e.Type)
}

func (e *APIError) Unwrap() error {
	return ErrRemote
}
