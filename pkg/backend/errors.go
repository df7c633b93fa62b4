package backend

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinel errors classifying backend failures. APIError unwraps to one of
// these based on HTTP status, so callers can use errors.Is without caring
// about status codes.
var (
	// ErrAuthExpired means the session cookie is missing or no longer valid.
	ErrAuthExpired = errors.New("backend: session expired")
	// ErrAuthUnverified means the account exists but has not passed OTP verification.
	ErrAuthUnverified = errors.New("backend: account not verified")
	// ErrNotFound means the owner has no café record yet.
	ErrNotFound = errors.New("backend: not found")
	// ErrMissingID is returned client-side when a mutation requires an item id
	// that was never resolved. No network call is made.
	ErrMissingID = errors.New("backend: menu item id is missing")
)

const genericFailureMessage = "Something went wrong!"

// APIError is a non-2xx response from the backend.
type APIError struct {
	Status  int
	Message string
	// Validation holds per-field messages when the backend rejects a payload
	// with an express-validator style errors array.
	Validation []string
}

func (e *APIError) Error() string {
	if len(e.Validation) > 0 {
		return fmt.Sprintf("backend: status %d: validation: %s", e.Status, strings.Join(e.Validation, "; "))
	}
	if e.Message != "" {
		return fmt.Sprintf("backend: status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend: status %d", e.Status)
}

func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return ErrAuthExpired
	case http.StatusForbidden:
		return ErrAuthUnverified
	case http.StatusNotFound:
		return ErrNotFound
	}
	return nil
}

// UserMessage renders the error the way it should be surfaced to the owner:
// joined validation messages first, then the server message, then a fixed
// fallback.
func (e *APIError) UserMessage() string {
	if len(e.Validation) > 0 {
		return "Validation failed:\n" + strings.Join(e.Validation, "\n")
	}
	if e.Message != "" {
		return "Error: " + e.Message
	}
	return genericFailureMessage
}

// UserMessage extracts a user-facing message from any backend error.
func UserMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage()
	}
	return genericFailureMessage
}

// ServerMessage returns the raw server message if err carries one.
func ServerMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}
