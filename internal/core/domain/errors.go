package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// CompletenessError reports which sensitive detail fields are still missing
// when a client is submitted for approval.
type CompletenessError struct {
	Missing []string
}

func (e *CompletenessError) Error() string {
	return fmt.Sprintf("missing fields: %s", strings.Join(e.Missing, ", "))
}

// AsCompleteness returns the CompletenessError wrapped in err, if any.
func AsCompleteness(err error) (*CompletenessError, bool) {
	var ce *CompletenessError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
