package api

import (
	"regexp"

	"github.com/google/uuid"
)

// maxRequestIDLength bounds client supplied X-Request-ID values.
const maxRequestIDLength = 128

var requestIDPattern = regexp.MustCompile(`^[A-Za-z0-9._:\-]+$`)

// NewRequestID generates a random request ID.
func NewRequestID() string {
	return uuid.NewString()
}

// ValidateRequestID reports whether id is acceptable as a request ID:
// non-empty, at most 128 characters, and limited to letters, digits and
// ". _ : -".
func ValidateRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	return requestIDPattern.MatchString(id)
}
