package transport

import (
	"fmt"
	"net/http"

	"github.com/rhuss/streamline/pkg/api"
)

// StatusFromKind maps a failure kind to the HTTP status code written by
// the exception handler. Kinds without an explicit mapping are server
// errors.
func StatusFromKind(kind api.Kind) int {
	switch kind {
	case api.KindInvalidArgument:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// WriteStatusPage writes a plain-text status page for the response's
// pending status (500 if the pending status is not an error status). It
// does nothing if the response has already started.
func WriteStatusPage(resp *Response) {
	if resp.HasStarted() {
		return
	}
	status := resp.StatusCode()
	if status < http.StatusBadRequest {
		status = http.StatusInternalServerError
	}
	http.Error(resp, fmt.Sprintf("Status Code: %d; %s", status, http.StatusText(status)), status)
}
