package transport

import (
	"net/http"
	"sync/atomic"
)

// Response wraps an http.ResponseWriter and tracks whether the response
// has started: once WriteHeader, Write or Flush has committed the status
// line, no other status or error document can be sent.
//
// A status code set with SetStatusCode before the response starts is
// applied on the first write.
type Response struct {
	http.ResponseWriter

	started atomic.Bool
	pending int
	status  int
}

// NewResponse wraps w. If w is already a *Response it is returned as is.
func NewResponse(w http.ResponseWriter) *Response {
	if r, ok := w.(*Response); ok {
		return r
	}
	return &Response{ResponseWriter: w}
}

// HasStarted reports whether the status line and headers were committed.
func (r *Response) HasStarted() bool {
	return r.started.Load()
}

// SetStatusCode records the status to send on the first write. It has no
// effect once the response has started.
func (r *Response) SetStatusCode(code int) {
	if r.HasStarted() {
		return
	}
	r.pending = code
}

// StatusCode returns the committed status, or the pending status (200 if
// none) when the response has not started yet.
func (r *Response) StatusCode() int {
	if r.HasStarted() {
		return r.status
	}
	if r.pending != 0 {
		return r.pending
	}
	return http.StatusOK
}

// WriteHeader commits the status line. Informational (1xx) codes are
// passed through without committing.
func (r *Response) WriteHeader(code int) {
	if code >= 100 && code < 200 && code != http.StatusSwitchingProtocols {
		r.ResponseWriter.WriteHeader(code)
		return
	}
	if r.started.Swap(true) {
		return
	}
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Write commits the pending status if needed and writes b.
func (r *Response) Write(b []byte) (int, error) {
	r.commit()
	return r.ResponseWriter.Write(b)
}

// FlushError commits the pending status if needed and flushes the
// underlying writer. http.ResponseController prefers this method.
func (r *Response) FlushError() error {
	r.commit()
	return http.NewResponseController(r.ResponseWriter).Flush()
}

// Flush implements http.Flusher.
func (r *Response) Flush() {
	_ = r.FlushError()
}

// Unwrap returns the underlying ResponseWriter for http.NewResponseController.
func (r *Response) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func (r *Response) commit() {
	if r.HasStarted() {
		return
	}
	r.WriteHeader(r.StatusCode())
}
