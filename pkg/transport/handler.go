package transport

import (
	"context"
	"net/http"
)

// Handler processes a single request. Errors are not written by the
// handler; they are returned and normalized by the exception middleware.
type Handler interface {
	ServeRequest(rc *RequestContext) error
}

// HandlerFunc is an adapter that allows using an ordinary function as a
// Handler.
type HandlerFunc func(rc *RequestContext) error

// ServeRequest calls f(rc).
func (f HandlerFunc) ServeRequest(rc *RequestContext) error {
	return f(rc)
}

// RequestContext is the explicit per-request parameter bundle passed to
// handlers and to the exception handler. It is owned by the goroutine
// serving the request.
type RequestContext struct {
	Request  *http.Request
	Response *Response

	// Failure is the error returned by the handler, recorded by
	// HandleExceptions for logging and metrics.
	Failure error

	// Handled reports whether the exception handler wrote a Problem.
	Handled bool
}

// NewRequestContext wraps w and r into a RequestContext.
func NewRequestContext(w http.ResponseWriter, r *http.Request) *RequestContext {
	return &RequestContext{
		Request:  r,
		Response: NewResponse(w),
	}
}

// Context returns the request's context.
func (rc *RequestContext) Context() context.Context {
	return rc.Request.Context()
}

// SetContext replaces the request's context.
func (rc *RequestContext) SetContext(ctx context.Context) {
	rc.Request = rc.Request.WithContext(ctx)
}
