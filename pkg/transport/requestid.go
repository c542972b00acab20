package transport

import (
	"context"

	"github.com/rhuss/streamline/pkg/api"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

type contextKey int

const requestIDKey contextKey = iota

// RequestIDFromContext returns the ID the RequestID middleware assigned,
// or "" outside of it. A stream started with a given ID can be cancelled
// through DELETE on the stream path followed by that ID.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// ContextWithRequestID stores id as the request ID of ctx.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestID returns middleware that assigns a request ID to each request.
// A valid X-Request-ID header sent by the client is reused; otherwise a new
// ID is generated. The ID is stored in the request context (see
// RequestIDFromContext) and echoed in the X-Request-ID response header.
func RequestID() Middleware {
	return func(next Handler) Handler {
		return HandlerFunc(func(rc *RequestContext) error {
			id := RequestIDFromContext(rc.Context())
			if id == "" {
				id = rc.Request.Header.Get(RequestIDHeader)
				if !api.ValidateRequestID(id) {
					id = api.NewRequestID()
				}
				rc.SetContext(ContextWithRequestID(rc.Context(), id))
			}
			if !rc.Response.HasStarted() {
				rc.Response.Header().Set(RequestIDHeader, id)
			}
			return next.ServeRequest(rc)
		})
	}
}
