package transport

import (
	"fmt"
	"net/http"

	"github.com/rhuss/streamline/pkg/api"
)

// Recovery returns middleware that catches panics in the handler and
// converts them to unclassified failures, so they reach the exception
// handler like any other error. http.ErrAbortHandler is re-raised.
func Recovery() Middleware {
	return func(next Handler) Handler {
		return HandlerFunc(func(rc *RequestContext) (retErr error) {
			defer func() {
				if r := recover(); r != nil {
					if r == http.ErrAbortHandler {
						panic(r)
					}
					retErr = api.NewUnclassified(fmt.Sprintf("internal server error: %v", r))
				}
			}()
			return next.ServeRequest(rc)
		})
	}
}
