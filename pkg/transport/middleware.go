package transport

// Middleware decorates the Handler behind a route. Request IDs, request
// logging, exception normalization and panic recovery are all middleware
// around the stream and cancel handlers.
type Middleware func(Handler) Handler

// Chain folds mws into one Middleware whose first element sees a request
// first and its outcome last, so Chain(a, b, c)(h) serves as a(b(c(h))).
// An exception handler placed before Recovery therefore also sees
// recovered panics.
func Chain(mws ...Middleware) Middleware {
	return func(h Handler) Handler {
		for i := range mws {
			h = mws[len(mws)-1-i](h)
		}
		return h
	}
}
