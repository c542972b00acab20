// Package transport defines the request handler contract, the per-request
// context bundle and the middleware chain of the streamline HTTP service.
//
// # Handlers
//
// A [Handler] receives a [RequestContext] and returns an error instead of
// writing error responses itself. The context bundles the *http.Request
// with a [Response], a wrapper around http.ResponseWriter that knows
// whether headers or body bytes have been committed. That flag is the
// single source of truth for deciding if an error document may still be
// written.
//
// # Exception handling
//
// [HandleExceptions] routes every error returned by a handler to an
// [ExceptionHandler]. The handler classifies the failure with
// [StatusFromKind], logs it and delegates the write to a [ProblemWriter].
// When the response has already started, the handler declines and the
// partial response is left as is. When the writer cannot write, a plain
// status page is written instead.
//
// # Middleware
//
// Built-in middleware provides panic recovery, request ID assignment
// (X-Request-ID) and request logging via log/slog. HTTP-level middleware
// (CORS) operates on plain http.Handler values.
package transport
