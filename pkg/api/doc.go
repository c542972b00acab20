// Package api defines the wire-level types shared by the streamline
// transport and streaming packages.
//
// The package performs no I/O. It provides:
//   - [Failure]: an error tagged with a [Kind], the unit the exception
//     normalizer classifies into an HTTP status code
//   - [Problem]: the structured error document written to clients as
//     application/problem+json
//   - [ErrStreamInterrupted]: the sentinel wrapped by stream errors caused by
//     client disconnects or cancellation
//   - request ID generation and validation
package api
