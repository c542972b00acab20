package api

import (
	"errors"
	"fmt"
)

// Kind tags a Failure with the category the exception normalizer
// classifies on. The set is closed; anything that is not a *Failure is
// KindUnclassified.
type Kind string

const (
	KindInvalidArgument Kind = "invalid argument"
	KindUnclassified    Kind = "unclassified"
)

// ErrStreamInterrupted is wrapped by errors returned from a stream whose
// client went away or whose context was cancelled mid-stream. Such errors
// never produce a Problem document.
var ErrStreamInterrupted = errors.New("stream interrupted")

// Failure is an error raised by a request handler. It carries the kind used
// for status classification and a human readable message that is exposed
// to clients as the Problem detail.
type Failure struct {
	Kind    Kind
	Message string
	Cause   error
}

// Error implements the error interface.
func (f *Failure) Error() string {
	if f.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", f.Kind, f.Message, f.Cause)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// Unwrap returns the underlying cause, if any.
func (f *Failure) Unwrap() error {
	return f.Cause
}

// NewInvalidArgument creates a Failure for bad client input.
func NewInvalidArgument(message string) *Failure {
	return &Failure{Kind: KindInvalidArgument, Message: message}
}

// NewInvalidArgumentf is like NewInvalidArgument with a format string.
func NewInvalidArgumentf(format string, args ...any) *Failure {
	return NewInvalidArgument(fmt.Sprintf(format, args...))
}

// NewUnclassified creates a Failure of the default kind.
func NewUnclassified(message string) *Failure {
	return &Failure{Kind: KindUnclassified, Message: message}
}

// WrapFailure tags cause with kind. The message defaults to the cause's
// error text.
func WrapFailure(kind Kind, cause error, message string) *Failure {
	if message == "" && cause != nil {
		message = cause.Error()
	}
	return &Failure{Kind: kind, Message: message, Cause: cause}
}

// KindOf returns the kind of the first *Failure in err's chain, or
// KindUnclassified if there is none.
func KindOf(err error) Kind {
	var f *Failure
	if errors.As(err, &f) && f.Kind != "" {
		return f.Kind
	}
	return KindUnclassified
}

// MessageOf returns the client-facing message for err: the message of the
// first *Failure in the chain, or err.Error() for plain errors.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var f *Failure
	if errors.As(err, &f) {
		return f.Message
	}
	return err.Error()
}
