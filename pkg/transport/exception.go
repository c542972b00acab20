package transport

import (
	"context"
	"errors"
	"log/slog"

	"github.com/rhuss/streamline/pkg/api"
)

// ExceptionHandler turns an error returned by a handler into a Problem
// document. It is the terminal handler for otherwise unhandled failures
// and never returns an error itself.
type ExceptionHandler struct {
	problems ProblemWriter
	logger   *slog.Logger
}

// NewExceptionHandler creates an ExceptionHandler writing through problems.
// A nil problems uses a JSONProblemWriter with the default customizers; a
// nil logger uses slog.Default().
func NewExceptionHandler(problems ProblemWriter, logger *slog.Logger) *ExceptionHandler {
	if problems == nil {
		problems = NewJSONProblemWriter(DefaultCustomizers(nil)...)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ExceptionHandler{problems: problems, logger: logger}
}

// TryHandle writes a Problem for err to rc's response. It returns false
// without writing when err or rc is missing, when the response has already
// started, or when the problem writer could not write the document.
func (h *ExceptionHandler) TryHandle(ctx context.Context, rc *RequestContext, err error) bool {
	if err == nil || rc == nil || rc.Request == nil || rc.Response == nil {
		return false
	}

	if rc.Response.HasStarted() {
		h.logger.LogAttrs(ctx, slog.LevelWarn,
			"the response has already started, unable to handle the exception",
			slog.String("request_id", RequestIDFromContext(ctx)),
		)
		return false
	}

	kind := api.KindOf(err)
	message := api.MessageOf(err)

	h.logger.LogAttrs(ctx, slog.LevelError, "unhandled exception "+message,
		slog.String("request_id", RequestIDFromContext(ctx)),
		slog.String("kind", string(kind)),
		slog.String("error", err.Error()),
	)

	status := StatusFromKind(kind)
	rc.Response.SetStatusCode(status)

	problem := &api.Problem{
		Status: status,
		Title:  api.DefaultProblemTitle,
		Type:   string(kind),
		Detail: message,
	}

	return h.problems.TryWrite(ctx, &ProblemContext{
		Err:     err,
		Request: rc,
		Problem: problem,
	})
}

// HandleExceptions returns middleware that passes every error returned by
// the next handler to h. Errors wrapping api.ErrStreamInterrupted are only
// recorded: the client is gone and nothing can be written. If h declines
// and the response has not started, a plain status page is written.
//
// The returned handler always returns nil.
func HandleExceptions(h *ExceptionHandler) Middleware {
	return func(next Handler) Handler {
		return HandlerFunc(func(rc *RequestContext) error {
			err := next.ServeRequest(rc)
			if err == nil {
				return nil
			}
			rc.Failure = err

			if errors.Is(err, api.ErrStreamInterrupted) {
				return nil
			}

			if h.TryHandle(rc.Context(), rc, err) {
				rc.Handled = true
				return nil
			}

			WriteStatusPage(rc.Response)
			return nil
		})
	}
}
