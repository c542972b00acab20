package transport

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/rhuss/streamline/pkg/api"
)

// Logging returns middleware that emits one structured log entry per
// request, after the inner chain (including exception handling) has run.
// The level follows the outcome: ERROR for 5xx, WARN for 4xx, INFO for
// interrupted streams, DEBUG for everything else.
func Logging(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next Handler) Handler {
		return HandlerFunc(func(rc *RequestContext) error {
			start := time.Now()

			err := next.ServeRequest(rc)

			ctx := rc.Context()
			status := rc.Response.StatusCode()
			attrs := []slog.Attr{
				slog.String("request_id", RequestIDFromContext(ctx)),
				slog.String("method", rc.Request.Method),
				slog.String("path", rc.Request.URL.Path),
				slog.Int("status", status),
				slog.Duration("duration", time.Since(start)),
			}

			failure := rc.Failure
			if err != nil {
				failure = err
			}
			if failure != nil {
				attrs = append(attrs, slog.String("error", failure.Error()))
			}

			logger.LogAttrs(ctx, requestLogLevel(status, failure), "request completed", attrs...)
			return err
		})
	}
}

func requestLogLevel(status int, failure error) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	case errors.Is(failure, api.ErrStreamInterrupted):
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}
