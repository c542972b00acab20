package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/rhuss/streamline/pkg/stream"
)

// responseSink implements stream.Sink on top of an http.ResponseWriter.
// Flushing and deadline control go through http.ResponseController, so
// wrapping writers only need to provide Unwrap.
type responseSink struct {
	w  http.ResponseWriter
	rc *http.ResponseController
}

var _ stream.Sink = (*responseSink)(nil)

func newResponseSink(w http.ResponseWriter) *responseSink {
	return &responseSink{
		w:  w,
		rc: http.NewResponseController(w),
	}
}

func (s *responseSink) Header() http.Header {
	return s.w.Header()
}

func (s *responseSink) Write(p []byte) (int, error) {
	return s.w.Write(p)
}

// Flush sends buffered data to the client.
func (s *responseSink) Flush() error {
	return s.rc.Flush()
}

// DisableBuffering lifts the server write deadline so a paced stream is
// not cut off by http.Server.WriteTimeout. Writers that do not support
// deadlines are accepted as they are.
func (s *responseSink) DisableBuffering() error {
	if err := s.rc.SetWriteDeadline(time.Time{}); err != nil && !errors.Is(err, http.ErrNotSupported) {
		return err
	}
	return nil
}
