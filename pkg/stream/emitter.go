package stream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rhuss/streamline/pkg/api"
	"github.com/rhuss/streamline/pkg/debug"
)

// DefaultInterval is the pacing delay between two items.
const DefaultInterval = time.Second

// Sink is the response an Emitter writes to. It is owned by a single
// stream for its whole lifetime.
type Sink interface {
	Header() http.Header
	Write(p []byte) (int, error)

	// Flush sends everything written so far to the client and returns
	// once the bytes were handed to the transport.
	Flush() error

	// DisableBuffering turns off server-side response buffering for the
	// rest of the response.
	DisableBuffering() error
}

// Emitter streams a Source to a Sink as newline-terminated lines.
type Emitter struct {
	// Interval is the pause after each flushed line. Zero means
	// DefaultInterval; a negative value disables pacing.
	Interval time.Duration

	// OnChunk, if set, is called after each line was flushed.
	OnChunk func(line string)
}

// NewEmitter creates an Emitter pacing lines by interval.
func NewEmitter(interval time.Duration) *Emitter {
	return &Emitter{Interval: interval}
}

// SetHeaders sets the content type and the headers telling clients and
// proxies not to buffer or cache the response.
func SetHeaders(h http.Header) {
	h.Set("Content-Type", "text/plain")
	h.Set("X-Accel-Buffering", "no")
	h.Set("Pragma", "no-cache")
	h.Set("Cache-Control", "no-cache")
}

// clearHeaders undoes SetHeaders so that an error response written in
// place of the stream does not advertise it.
func clearHeaders(h http.Header) {
	for _, k := range streamHeaders {
		h.Del(k)
	}
}

var streamHeaders = []string{"Content-Type", "X-Accel-Buffering", "Pragma", "Cache-Control"}

// Emit writes every item of src to sink, one line per item, and returns
// the number of lines flushed.
//
// A source error before the first line is returned as is; nothing has been
// written yet, so the caller can still report it. Any failure after that
// point is returned wrapping api.ErrStreamInterrupted. When Emit fails
// before the first line, the stream headers are removed again.
func (e *Emitter) Emit(ctx context.Context, sink Sink, src Source) (int, error) {
	SetHeaders(sink.Header())
	if err := sink.DisableBuffering(); err != nil {
		clearHeaders(sink.Header())
		return 0, fmt.Errorf("disabling response buffering: %w", err)
	}

	n := 0
	for item, err := range src.Items(ctx) {
		if err != nil {
			if n == 0 && ctx.Err() == nil {
				clearHeaders(sink.Header())
				return 0, err
			}
			return n, interrupted(err)
		}
		if err := ctx.Err(); err != nil {
			return n, interrupted(err)
		}

		line := item + "\n"
		if _, err := sink.Write([]byte(line)); err != nil {
			return n, interrupted(fmt.Errorf("write: %w", err))
		}
		if err := sink.Flush(); err != nil {
			return n, interrupted(fmt.Errorf("flush: %w", err))
		}
		n++

		debug.Log("streaming", "chunk flushed", "index", n, "bytes", len(line))
		debug.Trace("streaming", "chunk", "line", item)
		if e.OnChunk != nil {
			e.OnChunk(line)
		}

		if err := sleep(ctx, e.interval()); err != nil {
			return n, interrupted(err)
		}
	}
	return n, nil
}

func (e *Emitter) interval() time.Duration {
	if e.Interval == 0 {
		return DefaultInterval
	}
	return e.Interval
}

// sleep pauses for d or until ctx is done, whichever comes first.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func interrupted(err error) error {
	if errors.Is(err, api.ErrStreamInterrupted) {
		return err
	}
	return fmt.Errorf("%w: %w", api.ErrStreamInterrupted, err)
}
