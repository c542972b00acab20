package stream

import (
	"context"
	"iter"
	"slices"
)

// Source produces the items of a stream. Items returns a single-pass
// sequence; calling Items again starts a new, independent iteration.
// A non-nil error ends the stream.
type Source interface {
	Items(ctx context.Context) iter.Seq2[string, error]
}

// SliceSource is a Source over a fixed list of items. It is immutable and
// safe to share between concurrent streams.
type SliceSource struct {
	items []string
}

// NewSliceSource creates a SliceSource over a copy of items.
func NewSliceSource(items ...string) *SliceSource {
	return &SliceSource{items: slices.Clone(items)}
}

// Len returns the number of items.
func (s *SliceSource) Len() int {
	return len(s.items)
}

// Items yields the items in order. It stops early when ctx is done.
func (s *SliceSource) Items(ctx context.Context) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for _, item := range s.items {
			if err := ctx.Err(); err != nil {
				yield("", err)
				return
			}
			if !yield(item, nil) {
				return
			}
		}
	}
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context) iter.Seq2[string, error]

// Items calls f(ctx).
func (f SourceFunc) Items(ctx context.Context) iter.Seq2[string, error] {
	return f(ctx)
}

// Limit returns a Source yielding at most n items of src. A negative n
// yields everything. Errors from src are passed through.
func Limit(src Source, n int) Source {
	if n < 0 {
		return src
	}
	return SourceFunc(func(ctx context.Context) iter.Seq2[string, error] {
		return func(yield func(string, error) bool) {
			if n == 0 {
				return
			}
			seen := 0
			for item, err := range src.Items(ctx) {
				if !yield(item, err) || err != nil {
					return
				}
				if seen++; seen >= n {
					return
				}
			}
		}
	})
}
