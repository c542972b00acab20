// Package stream writes a lazy sequence of text items to a client one line
// at a time.
//
// An [Emitter] configures the response so that no layer buffers it
// (client, reverse proxy, server), then ranges over a [Source]. Every item
// is written as a single line, flushed before the next item is produced,
// and followed by a pacing delay. Flushes and delays are cancellable
// through the context; a cancelled or failed stream stops between items,
// never in the middle of one.
//
// The HTTP implementation of [Sink] lives in pkg/transport/http.
package stream
