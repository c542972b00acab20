package transport

import (
	"context"
	"encoding/json"

	"github.com/rhuss/streamline/pkg/api"
)

// ProblemContext is passed to a ProblemWriter: the failure, the request it
// belongs to and the document built for it.
type ProblemContext struct {
	Err     error
	Request *RequestContext
	Problem *api.Problem
}

// ProblemWriter writes a Problem document to the response. TryWrite
// reports whether the body was written; it never panics.
type ProblemWriter interface {
	TryWrite(ctx context.Context, pc *ProblemContext) bool
}

// ProblemCustomizer attaches request-derived fields to the document about
// to be written. Customizers only fill fields that are still empty.
type ProblemCustomizer func(ctx context.Context, pc *ProblemContext, doc *api.Problem)

// WithInstance sets Instance to "<METHOD> <PATH>" of the request.
func WithInstance() ProblemCustomizer {
	return func(_ context.Context, pc *ProblemContext, doc *api.Problem) {
		if doc.Instance != "" || pc.Request == nil || pc.Request.Request == nil {
			return
		}
		r := pc.Request.Request
		doc.Instance = r.Method + " " + r.URL.Path
	}
}

// WithRequestID sets RequestID from the request context.
func WithRequestID() ProblemCustomizer {
	return func(ctx context.Context, _ *ProblemContext, doc *api.Problem) {
		if doc.RequestID != "" {
			return
		}
		doc.RequestID = RequestIDFromContext(ctx)
	}
}

// WithTraceID sets TraceID from traceID(ctx). An empty result leaves the
// field null.
func WithTraceID(traceID func(context.Context) string) ProblemCustomizer {
	return func(ctx context.Context, _ *ProblemContext, doc *api.Problem) {
		if doc.TraceID != nil || traceID == nil {
			return
		}
		if id := traceID(ctx); id != "" {
			doc.TraceID = &id
		}
	}
}

// DefaultCustomizers returns the instance, request ID and trace ID
// customizers. traceID may be nil.
func DefaultCustomizers(traceID func(context.Context) string) []ProblemCustomizer {
	return []ProblemCustomizer{
		WithInstance(),
		WithRequestID(),
		WithTraceID(traceID),
	}
}

// JSONProblemWriter writes Problem documents as application/problem+json.
type JSONProblemWriter struct {
	customizers []ProblemCustomizer
}

// NewJSONProblemWriter creates a JSONProblemWriter applying customizers in
// order before each write.
func NewJSONProblemWriter(customizers ...ProblemCustomizer) *JSONProblemWriter {
	return &JSONProblemWriter{customizers: customizers}
}

var _ ProblemWriter = (*JSONProblemWriter)(nil)

// TryWrite serializes a customized copy of pc.Problem to the response.
func (pw *JSONProblemWriter) TryWrite(ctx context.Context, pc *ProblemContext) bool {
	if pc == nil || pc.Problem == nil || pc.Request == nil || pc.Request.Response == nil {
		return false
	}
	resp := pc.Request.Response
	if resp.HasStarted() {
		return false
	}

	doc := *pc.Problem
	for _, customize := range pw.customizers {
		customize(ctx, pc, &doc)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return false
	}

	resp.Header().Set("Content-Type", api.ProblemContentType)
	resp.Header().Del("Content-Length")
	resp.WriteHeader(doc.Status)
	if _, err := resp.Write(append(data, '\n')); err != nil {
		return false
	}
	return true
}
