package telemetry

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// setupTestTracer installs an in-memory span exporter for test assertions.
func setupTestTracer(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := trace.NewTracerProvider(
		trace.WithSyncer(exporter),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
	})
	return exporter
}

func TestInitTraceProviderWithoutEndpoint(t *testing.T) {
	shutdown, err := InitTraceProvider(context.Background(), Config{ServiceName: "streamline-test", Version: "test"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, span := Tracer().Start(context.Background(), "probe")
	if TraceID(ctx) == "" {
		t.Error("expected a trace ID with the local provider installed")
	}
	span.End()

	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestTraceIDEmptyWithoutSpan(t *testing.T) {
	if got := TraceID(context.Background()); got != "" {
		t.Errorf("TraceID = %q, want empty", got)
	}
}

func TestMiddlewareStartsServerSpan(t *testing.T) {
	exporter := setupTestTracer(t)

	var traceID string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /test", func(w http.ResponseWriter, r *http.Request) {
		traceID = TraceID(r.Context())
		w.WriteHeader(http.StatusInternalServerError)
	})

	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	Middleware(mux).ServeHTTP(httptest.NewRecorder(), req)

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if traceID == "" || spans[0].SpanContext.TraceID().String() != traceID {
		t.Errorf("handler trace ID = %q, want span trace ID %s", traceID, spans[0].SpanContext.TraceID())
	}
	if spans[0].Status.Code != codes.Error {
		t.Errorf("span status = %v, want Error", spans[0].Status.Code)
	}

	found := false
	for _, a := range spans[0].Attributes {
		if string(a.Key) == "http.response.status_code" && a.Value.AsInt64() == http.StatusInternalServerError {
			found = true
		}
	}
	if !found {
		t.Error("missing http.response.status_code attribute")
	}
}

func TestMiddlewareContinuesPropagatedTrace(t *testing.T) {
	setupTestTracer(t)

	const parent = "4bf92f3577b34da6a3ce929d0e0e4736"
	var traceID string
	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = TraceID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("traceparent", "00-"+parent+"-00f067aa0ba902b7-01")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if traceID != parent {
		t.Errorf("trace ID = %q, want propagated %q", traceID, parent)
	}
}

type errFlushWriter struct {
	*httptest.ResponseRecorder
}

func (errFlushWriter) FlushError() error { return errors.New("broken pipe") }

func TestSpanStatusWriterFlushErrorPropagates(t *testing.T) {
	sw := &spanStatusWriter{ResponseWriter: errFlushWriter{httptest.NewRecorder()}}
	if err := http.NewResponseController(sw).Flush(); err == nil {
		t.Fatal("expected flush error from wrapped writer")
	}

	rec := httptest.NewRecorder()
	sw = &spanStatusWriter{ResponseWriter: rec}
	if err := http.NewResponseController(sw).Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if !rec.Flushed {
		t.Error("expected underlying recorder to be flushed")
	}
}
