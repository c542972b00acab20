package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/rhuss/streamline/pkg/api"
	"github.com/rhuss/streamline/pkg/debug"
	"github.com/rhuss/streamline/pkg/observability"
	"github.com/rhuss/streamline/pkg/stream"
	"github.com/rhuss/streamline/pkg/telemetry"
	"github.com/rhuss/streamline/pkg/transport"
)

// Adapter serves the streaming endpoint and its companion routes over HTTP.
// Request handlers are transport.Handlers; the adapter runs them through
// the configured middleware chain.
type Adapter struct {
	source   stream.Source
	emitter  *stream.Emitter
	inflight *transport.InFlightRegistry
	chain    transport.Middleware
	mux      *http.ServeMux
	config   Config
}

// Config holds configuration for the HTTP adapter.
type Config struct {
	// StreamPath is the path of the streaming endpoint. Streams are
	// cancelled with DELETE StreamPath/{id}.
	StreamPath  string
	MaxBodySize int64

	// MetricsPath mounts the Prometheus handler. Empty disables it.
	MetricsPath string

	// CORS applies the allow-all CORS policy.
	CORS bool
}

// DefaultConfig returns the default adapter configuration.
func DefaultConfig() Config {
	return Config{
		StreamPath:  "/test",
		MaxBodySize: 1 << 20, // 1 MB
		MetricsPath: "/metrics",
		CORS:        true,
	}
}

// NewAdapter creates an HTTP adapter streaming src through emitter.
// Middleware is applied to every route handler in the given order.
// A nil emitter paces lines by stream.DefaultInterval.
func NewAdapter(src stream.Source, emitter *stream.Emitter, cfg Config, middlewares ...transport.Middleware) *Adapter {
	if emitter == nil {
		emitter = stream.NewEmitter(stream.DefaultInterval)
	}

	// Work on a copy so the chunk counter does not leak into the caller's
	// emitter.
	e := *emitter
	onChunk := emitter.OnChunk
	e.OnChunk = func(line string) {
		observability.StreamChunksTotal.Inc()
		if onChunk != nil {
			onChunk(line)
		}
	}

	a := &Adapter{
		source:   src,
		emitter:  &e,
		inflight: transport.NewInFlightRegistry(),
		chain:    transport.Chain(middlewares...),
		mux:      http.NewServeMux(),
		config:   cfg,
	}

	streamPath := strings.TrimSuffix(cfg.StreamPath, "/")
	a.Handle("POST "+streamPath, transport.HandlerFunc(a.handleStream))
	a.Handle("DELETE "+streamPath+"/{id}", transport.HandlerFunc(a.handleCancelStream))
	a.Handle("GET /healthz", transport.HandlerFunc(handleHealth))
	if cfg.MetricsPath != "" {
		a.mux.Handle("GET "+cfg.MetricsPath, observability.Handler())
	}

	return a
}

// Handle registers h for pattern behind the adapter's middleware chain.
func (a *Adapter) Handle(pattern string, h transport.Handler) {
	a.mux.Handle(pattern, a.serve(a.chain(h)))
}

// Handler returns the http.Handler for this adapter. Use this to integrate
// with an http.Server or test with httptest. The returned handler includes
// HTTP-level middleware for tracing, metrics and (if enabled) CORS.
func (a *Adapter) Handler() http.Handler {
	var h http.Handler = a.mux
	if a.config.CORS {
		h = transport.CORS(h)
	}
	h = observability.MetricsMiddleware(h)
	return telemetry.Middleware(h)
}

// InFlight returns the registry of streams that are still emitting.
func (a *Adapter) InFlight() *transport.InFlightRegistry {
	return a.inflight
}

// serve bridges net/http to a transport.Handler and records the outcome
// of unhandled failures.
func (a *Adapter) serve(h transport.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil && a.config.MaxBodySize > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, a.config.MaxBodySize)
		}

		rc := transport.NewRequestContext(w, r)
		if err := h.ServeRequest(rc); err != nil {
			// No exception middleware in the chain.
			rc.Failure = err
			if !errors.Is(err, api.ErrStreamInterrupted) {
				transport.WriteStatusPage(rc.Response)
			}
		}
		recordFailure(rc)
	})
}

func recordFailure(rc *transport.RequestContext) {
	if rc.Failure == nil {
		return
	}
	if errors.Is(rc.Failure, api.ErrStreamInterrupted) {
		observability.StreamsInterruptedTotal.Inc()
		return
	}
	outcome := "declined"
	if rc.Handled {
		outcome = "handled"
	}
	observability.ExceptionsTotal.WithLabelValues(
		strconv.Itoa(rc.Response.StatusCode()),
		string(api.KindOf(rc.Failure)),
		outcome,
	).Inc()
}

// handleStream handles POST on the stream path. The optional "count" query
// parameter limits the number of lines.
func (a *Adapter) handleStream(rc *transport.RequestContext) error {
	src := a.source
	if v := rc.Request.URL.Query().Get("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return api.NewInvalidArgumentf("count must be a non-negative integer, got %q", v)
		}
		src = stream.Limit(src, n)
	}

	ctx, cancel := context.WithCancel(rc.Context())
	defer cancel()

	id := transport.RequestIDFromContext(ctx)
	if id != "" {
		release, ok := a.inflight.Register(id, cancel)
		if !ok {
			return api.NewInvalidArgumentf("request ID %q already identifies a running stream", id)
		}
		defer release()
	}

	observability.StreamingConnections.Inc()
	defer observability.StreamingConnections.Dec()

	n, err := a.emitter.Emit(ctx, newResponseSink(rc.Response), src)
	debug.Log("streaming", "stream finished", "request_id", id, "lines", n, "error", err)
	return err
}

// handleCancelStream handles DELETE on StreamPath/{id}. It cancels the
// stream that was started with the given request ID.
func (a *Adapter) handleCancelStream(rc *transport.RequestContext) error {
	id := rc.Request.PathValue("id")
	if !api.ValidateRequestID(id) {
		return api.NewInvalidArgumentf("malformed request ID %q", id)
	}

	if !a.inflight.Cancel(id) {
		rc.Response.SetStatusCode(http.StatusNotFound)
		transport.WriteStatusPage(rc.Response)
		return nil
	}

	debug.Log("streaming", "stream cancelled", "request_id", id)
	rc.Response.WriteHeader(http.StatusNoContent)
	return nil
}

func handleHealth(rc *transport.RequestContext) error {
	rc.Response.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, err := rc.Response.Write([]byte("ok\n"))
	return err
}
