package transport

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rhuss/streamline/pkg/api"
)

func TestStatusFromKind(t *testing.T) {
	tests := []struct {
		name       string
		kind       api.Kind
		wantStatus int
	}{
		{"invalid argument -> 400", api.KindInvalidArgument, http.StatusBadRequest},
		{"unclassified -> 500", api.KindUnclassified, http.StatusInternalServerError},
		{"unknown kind -> 500", api.Kind("timeout"), http.StatusInternalServerError},
		{"empty kind -> 500", api.Kind(""), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusFromKind(tt.kind); got != tt.wantStatus {
				t.Errorf("StatusFromKind(%q) = %d, want %d", tt.kind, got, tt.wantStatus)
			}
		})
	}
}

func TestWriteStatusPage(t *testing.T) {
	rec := httptest.NewRecorder()
	resp := NewResponse(rec)
	resp.SetStatusCode(http.StatusBadRequest)

	WriteStatusPage(resp)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status code = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if !strings.Contains(rec.Body.String(), "Status Code: 400; Bad Request") {
		t.Errorf("body = %q, want status page", rec.Body.String())
	}
}

func TestWriteStatusPageDefaultsToServerError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteStatusPage(NewResponse(rec))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status code = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}

func TestWriteStatusPageSkipsStartedResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	resp := NewResponse(rec)
	resp.Write([]byte("partial"))

	WriteStatusPage(resp)

	if rec.Body.String() != "partial" {
		t.Errorf("body = %q, want untouched partial response", rec.Body.String())
	}
}
