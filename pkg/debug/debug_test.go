package debug

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseCategories(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  map[string]bool
	}{
		{"empty", "", map[string]bool{}},
		{"single", "streaming", map[string]bool{"streaming": true}},
		{"multiple", "streaming,transport", map[string]bool{"streaming": true, "transport": true}},
		{"all", "all", map[string]bool{"all": true}},
		{"with spaces", " streaming , transport ", map[string]bool{"streaming": true, "transport": true}},
		{"uppercase normalized", "PROVIDERS,Engine", map[string]bool{"streaming": true, "transport": true}},
		{"empty segments", "streaming,,transport", map[string]bool{"streaming": true, "transport": true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseCategories(tt.input)
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("got[%q] = %v, want %v", k, got[k], v)
				}
			}
			if len(got) != len(tt.want) {
				t.Errorf("len(got) = %d, want %d", len(got), len(tt.want))
			}
		})
	}
}

func TestEnabled(t *testing.T) {
	// Save and restore.
	orig := categories
	defer func() { categories = orig }()

	categories = parseCategories("streaming,transport")

	if !Enabled("streaming") {
		t.Error("streaming should be enabled")
	}
	if !Enabled("transport") {
		t.Error("transport should be enabled")
	}
	if Enabled("telemetry") {
		t.Error("telemetry should not be enabled")
	}
	if Enabled("all") {
		t.Error("all should not be enabled (not in categories)")
	}
}

func TestEnabled_All(t *testing.T) {
	orig := categories
	defer func() { categories = orig }()

	categories = parseCategories("all")

	if !Enabled("streaming") {
		t.Error("streaming should be enabled via 'all'")
	}
	if !Enabled("transport") {
		t.Error("transport should be enabled via 'all'")
	}
	if !Enabled("anything") {
		t.Error("anything should be enabled via 'all'")
	}
}

func TestEnabled_Empty(t *testing.T) {
	orig := categories
	defer func() { categories = orig }()

	categories = parseCategories("")

	if Enabled("streaming") {
		t.Error("nothing should be enabled when no categories set")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"TRACE", LevelTrace},
		{"trace", LevelTrace},
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"unknown", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseLevel(tt.input)
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLog_DisabledCategory(t *testing.T) {
	orig := categories
	defer func() { categories = orig }()

	categories = parseCategories("")

	// Should not panic or produce output.
	Log("streaming", "test message", "key", "value")
	Trace("streaming", "trace message", "key", "value")
}

func TestInitWriterConfiguresDefaultLogger(t *testing.T) {
	origCats := categories
	origLogger := slog.Default()
	defer func() {
		categories = origCats
		slog.SetDefault(origLogger)
	}()
	t.Setenv("STREAMLINE_DEBUG", "")
	t.Setenv("STREAMLINE_LOG_LEVEL", "")

	var buf bytes.Buffer
	logger := InitWriter(&buf, "streaming", "debug", "json")

	if !Enabled("streaming") {
		t.Error("streaming should be enabled from config")
	}
	if slog.Default() != logger {
		t.Error("InitWriter should install the returned logger as default")
	}

	Log("streaming", "chunk flushed", "index", 1)
	if !strings.Contains(buf.String(), `"msg":"chunk flushed"`) {
		t.Errorf("expected JSON debug output, got:\n%s", buf.String())
	}
}

func TestInitWriterEnvOverridesConfig(t *testing.T) {
	origCats := categories
	origLogger := slog.Default()
	defer func() {
		categories = origCats
		slog.SetDefault(origLogger)
	}()
	t.Setenv("STREAMLINE_DEBUG", "transport")
	t.Setenv("STREAMLINE_LOG_LEVEL", "TRACE")

	var buf bytes.Buffer
	InitWriter(&buf, "streaming", "info", "text")

	if Enabled("streaming") {
		t.Error("config categories should be overridden by environment")
	}
	if !TraceIsEnabled("transport") {
		t.Error("TRACE level from environment should be active")
	}
}
