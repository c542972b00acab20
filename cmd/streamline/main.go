// Command streamline runs the streaming demo service.
//
// Configuration is read from a YAML file (--config, STREAMLINE_CONFIG,
// ./config.yaml or /etc/streamline/config.yaml) and environment overrides:
//
//	STREAMLINE_PORT             - Listen port (default: 8080)
//	STREAMLINE_STREAM_PATH      - Streaming endpoint path (default: /test)
//	STREAMLINE_STREAM_INTERVAL  - Pause between lines (default: 1s)
//	STREAMLINE_LOG_LEVEL        - TRACE, DEBUG, INFO, WARN, ERROR
//	STREAMLINE_DEBUG            - Debug categories, e.g. "streaming,transport"
//	OTEL_EXPORTER_OTLP_ENDPOINT - OTLP/gRPC collector; unset disables export
package main

import (
	"log/slog"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("streamline failed", "error", err)
		os.Exit(1)
	}
}
