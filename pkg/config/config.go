// Package config provides unified configuration for the streamline service.
//
// Configuration is loaded with a layered approach:
//  1. Built-in defaults
//  2. YAML config file (discovered or explicitly specified)
//  3. Environment variable overrides (STREAMLINE_ prefix, OTEL_ for tracing)
//  4. Validation
package config

import "time"

// Config holds all configuration for the streamline service.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Stream        StreamConfig        `yaml:"stream"`
	Logging       LoggingConfig       `yaml:"logging"`
	CORS          CORSConfig          `yaml:"cors"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `yaml:"port"`             // default: 8080
	ReadTimeout     time.Duration `yaml:"read_timeout"`     // default: 30s
	WriteTimeout    time.Duration `yaml:"write_timeout"`    // default: 120s, lifted for streams
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"` // default: 30s
	MaxBodySize     int64         `yaml:"max_body_size"`    // default: 1 MiB
}

// StreamConfig holds settings of the streaming endpoint.
type StreamConfig struct {
	Path     string        `yaml:"path"`     // default: "/test"
	Interval time.Duration `yaml:"interval"` // default: 1s
	Items    []string      `yaml:"items"`    // default: DefaultItems
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // TRACE, DEBUG, INFO, WARN, ERROR; default: INFO
	Format string `yaml:"format"` // "text" or "json"; default: "text"
	Debug  string `yaml:"debug"`  // comma-separated debug categories
}

// CORSConfig holds the cross-origin policy switch.
type CORSConfig struct {
	Enabled bool `yaml:"enabled"` // default: true (allow all)
}

// ObservabilityConfig holds monitoring and instrumentation settings.
type ObservabilityConfig struct {
	Metrics MetricsConfig `yaml:"metrics"`
	Tracing TracingConfig `yaml:"tracing"`
}

// MetricsConfig holds Prometheus metrics endpoint settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"` // default: true
	Path    string `yaml:"path"`    // default: "/metrics"
}

// TracingConfig holds OpenTelemetry trace export settings.
type TracingConfig struct {
	Endpoint    string `yaml:"endpoint"`     // OTLP/gRPC endpoint; empty disables export
	Insecure    bool   `yaml:"insecure"`     // default: true
	ServiceName string `yaml:"service_name"` // default: "streamline"
}

// DefaultItems is the sequence streamed when no items are configured.
var DefaultItems = []string{
	"Freezing", "Bracing", "Chilly", "Cool", "Mild", "Warm", "Balmy", "Hot", "Sweltering", "Scorching",
}

// Defaults returns a Config with all default values filled in.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    120 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			MaxBodySize:     1 << 20,
		},
		Stream: StreamConfig{
			Path:     "/test",
			Interval: time.Second,
			Items:    append([]string(nil), DefaultItems...),
		},
		Logging: LoggingConfig{
			Level:  "INFO",
			Format: "text",
		},
		CORS: CORSConfig{
			Enabled: true,
		},
		Observability: ObservabilityConfig{
			Metrics: MetricsConfig{
				Enabled: true,
				Path:    "/metrics",
			},
			Tracing: TracingConfig{
				Insecure:    true,
				ServiceName: "streamline",
			},
		},
	}
}
