package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks the configuration for required fields and valid values.
// Returns an error with a descriptive field path on failure.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port))
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("server.shutdown_timeout must be > 0, got %s", c.Server.ShutdownTimeout))
	}
	if c.Server.MaxBodySize <= 0 {
		errs = append(errs, fmt.Errorf("server.max_body_size must be > 0, got %d", c.Server.MaxBodySize))
	}

	if !validPath(c.Stream.Path) {
		errs = append(errs, fmt.Errorf("stream.path must be an absolute path without wildcards, got %q", c.Stream.Path))
	}
	if c.Stream.Interval < 0 {
		errs = append(errs, fmt.Errorf("stream.interval must be >= 0, got %s", c.Stream.Interval))
	}
	for i, item := range c.Stream.Items {
		if strings.ContainsAny(item, "\r\n") {
			errs = append(errs, fmt.Errorf("stream.items[%d] must not contain line breaks", i))
		}
	}

	switch strings.ToLower(c.Logging.Format) {
	case "text", "json", "":
		// valid
	default:
		errs = append(errs, fmt.Errorf("logging.format must be \"text\" or \"json\", got %q", c.Logging.Format))
	}

	switch strings.ToUpper(strings.TrimSpace(c.Logging.Level)) {
	case "TRACE", "DEBUG", "INFO", "WARN", "WARNING", "ERROR", "":
		// valid
	default:
		errs = append(errs, fmt.Errorf("logging.level must be one of TRACE, DEBUG, INFO, WARN, ERROR, got %q", c.Logging.Level))
	}

	if c.Observability.Metrics.Enabled {
		if !validPath(c.Observability.Metrics.Path) {
			errs = append(errs, fmt.Errorf("observability.metrics.path must be an absolute path without wildcards, got %q", c.Observability.Metrics.Path))
		} else if c.Observability.Metrics.Path == c.Stream.Path {
			errs = append(errs, errors.New("observability.metrics.path must differ from stream.path"))
		}
	}

	return errors.Join(errs...)
}

func validPath(p string) bool {
	return strings.HasPrefix(p, "/") && len(p) > 1 && !strings.ContainsAny(p, "{} ")
}
