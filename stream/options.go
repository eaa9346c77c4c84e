// Package stream provides options for configuring streaming parsing.
package stream

import "github.com/arborview/parsekit/reporter"

// config holds stream configuration.
type config struct {
	encoding string
	sink     *reporter.Sink
}

// newConfig creates a new config with defaults and applies options.
func newConfig(opts ...Option) *config {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.sink == nil {
		cfg.sink = reporter.Default()
	}
	return cfg
}

// Option configures the streaming parser behavior.
type Option func(*config)

// WithEncoding sets the character encoding to use for parsing.
// This overrides automatic encoding detection.
//
// Common values: "utf-8", "windows-1252", "iso-8859-1"
func WithEncoding(enc string) Option {
	return func(c *config) {
		c.encoding = enc
	}
}

// WithSink routes parse diagnostics raised while streaming into sink
// instead of the process-wide default.
func WithSink(sink *reporter.Sink) Option {
	return func(c *config) {
		c.sink = sink
	}
}
