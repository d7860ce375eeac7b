package slb

import (
	"io"
	"log/slog"
)

// Config defines configuration for a Registry.
type Config struct {
	// Logger receives debug logs of node graph builds.
	// If nil, nothing is logged.
	Logger *slog.Logger
}

func (c *Config) copyAndFill() *Config {
	config := new(Config)
	if c != nil {
		*config = *c
	}

	if config.Logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return config
}
