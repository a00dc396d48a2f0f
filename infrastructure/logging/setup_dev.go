//go:build !prod || js

package logging

import (
	"log/slog"
	"os"
)

// Setup installs a stdout logger. The close function does nothing.
func Setup(cfg *Config) (*slog.Logger, func() error, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	logger := slog.New(newHandler(os.Stdout, cfg))
	setGlobal(logger)

	return logger, func() error { return nil }, nil
}
