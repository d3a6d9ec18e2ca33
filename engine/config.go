package engine

import "github.com/Rijish13Ahuja/goQuant/logging"

const namedLogger = "engine"

// Config holds the engine's tunables. No loader populates it here — that
// collaborator is external — but the shape is part of this package.
type Config struct {
	log *logging.Logger
}

// NewConfig returns a Config bound to an engine-named child of logger.
func NewConfig(logger *logging.Logger) *Config {
	return &Config{log: logger.Named(namedLogger)}
}
