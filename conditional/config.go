package conditional

import "github.com/Rijish13Ahuja/goQuant/logging"

const namedLogger = "conditional"

// Config holds the manager's tunables. No loader populates it here — that
// collaborator is external — but the shape is part of this package.
type Config struct {
	log *logging.Logger
}

// NewConfig returns a Config bound to a manager-named child of logger.
func NewConfig(logger *logging.Logger) *Config {
	return &Config{log: logger.Named(namedLogger)}
}
