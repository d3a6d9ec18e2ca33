package matching

import "github.com/Rijish13Ahuja/goQuant/logging"

const namedLogger = "matching"

// Config holds per-book tunables. No file/env loader populates it here —
// that collaborator is external — but the shape a loader would fill in is
// part of this package.
type Config struct {
	log                   *logging.Logger
	level                 logging.Level
	LogPriceLevelsDebug   bool
	LogRemovedOrdersDebug bool
}

// NewConfig returns a default Config bound to a book-named child of logger.
func NewConfig(logger *logging.Logger) *Config {
	return &Config{
		log:   logger.Named(namedLogger),
		level: logging.InfoLevel,
	}
}
