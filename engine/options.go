package engine

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type config struct {
	hashMB   int
	maxDepth int
	logger   zerolog.Logger
}

// Option configures a Searcher.
type Option func(*config)

// WithHashMB sets the total size of the search tables.
func WithHashMB(mb int) Option {
	return func(c *config) { c.hashMB = mb }
}

// WithMaxDepth stops iterative deepening after depth plies.
func WithMaxDepth(depth int) Option {
	return func(c *config) { c.maxDepth = depth }
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *config) { c.logger = l }
}

func defaultConfig() config {
	return config{
		hashMB:   DefaultHashMB,
		maxDepth: MaxDepth,
		logger:   log.Logger,
	}
}
