// Package repository implements the pending-win sources backed by MongoDB or memory.
package repository

import "github.com/okian/questboost/pkg/logger"

// Query modes understood by MongoSource.
const (
	// ModePipeline runs one aggregation with a correlated $lookup.
	ModePipeline = "pipeline"
	// ModeSplit runs one find per collection and anti-joins in process.
	ModeSplit = "split"

	modeMemory = "memory"
)

// Default collection names.
const (
	DefaultWinsCollection   = "boosts"
	DefaultClaimsCollection = "boost_claims"
)

// Option applies a configuration option to the MongoSource.
type Option func(*MongoSource)

// WithCollections overrides the win and claim collection names.
func WithCollections(wins, claims string) Option {
	return func(s *MongoSource) {
		if wins != "" {
			s.winsName = wins
		}
		if claims != "" {
			s.claimsName = claims
		}
	}
}

// WithQueryMode selects ModePipeline or ModeSplit.
func WithQueryMode(mode string) Option {
	return func(s *MongoSource) {
		if mode != "" {
			s.mode = mode
		}
	}
}

// WithLogger sets the logger used by the source.
func WithLogger(l logger.Logger) Option {
	return func(s *MongoSource) {
		if l != nil {
			s.logger = l
		}
	}
}
