package pending

import "github.com/okian/questboost/pkg/logger"

// Option applies a configuration option to the Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for query failures and dropped records.
func WithLogger(l logger.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}
