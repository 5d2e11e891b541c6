package pending

import (
	"context"
	"time"

	"github.com/okian/questboost/internal/domain/model"
	"github.com/okian/questboost/pkg/logger"
	"github.com/okian/questboost/pkg/metrics"
)

// Resolver answers "which wins are still unclaimed" for one participant.
// It holds no per-call state and is safe for concurrent use.
type Resolver struct {
	source Source
	logger logger.Logger
}

// NewResolver builds a Resolver reading from source.
func NewResolver(source Source, opts ...Option) *Resolver {
	r := &Resolver{source: source}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logger.Named("pending")
	}
	return r
}

// Resolve returns the wins naming winner that have no active claim. The result is
// unordered and never nil. A store failure yields a *QueryError and no records;
// a record that cannot be decoded is skipped.
func (r *Resolver) Resolve(ctx context.Context, winner string) ([]model.Win, error) {
	const op = "pending.resolve"
	start := time.Now()

	cur, err := r.source.Pending(ctx, winner)
	if err != nil {
		return nil, r.fail(ctx, op, winner, start, err)
	}
	defer func() {
		if cerr := cur.Close(context.WithoutCancel(ctx)); cerr != nil {
			r.logger.Debug(ctx, "closing cursor", logger.Error(cerr))
		}
	}()

	wins := make([]model.Win, 0)
	for cur.Next(ctx) {
		var w model.Win
		// Schema drift in a single record does not fail the lookup.
		if err := cur.Decode(&w); err != nil {
			metrics.RecordResolverRecordDropped()
			r.logger.Debug(ctx, "dropping undecodable win record",
				logger.String("winner", winner),
				logger.Error(err),
			)
			continue
		}
		w.Strip()
		wins = append(wins, w)
	}
	if err := cur.Err(); err != nil {
		return nil, r.fail(ctx, op, winner, start, err)
	}

	metrics.RecordResolverLookup(len(wins), float64(time.Since(start).Microseconds())/1000)
	return wins, nil
}

func (r *Resolver) fail(ctx context.Context, op, winner string, start time.Time, err error) error {
	metrics.RecordResolverQueryError()
	metrics.RecordErrorByComponent("resolver", "query")
	r.logger.Error(ctx, "error querying claims",
		logger.String("winner", winner),
		logger.Duration("elapsedMs", time.Since(start)),
		logger.Error(err),
	)
	return &QueryError{Op: op, Cause: err}
}
