package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/questboost/internal/domain/model"
	"github.com/okian/questboost/internal/domain/pending"
	"github.com/okian/questboost/pkg/logger"
	"github.com/okian/questboost/pkg/metrics"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Connect opens a client for uri. The driver connects lazily; callers check
// reachability with Ping. A zero timeout keeps the driver defaults.
func Connect(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	opts := options.Client().ApplyURI(uri)
	if timeout > 0 {
		opts.SetConnectTimeout(timeout).SetServerSelectionTimeout(timeout)
	}
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}
	return client, nil
}

// MongoSource answers pending-win queries from the wins and claims collections
// of one database. It keeps no state between calls.
type MongoSource struct {
	db         *mongo.Database
	wins       *mongo.Collection
	claims     *mongo.Collection
	winsName   string
	claimsName string
	mode       string
	logger     logger.Logger
}

// NewMongoSource builds a source on db. Unknown query modes are rejected.
func NewMongoSource(db *mongo.Database, opts ...Option) (*MongoSource, error) {
	s := &MongoSource{
		db:         db,
		winsName:   DefaultWinsCollection,
		claimsName: DefaultClaimsCollection,
		mode:       ModePipeline,
	}
	for _, opt := range opts {
		opt(s)
	}
	switch s.mode {
	case ModePipeline, ModeSplit:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownQueryMode, s.mode)
	}
	if s.logger == nil {
		s.logger = logger.Named("repository")
	}
	s.wins = db.Collection(s.winsName)
	s.claims = db.Collection(s.claimsName)
	return s, nil
}

// Mode reports the configured query mode.
func (s *MongoSource) Mode() string { return s.mode }

// Pending implements pending.Source.
func (s *MongoSource) Pending(ctx context.Context, winner string) (pending.Cursor, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(s.mode, float64(time.Since(start).Microseconds())/1000)
	}()

	if s.mode == ModeSplit {
		return s.pendingSplit(ctx, winner)
	}
	cur, err := s.wins.Aggregate(ctx, PendingPipeline(winner, s.claimsName))
	if err != nil {
		return nil, fmt.Errorf("%w: aggregate %s: %w", ErrQueryWins, s.winsName, err)
	}
	return cur, nil
}

// pendingSplit fetches the winner's wins, then the active claims on their ids,
// and anti-joins the two in process.
func (s *MongoSource) pendingSplit(ctx context.Context, winner string) (pending.Cursor, error) {
	winCur, err := s.wins.Find(ctx, bson.D{{Key: model.FieldWinner, Value: winner}})
	if err != nil {
		return nil, fmt.Errorf("%w: find %s: %w", ErrQueryWins, s.winsName, err)
	}
	defer func() { _ = winCur.Close(context.WithoutCancel(ctx)) }()

	var docs []bson.M
	for winCur.Next(ctx) {
		var doc bson.M
		if err := winCur.Decode(&doc); err != nil {
			s.logger.Debug(ctx, "skipping undecodable win document", logger.Error(err))
			continue
		}
		docs = append(docs, doc)
	}
	if err := winCur.Err(); err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrQueryWins, s.winsName, err)
	}

	cands := candidates(docs, winner)
	if len(cands) == 0 {
		return documentCursor(nil)
	}

	filter := bson.D{
		{Key: model.FieldWinner, Value: winner},
		{Key: model.FieldID, Value: bson.D{{Key: "$in", Value: candidateIDs(cands)}}},
		{Key: model.FieldCursor + ".to", Value: nil},
	}
	claimCur, err := s.claims.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: find %s: %w", ErrQueryClaims, s.claimsName, err)
	}
	// A claim we cannot read might be the one that blocks a win, so this fails
	// the whole lookup instead of skipping.
	var claims []model.Claim
	if err := claimCur.All(ctx, &claims); err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrQueryClaims, s.claimsName, err)
	}

	return documentCursor(antiJoin(cands, claims))
}

// Ping checks that the primary is reachable.
func (s *MongoSource) Ping(ctx context.Context) error {
	if err := s.db.Client().Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("%w: %w", ErrConnect, err)
	}
	return nil
}

// documentCursor serves already-computed documents through a driver cursor so
// decoding behaves exactly as it does for server results.
func documentCursor(docs []bson.M) (pending.Cursor, error) {
	batch := make([]any, len(docs))
	for i, d := range docs {
		batch[i] = d
	}
	cur, err := mongo.NewCursorFromDocuments(batch, nil, nil)
	if err != nil {
		return nil, err
	}
	return cur, nil
}
