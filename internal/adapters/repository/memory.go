package repository

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/okian/questboost/internal/domain/model"
	"github.com/okian/questboost/internal/domain/pending"
	"go.mongodb.org/mongo-driver/bson"
)

// MemorySource holds wins and claims in process and answers the same query as
// MongoSource. It backs local runs and tests.
type MemorySource struct {
	mu     sync.RWMutex
	wins   []bson.M
	claims []model.Claim
}

// NewMemorySource returns an empty source.
func NewMemorySource() *MemorySource {
	return &MemorySource{}
}

// Mode reports the query mode label used in metrics.
func (s *MemorySource) Mode() string { return modeMemory }

// AddWins appends raw win documents. Winner may be an array or a scalar.
func (s *MemorySource) AddWins(docs ...bson.M) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wins = append(s.wins, docs...)
}

// AddClaims appends claim versions.
func (s *MemorySource) AddClaims(claims ...model.Claim) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.claims = append(s.claims, claims...)
}

// Pending implements pending.Source.
func (s *MemorySource) Pending(ctx context.Context, winner string) (pending.Cursor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	cands := candidates(s.wins, winner)
	claims := make([]model.Claim, 0, len(s.claims))
	for _, c := range s.claims {
		if c.Winner == winner {
			claims = append(claims, c)
		}
	}
	s.mu.RUnlock()

	return documentCursor(antiJoin(cands, claims))
}

// Ping always succeeds.
func (s *MemorySource) Ping(ctx context.Context) error {
	return ctx.Err()
}

// seed is the on-disk shape accepted by LoadSeed, written as extended JSON.
type seed struct {
	Wins   []bson.M      `bson:"wins"`
	Claims []model.Claim `bson:"claims"`
}

// LoadSeed reads wins and claims from an extended JSON file of the form
// {"wins": [...], "claims": [...]} and appends them.
func (s *MemorySource) LoadSeed(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSeed, err)
	}
	var doc seed
	if err := bson.UnmarshalExtJSON(raw, false, &doc); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSeed, path, err)
	}
	s.AddWins(doc.Wins...)
	s.AddClaims(doc.Claims...)
	return nil
}
