// Package pending resolves which quest boost wins a participant has not claimed yet.
package pending

import "context"

// Cursor is a forward-only stream of win documents. It is drained once and then closed.
// *mongo.Cursor satisfies it.
type Cursor interface {
	Next(ctx context.Context) bool
	Decode(val any) error
	Err() error
	Close(ctx context.Context) error
}

// Source runs the pending-win query for one canonical winner in a single round trip.
// The returned documents are wins flattened to that winner with no active claim
// on (id, winner); implementations decide how to express the anti-join.
type Source interface {
	Pending(ctx context.Context, winner string) (Cursor, error)
}
