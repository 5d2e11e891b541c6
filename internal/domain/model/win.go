// Package model contains the record shapes read from the store.
package model

import (
	"sort"

	"go.mongodb.org/mongo-driver/bson"
)

// Field names shared by the store adapters and the resolver.
const (
	FieldStoreID = "_id"
	FieldID      = "id"
	FieldWinner  = "winner"
	FieldHidden  = "hidden"
	FieldCursor  = "_cursor"

	// ClaimsScratchField holds the correlated claims while a query runs.
	ClaimsScratchField = "boost_claims"
)

// Win is one quest boost prize outcome for a single winner. Stored records name
// their winners as an array; a Win is the record after that array was flattened,
// so Winner is always a scalar.
type Win struct {
	ID     any    `bson:"id"`
	Winner string `bson:"winner"`
	Hidden bool   `bson:"hidden,omitempty"`

	// Extra carries quest metadata the service does not interpret.
	Extra map[string]any `bson:",inline"`
}

// Strip removes internal-only fields so the record is safe to return.
func (w *Win) Strip() {
	w.Hidden = false
	for _, k := range []string{FieldStoreID, FieldHidden, ClaimsScratchField} {
		delete(w.Extra, k)
	}
}

// MarshalJSON emits relaxed extended JSON with id and winner first and the
// pass-through fields in key order. A record stored without an id is written
// without one. Hidden is never written.
func (w Win) MarshalJSON() ([]byte, error) {
	doc := make(bson.D, 0, len(w.Extra)+2)
	if w.ID != nil {
		doc = append(doc, bson.E{Key: FieldID, Value: w.ID})
	}
	doc = append(doc, bson.E{Key: FieldWinner, Value: w.Winner})

	keys := make([]string, 0, len(w.Extra))
	for k := range w.Extra {
		switch k {
		case FieldID, FieldWinner, FieldHidden, FieldStoreID, ClaimsScratchField:
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		doc = append(doc, bson.E{Key: k, Value: w.Extra[k]})
	}

	return bson.MarshalExtJSON(doc, false, false)
}
