package model

// Window is the validity window of a versioned record. To stays unset on the
// current version and is filled in once a newer version supersedes it.
type Window struct {
	From any `bson:"from,omitempty" json:"from,omitempty"`
	To   any `bson:"to,omitempty" json:"to,omitempty"`
}

// Claim is one version of a claim against a (quest id, winner) pair.
type Claim struct {
	ID     any    `bson:"id" json:"id"`
	Winner string `bson:"winner" json:"winner"`
	Cursor Window `bson:"_cursor" json:"_cursor"`
}

// Active reports whether c is the current version for its key.
func (c Claim) Active() bool {
	return c.Cursor.To == nil
}
