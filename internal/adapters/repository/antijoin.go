package repository

import (
	"fmt"
	"math"
	"math/big"
	"strconv"

	"github.com/okian/questboost/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson"
)

// claimKey is the composite key correlating a win candidate with its claims.
type claimKey struct {
	id     string
	winner string
}

func keyOf(id any, winner string) claimKey {
	return claimKey{id: idKey(id), winner: winner}
}

// idKey renders an id so that values the store considers equal collide. Numbers
// compare by exact value across int32, int64 and double, as they do in a $eq:
// an integral double keys as its integer text at any magnitude.
func idKey(id any) string {
	switch v := id.(type) {
	case nil:
		return "null"
	case string:
		return "s:" + v
	case int:
		return "n:" + strconv.FormatInt(int64(v), 10)
	case int32:
		return "n:" + strconv.FormatInt(int64(v), 10)
	case int64:
		return "n:" + strconv.FormatInt(v, 10)
	case float64:
		if !math.IsInf(v, 0) && !math.IsNaN(v) && v == math.Trunc(v) {
			n, _ := new(big.Float).SetFloat64(v).Int(nil)
			return "n:" + n.String()
		}
		return "n:" + strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprintf("%T:%v", v, v)
	}
}

// unwind mirrors $unwind on the winner field: one copy of doc per array element.
// A scalar winner counts as a one-element array; null, missing and empty arrays
// produce nothing.
func unwind(doc bson.M) []bson.M {
	switch w := doc[model.FieldWinner].(type) {
	case nil:
		return nil
	case bson.A:
		return expand(doc, w)
	case []any:
		return expand(doc, w)
	default:
		return []bson.M{withWinner(doc, w)}
	}
}

func expand(doc bson.M, winners []any) []bson.M {
	out := make([]bson.M, 0, len(winners))
	for _, w := range winners {
		out = append(out, withWinner(doc, w))
	}
	return out
}

func withWinner(doc bson.M, winner any) bson.M {
	c := make(bson.M, len(doc))
	for k, v := range doc {
		c[k] = v
	}
	c[model.FieldWinner] = winner
	return c
}

// candidates flattens docs and keeps those whose winner equals winner exactly.
func candidates(docs []bson.M, winner string) []bson.M {
	var out []bson.M
	for _, doc := range docs {
		for _, c := range unwind(doc) {
			if w, ok := c[model.FieldWinner].(string); ok && w == winner {
				out = append(out, c)
			}
		}
	}
	return out
}

// antiJoin keeps the candidates with zero active claims on their (id, winner)
// and strips internal fields from the survivors.
func antiJoin(cands []bson.M, claims []model.Claim) []bson.M {
	active := make(map[claimKey]int, len(claims))
	for _, c := range claims {
		if c.Active() {
			active[keyOf(c.ID, c.Winner)]++
		}
	}

	out := make([]bson.M, 0, len(cands))
	for _, c := range cands {
		w, _ := c[model.FieldWinner].(string)
		if active[keyOf(c[model.FieldID], w)] > 0 {
			continue
		}
		delete(c, model.FieldStoreID)
		delete(c, model.FieldHidden)
		delete(c, model.ClaimsScratchField)
		out = append(out, c)
	}
	return out
}

// candidateIDs lists the distinct quest ids among cands.
func candidateIDs(cands []bson.M) bson.A {
	seen := make(map[string]struct{}, len(cands))
	ids := make(bson.A, 0, len(cands))
	for _, c := range cands {
		id := c[model.FieldID]
		k := idKey(id)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
