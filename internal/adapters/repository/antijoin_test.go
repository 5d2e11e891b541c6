package repository

import (
	"testing"

	"github.com/okian/questboost/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
	"go.mongodb.org/mongo-driver/bson"
)

func TestIDKey(t *testing.T) {
	Convey("Given quest ids of different numeric encodings", t, func() {
		Convey("Then equal values share a key", func() {
			So(idKey(int32(7)), ShouldEqual, idKey(int64(7)))
			So(idKey(int64(7)), ShouldEqual, idKey(float64(7)))
			So(idKey(7), ShouldEqual, idKey(int32(7)))
		})

		Convey("Then equal values beyond 2^53 still share a key", func() {
			So(idKey(float64(1<<60)), ShouldEqual, idKey(int64(1<<60)))
			So(idKey(float64(-(1 << 62))), ShouldEqual, idKey(int64(-(1 << 62))))
		})

		Convey("Then integers a double cannot represent stay distinct", func() {
			So(idKey(int64(1<<53+1)), ShouldNotEqual, idKey(float64(1<<53)))
		})

		Convey("Then different values or kinds do not collide", func() {
			So(idKey(int32(7)), ShouldNotEqual, idKey(int32(8)))
			So(idKey("7"), ShouldNotEqual, idKey(int32(7)))
			So(idKey(7.5), ShouldNotEqual, idKey(int32(7)))
			So(idKey(nil), ShouldNotEqual, idKey("null"))
		})
	})
}

func TestUnwind(t *testing.T) {
	Convey("Given win documents with different winner shapes", t, func() {
		Convey("When winner is an array", func() {
			out := unwind(bson.M{"id": 1, "winner": bson.A{"0xa", "0xb"}, "amount": 5})

			Convey("Then one copy is produced per element", func() {
				So(out, ShouldHaveLength, 2)
				So(out[0]["winner"], ShouldEqual, "0xa")
				So(out[1]["winner"], ShouldEqual, "0xb")
				So(out[1]["amount"], ShouldEqual, 5)
			})
		})

		Convey("When winner is a plain slice", func() {
			So(unwind(bson.M{"winner": []any{"0xa"}}), ShouldHaveLength, 1)
		})

		Convey("When winner is a scalar", func() {
			out := unwind(bson.M{"winner": "0xa"})
			So(out, ShouldHaveLength, 1)
			So(out[0]["winner"], ShouldEqual, "0xa")
		})

		Convey("When winner is missing, null or empty", func() {
			So(unwind(bson.M{"id": 1}), ShouldBeEmpty)
			So(unwind(bson.M{"winner": nil}), ShouldBeEmpty)
			So(unwind(bson.M{"winner": bson.A{}}), ShouldBeEmpty)
		})

		Convey("Then the source document is left untouched", func() {
			doc := bson.M{"winner": bson.A{"0xa"}}
			_ = unwind(doc)
			So(doc["winner"], ShouldResemble, bson.A{"0xa"})
		})
	})
}

func TestAntiJoin(t *testing.T) {
	Convey("Given candidates for one winner", t, func() {
		docs := []bson.M{
			{"_id": "o1", "id": int32(1), "winner": bson.A{"0xa", "0xb"}, "hidden": true},
			{"_id": "o2", "id": int32(2), "winner": bson.A{"0xa"}},
			{"_id": "o3", "id": int32(3), "winner": bson.A{"0xb"}},
		}
		cands := candidates(docs, "0xa")

		Convey("Then only the winner's entries are candidates", func() {
			So(cands, ShouldHaveLength, 2)
			So(candidateIDs(cands), ShouldResemble, bson.A{int32(1), int32(2)})
		})

		Convey("When one of them has an active claim", func() {
			out := antiJoin(cands, []model.Claim{{ID: int64(1), Winner: "0xa"}})

			Convey("Then it is removed and the rest are stripped", func() {
				So(out, ShouldHaveLength, 1)
				So(out[0]["id"], ShouldEqual, int32(2))
				So(out[0], ShouldNotContainKey, "_id")
				So(out[0], ShouldNotContainKey, "hidden")
			})
		})

		Convey("When the only claim is superseded", func() {
			out := antiJoin(cands, []model.Claim{
				{ID: int32(1), Winner: "0xa", Cursor: model.Window{From: int64(10), To: int64(20)}},
			})

			Convey("Then nothing is removed", func() {
				So(out, ShouldHaveLength, 2)
			})
		})

		Convey("When the claim belongs to another winner", func() {
			out := antiJoin(cands, []model.Claim{{ID: int32(1), Winner: "0xb"}})
			So(out, ShouldHaveLength, 2)
		})
	})

	Convey("Given a large double id claimed under its int64 form", t, func() {
		cands := candidates([]bson.M{{"id": float64(1 << 60), "winner": bson.A{"0xa"}}}, "0xa")
		out := antiJoin(cands, []model.Claim{{ID: int64(1 << 60), Winner: "0xa"}})

		Convey("Then the win is not pending", func() {
			So(out, ShouldBeEmpty)
		})
	})

	Convey("Given duplicate candidate ids", t, func() {
		cands := []bson.M{{"id": "q"}, {"id": "q"}, {"id": "r"}}
		So(candidateIDs(cands), ShouldResemble, bson.A{"q", "r"})
	})
}
