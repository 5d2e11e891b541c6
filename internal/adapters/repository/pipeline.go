package repository

import (
	"github.com/okian/questboost/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// PendingPipeline builds the aggregation run against the wins collection:
//
//  1. $unwind the winner array so each winner is its own candidate
//  2. $match the requested winner
//  3. $lookup active claims on the same (id, winner) from claimsColl
//  4. $match candidates with no such claim
//  5. $project away _id, hidden and the lookup scratch field
//
// A claim is active while _cursor.to is null or missing.
func PendingPipeline(winner, claimsColl string) mongo.Pipeline {
	scratch := model.ClaimsScratchField

	activeClaim := bson.D{{Key: "$expr", Value: bson.D{{Key: "$and", Value: bson.A{
		bson.D{{Key: "$eq", Value: bson.A{"$" + model.FieldID, "$$localId"}}},
		bson.D{{Key: "$eq", Value: bson.A{"$" + model.FieldWinner, "$$localWinner"}}},
		bson.D{{Key: "$eq", Value: bson.A{
			bson.D{{Key: "$ifNull", Value: bson.A{"$" + model.FieldCursor + ".to", nil}}},
			nil,
		}}},
	}}}}}

	return mongo.Pipeline{
		{{Key: "$unwind", Value: bson.D{{Key: "path", Value: "$" + model.FieldWinner}}}},
		{{Key: "$match", Value: bson.D{{Key: model.FieldWinner, Value: winner}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: claimsColl},
			{Key: "let", Value: bson.D{
				{Key: "localId", Value: "$" + model.FieldID},
				{Key: "localWinner", Value: "$" + model.FieldWinner},
			}},
			{Key: "pipeline", Value: bson.A{
				bson.D{{Key: "$match", Value: activeClaim}},
			}},
			{Key: "as", Value: scratch},
		}}},
		{{Key: "$match", Value: bson.D{{Key: "$expr", Value: bson.D{{Key: "$eq", Value: bson.A{
			bson.D{{Key: "$size", Value: "$" + scratch}},
			0,
		}}}}}}},
		{{Key: "$project", Value: bson.D{
			{Key: model.FieldStoreID, Value: 0},
			{Key: scratch, Value: 0},
			{Key: model.FieldHidden, Value: 0},
		}}},
	}
}
