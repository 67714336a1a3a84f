package mongodb

import (
	"context"
	"time"

	"github.com/BattleKash/battlekash-admin-backend/internal/models"
	"github.com/BattleKash/battlekash-admin-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure ResultRepository implements the interface
var _ repositories.ResultRepository = (*ResultRepository)(nil)

// ResultRepository handles MongoDB operations for Result
type ResultRepository struct {
	collection *mongo.Collection
}

// NewResultRepository creates a new ResultRepository
func NewResultRepository(db *mongo.Database) *ResultRepository {
	return &ResultRepository{
		collection: db.Collection("results"),
	}
}

// Create inserts a new result record
func (r *ResultRepository) Create(ctx context.Context, result *models.Result) error {
	result.ID = primitive.NewObjectID()
	result.CreatedAt = time.Now()
	result.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, result)
	return err
}

// FindByID finds a result by ID
func (r *ResultRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Result, error) {
	var result models.Result
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// FindByTournament finds all result records for a tournament
func (r *ResultRepository) FindByTournament(ctx context.Context, tournamentID primitive.ObjectID) ([]*models.Result, error) {
	opts := options.Find().SetSort(bson.M{"position": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"tournamentId": tournamentID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []*models.Result
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if results == nil {
		results = []*models.Result{}
	}
	return results, nil
}

// FindByTournamentAndRegistration finds the result for one registration
func (r *ResultRepository) FindByTournamentAndRegistration(ctx context.Context, tournamentID, registrationID primitive.ObjectID) (*models.Result, error) {
	var result models.Result
	filter := bson.M{"tournamentId": tournamentID, "registrationId": registrationID}
	err := r.collection.FindOne(ctx, filter).Decode(&result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// FindEligibleForDistribution finds verified, not-yet-distributed results
func (r *ResultRepository) FindEligibleForDistribution(ctx context.Context, tournamentID primitive.ObjectID) ([]*models.Result, error) {
	filter := bson.M{
		"tournamentId":      tournamentID,
		"resultVerified":    true,
		"rewardDistributed": false,
	}
	opts := options.Find().SetSort(bson.M{"position": 1})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []*models.Result
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if results == nil {
		results = []*models.Result{}
	}
	return results, nil
}

// UpdateGuarded replaces a result record only while its reward has not been
// distributed. Late edits against a settled record lose the race and get
// repositories.ErrResultLocked instead of silently applying.
func (r *ResultRepository) UpdateGuarded(ctx context.Context, result *models.Result) error {
	result.UpdatedAt = time.Now()
	filter := bson.M{"_id": result.ID, "rewardDistributed": false}
	res, err := r.collection.ReplaceOne(ctx, filter, result)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Distinguish a missing record from a settled one.
		count, err := r.collection.CountDocuments(ctx, bson.M{"_id": result.ID})
		if err != nil {
			return err
		}
		if count == 0 {
			return mongo.ErrNoDocuments
		}
		return repositories.ErrResultLocked
	}
	return nil
}

// UpdateNotes sets only the verification notes. Notes remain editable after
// settlement, so no distributed guard applies.
func (r *ResultRepository) UpdateNotes(ctx context.Context, id primitive.ObjectID, notes string) error {
	update := bson.M{"$set": bson.M{"verificationNotes": notes, "updatedAt": time.Now()}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// MarkDistributed flips the distributed flag exactly once and freezes the
// total reward snapshot.
func (r *ResultRepository) MarkDistributed(ctx context.Context, id primitive.ObjectID, totalReward float64) error {
	now := time.Now()
	filter := bson.M{"_id": id, "rewardDistributed": false}
	update := bson.M{"$set": bson.M{
		"rewardDistributed": true,
		"distributedAt":     now,
		"totalReward":       totalReward,
		"updatedAt":         now,
	}}
	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		count, err := r.collection.CountDocuments(ctx, bson.M{"_id": id})
		if err != nil {
			return err
		}
		if count == 0 {
			return mongo.ErrNoDocuments
		}
		return repositories.ErrResultLocked
	}
	return nil
}
