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

// Compile-time check to ensure TournamentRepository implements the interface
var _ repositories.TournamentRepository = (*TournamentRepository)(nil)

// TournamentRepository handles MongoDB operations for Tournament
type TournamentRepository struct {
	collection *mongo.Collection
}

// NewTournamentRepository creates a new TournamentRepository
func NewTournamentRepository(db *mongo.Database) *TournamentRepository {
	return &TournamentRepository{
		collection: db.Collection("tournaments"),
	}
}

// Create inserts a new tournament
func (r *TournamentRepository) Create(ctx context.Context, tournament *models.Tournament) error {
	tournament.ID = primitive.NewObjectID()
	tournament.CreatedAt = time.Now()
	tournament.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, tournament)
	return err
}

// FindByID finds a tournament by ID
func (r *TournamentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Tournament, error) {
	var tournament models.Tournament
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&tournament)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &tournament, nil
}

// FindAll retrieves tournaments with pagination, newest first
func (r *TournamentRepository) FindAll(ctx context.Context, page, limit int) ([]*models.Tournament, error) {
	opts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.M{"scheduledAt": -1})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tournaments []*models.Tournament
	if err := cursor.All(ctx, &tournaments); err != nil {
		return nil, err
	}
	if tournaments == nil {
		tournaments = []*models.Tournament{}
	}
	return tournaments, nil
}

// FindByStatus retrieves tournaments with a given status, newest first
func (r *TournamentRepository) FindByStatus(ctx context.Context, status models.TournamentStatus, page, limit int) ([]*models.Tournament, error) {
	opts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.M{"scheduledAt": -1})

	cursor, err := r.collection.Find(ctx, bson.M{"status": status}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tournaments []*models.Tournament
	if err := cursor.All(ctx, &tournaments); err != nil {
		return nil, err
	}
	if tournaments == nil {
		tournaments = []*models.Tournament{}
	}
	return tournaments, nil
}

// Update replaces an existing tournament
func (r *TournamentRepository) Update(ctx context.Context, tournament *models.Tournament) error {
	tournament.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": tournament.ID}, tournament)
	return err
}

// UpdateStatus sets only the tournament status
func (r *TournamentRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.TournamentStatus) error {
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Count counts all tournaments
func (r *TournamentRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
