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

// Compile-time check to ensure RegistrationRepository implements the interface
var _ repositories.RegistrationRepository = (*RegistrationRepository)(nil)

// RegistrationRepository handles MongoDB operations for Registration
type RegistrationRepository struct {
	collection *mongo.Collection
}

// NewRegistrationRepository creates a new RegistrationRepository
func NewRegistrationRepository(db *mongo.Database) *RegistrationRepository {
	return &RegistrationRepository{
		collection: db.Collection("registrations"),
	}
}

// Create inserts a new registration
func (r *RegistrationRepository) Create(ctx context.Context, registration *models.Registration) error {
	registration.ID = primitive.NewObjectID()
	registration.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, registration)
	return err
}

// FindByID finds a registration by ID
func (r *RegistrationRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Registration, error) {
	var registration models.Registration
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&registration)
	if err != nil {
		return nil, err
	}
	return &registration, nil
}

// FindByTournament finds all registrations for a tournament
func (r *RegistrationRepository) FindByTournament(ctx context.Context, tournamentID primitive.ObjectID) ([]*models.Registration, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"tournamentId": tournamentID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var registrations []*models.Registration
	if err := cursor.All(ctx, &registrations); err != nil {
		return nil, err
	}
	if registrations == nil {
		registrations = []*models.Registration{}
	}
	return registrations, nil
}

// CountByTournament counts registrations for a tournament
func (r *RegistrationRepository) CountByTournament(ctx context.Context, tournamentID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"tournamentId": tournamentID})
}
