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

// Compile-time check to ensure WalletTransactionRepository implements the interface
var _ repositories.WalletTransactionRepository = (*WalletTransactionRepository)(nil)

// WalletTransactionRepository handles MongoDB operations for WalletTransaction
type WalletTransactionRepository struct {
	collection *mongo.Collection
}

// NewWalletTransactionRepository creates a new WalletTransactionRepository
func NewWalletTransactionRepository(db *mongo.Database) *WalletTransactionRepository {
	return &WalletTransactionRepository{
		collection: db.Collection("wallet_transactions"),
	}
}

// Create inserts a new wallet transaction
func (r *WalletTransactionRepository) Create(ctx context.Context, transaction *models.WalletTransaction) error {
	transaction.ID = primitive.NewObjectID()
	transaction.CreatedAt = time.Now()
	transaction.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, transaction)
	return err
}

// FindByID finds a wallet transaction by ID
func (r *WalletTransactionRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.WalletTransaction, error) {
	var transaction models.WalletTransaction
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&transaction)
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

// FindByUserID finds wallet transactions for a user with pagination
func (r *WalletTransactionRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]*models.WalletTransaction, error) {
	return r.findPage(ctx, bson.M{"userId": userID}, page, limit)
}

// FindByTournamentID finds wallet transactions for a tournament with pagination
func (r *WalletTransactionRepository) FindByTournamentID(ctx context.Context, tournamentID primitive.ObjectID, page, limit int) ([]*models.WalletTransaction, error) {
	return r.findPage(ctx, bson.M{"tournamentId": tournamentID}, page, limit)
}

// FindNonFailedByResult finds all pending or completed transactions for a result
func (r *WalletTransactionRepository) FindNonFailedByResult(ctx context.Context, resultID primitive.ObjectID) ([]*models.WalletTransaction, error) {
	filter := bson.M{
		"resultId": resultID,
		"status":   bson.M{"$ne": models.TransactionStatusFailed},
	}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var transactions []*models.WalletTransaction
	if err := cursor.All(ctx, &transactions); err != nil {
		return nil, err
	}
	if transactions == nil {
		transactions = []*models.WalletTransaction{}
	}
	return transactions, nil
}

// FindNonFailedByResultAndType finds the single non-failed transaction for a
// (result, type) pair, the ledger's idempotency key. Returns
// mongo.ErrNoDocuments when none exists.
func (r *WalletTransactionRepository) FindNonFailedByResultAndType(ctx context.Context, resultID primitive.ObjectID, txType string) (*models.WalletTransaction, error) {
	var transaction models.WalletTransaction
	filter := bson.M{
		"resultId": resultID,
		"type":     txType,
		"status":   bson.M{"$ne": models.TransactionStatusFailed},
	}
	err := r.collection.FindOne(ctx, filter).Decode(&transaction)
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

// UpdateStatus sets the status and description of a transaction
func (r *WalletTransactionRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string, description string) error {
	update := bson.M{"$set": bson.M{
		"status":    status,
		"updatedAt": time.Now(),
	}}
	if description != "" {
		update["$set"].(bson.M)["description"] = description
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *WalletTransactionRepository) findPage(ctx context.Context, filter bson.M, page, limit int) ([]*models.WalletTransaction, error) {
	opts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.M{"createdAt": -1})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var transactions []*models.WalletTransaction
	if err := cursor.All(ctx, &transactions); err != nil {
		return nil, err
	}
	if transactions == nil {
		transactions = []*models.WalletTransaction{}
	}
	return transactions, nil
}
