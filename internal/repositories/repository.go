package repositories

import (
	"context"
	"errors"

	"github.com/BattleKash/battlekash-admin-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrResultLocked is returned by guarded result updates when the record exists
// but its reward has already been distributed.
var ErrResultLocked = errors.New("result is locked after settlement")

// TournamentRepository defines the interface for tournament data operations
type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Tournament, error)
	FindAll(ctx context.Context, page, limit int) ([]*models.Tournament, error)
	FindByStatus(ctx context.Context, status models.TournamentStatus, page, limit int) ([]*models.Tournament, error)
	Update(ctx context.Context, tournament *models.Tournament) error
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.TournamentStatus) error
	Count(ctx context.Context) (int64, error)
}

// RegistrationRepository defines the interface for registration data operations
type RegistrationRepository interface {
	Create(ctx context.Context, registration *models.Registration) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Registration, error)
	FindByTournament(ctx context.Context, tournamentID primitive.ObjectID) ([]*models.Registration, error)
	CountByTournament(ctx context.Context, tournamentID primitive.ObjectID) (int64, error)
}

// ResultRepository defines the interface for result record operations.
// Mutating methods that carry reward state must refuse to touch records whose
// rewardDistributed flag is already set; UpdateGuarded and MarkDistributed use
// conditional filters for this.
type ResultRepository interface {
	Create(ctx context.Context, result *models.Result) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Result, error)
	FindByTournament(ctx context.Context, tournamentID primitive.ObjectID) ([]*models.Result, error)
	FindByTournamentAndRegistration(ctx context.Context, tournamentID, registrationID primitive.ObjectID) (*models.Result, error)
	FindEligibleForDistribution(ctx context.Context, tournamentID primitive.ObjectID) ([]*models.Result, error)
	// UpdateGuarded replaces the record only while rewardDistributed is false.
	// Returns ErrResultLocked when the record exists but is already settled.
	UpdateGuarded(ctx context.Context, result *models.Result) error
	UpdateNotes(ctx context.Context, id primitive.ObjectID, notes string) error
	// MarkDistributed flips the distributed flag exactly once.
	MarkDistributed(ctx context.Context, id primitive.ObjectID, totalReward float64) error
}

// WalletTransactionRepository defines the interface for settlement ledger operations
type WalletTransactionRepository interface {
	Create(ctx context.Context, transaction *models.WalletTransaction) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.WalletTransaction, error)
	FindByUserID(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]*models.WalletTransaction, error)
	FindByTournamentID(ctx context.Context, tournamentID primitive.ObjectID, page, limit int) ([]*models.WalletTransaction, error)
	FindNonFailedByResult(ctx context.Context, resultID primitive.ObjectID) ([]*models.WalletTransaction, error)
	FindNonFailedByResultAndType(ctx context.Context, resultID primitive.ObjectID, txType string) (*models.WalletTransaction, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string, description string) error
}

// UserRepository defines the interface for platform user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	// IncrementWalletBalance applies an additive credit to the user's wallet.
	IncrementWalletBalance(ctx context.Context, userID primitive.ObjectID, amount float64) error
}

// AdminUserRepository defines the interface for admin account operations
type AdminUserRepository interface {
	Create(ctx context.Context, adminUser *models.AdminUser) error
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.AdminUser, error)
}
